package git2

import (
	"errors"
	"fmt"
)

// Native result codes returned by engine calls. Negative means
// failure, except for the handful of sentinels the iteration and
// callback protocols use.
const (
	codeOK            = 0
	codeGeneric       = -1
	codeNotFound      = -3
	codeExists        = -4
	codeAmbiguous     = -5
	codeBufs          = -6
	codeBareRepo      = -8
	codeUnbornBranch  = -9
	codeUnmerged      = -10
	codeNonFastFwd    = -11
	codeInvalidSpec   = -12
	codeConflict      = -13
	codeLocked        = -14
	codeModified      = -15
	codeAuth          = -16
	codeCertificate   = -17
	codeApplied       = -18
	codePeel          = -19
	codeEOF           = -20
	codeInvalid       = -21
	codeUncommitted   = -22
	codeDirectory     = -23
	codeMergeConflict = -24
	codePassthrough   = -30
	codeIterOver      = -31
	codeRetry         = -32
	codeTimeout       = -37
)

// ErrorClass is the symbolic classification of a native failure.
type ErrorClass int

// Error classes.
const (
	ClassGeneric ErrorClass = iota
	ClassNotFound
	ClassExists
	ClassAmbiguous
	ClassInvalid
	ClassLocked
	ClassAuth
	ClassCertificate
	ClassConflict
	ClassTimeout
)

// String returns the class name.
func (c ErrorClass) String() string {
	switch c {
	case ClassNotFound:
		return "not_found"
	case ClassExists:
		return "already_exists"
	case ClassAmbiguous:
		return "ambiguous"
	case ClassInvalid:
		return "invalid_input"
	case ClassLocked:
		return "locked"
	case ClassAuth:
		return "auth_failure"
	case ClassCertificate:
		return "certificate_invalid"
	case ClassConflict:
		return "conflict"
	case ClassTimeout:
		return "timeout"
	}
	return "generic"
}

// classify maps a native result code to its error class.
func classify(code int32) ErrorClass {
	switch code {
	case codeNotFound:
		return ClassNotFound
	case codeExists:
		return ClassExists
	case codeAmbiguous:
		return ClassAmbiguous
	case codeInvalidSpec, codeInvalid:
		return ClassInvalid
	case codeLocked:
		return ClassLocked
	case codeAuth:
		return ClassAuth
	case codeCertificate:
		return ClassCertificate
	case codeConflict, codeMergeConflict, codeUnmerged:
		return ClassConflict
	case codeTimeout:
		return ClassTimeout
	}
	return ClassGeneric
}

// GitError is a failure reported by the native engine: the raw numeric
// code, its symbolic class, the engine's message, and the engine's own
// subsystem number (Klass) as copied out of its transient last-error
// state.
type GitError struct {
	Code    int32
	Class   ErrorClass
	Klass   int32
	Message string
}

// Error implements the error interface.
func (e *GitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown native error"
	}
	return fmt.Sprintf("git2: %s (%s, code %d)", msg, e.Class, e.Code)
}

// newGitError builds a GitError from a negative result code and the
// copied-out last-error state.
func newGitError(code int32, msg string, klass int32) *GitError {
	return &GitError{
		Code:    code,
		Class:   classify(code),
		Klass:   klass,
		Message: msg,
	}
}

// ErrIterOver is the benign loop terminator: a native iterator has no
// more items. It is a sentinel, never a failure, and is deliberately
// not a *GitError so it can't be mistaken for one.
var ErrIterOver = errors.New("git2: iteration over")

// UseAfterFreeError reports an operation on a closed handle. It is
// produced entirely by this layer's bookkeeping; the engine has no
// notion of it.
type UseAfterFreeError struct {
	Resource string
}

// Error implements the error interface.
func (e *UseAfterFreeError) Error() string {
	return fmt.Sprintf("git2: use of freed %s handle", e.Resource)
}

// IsNotFound reports whether err is a native not-found failure.
func IsNotFound(err error) bool {
	var ge *GitError
	return errors.As(err, &ge) && ge.Class == ClassNotFound
}

// IsIterOver reports whether err is the end-of-iteration sentinel.
func IsIterOver(err error) bool {
	return errors.Is(err, ErrIterOver)
}

// IsUseAfterFree reports whether err is a use-after-free detected by
// the handle layer.
func IsUseAfterFree(err error) bool {
	var uaf *UseAfterFreeError
	return errors.As(err, &uaf)
}
