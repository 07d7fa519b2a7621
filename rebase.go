package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// RebaseOperationType is the kind of one rebase step.
type RebaseOperationType uint32

// Rebase operation types.
const (
	RebaseOperationPick RebaseOperationType = iota
	RebaseOperationReword
	RebaseOperationEdit
	RebaseOperationSquash
	RebaseOperationFixup
	RebaseOperationExec
)

// String returns the operation name as it appears in a todo list.
func (t RebaseOperationType) String() string {
	switch t {
	case RebaseOperationPick:
		return "pick"
	case RebaseOperationReword:
		return "reword"
	case RebaseOperationEdit:
		return "edit"
	case RebaseOperationSquash:
		return "squash"
	case RebaseOperationFixup:
		return "fixup"
	case RebaseOperationExec:
		return "exec"
	}
	return "unknown"
}

// RebaseOperation is one fully decoded rebase step: the type tag, the
// commit it applies to, and the exec command line (empty unless Type
// is RebaseOperationExec, where the engine stores a string pointer).
type RebaseOperation struct {
	Type RebaseOperationType
	Id   Oid
	Exec string
}

// Rebase is an opaque in-progress rebase resource.
type Rebase struct {
	eng *Engine
	h   *Handle
}

// OpenRebase resumes the rebase in progress in the repository.
func (r *Repository) OpenRebase() (*Rebase, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	out := ffi.NewOutPtr()
	if _, err := r.eng.call("git_rebase_open", out.Addr(), ptr, 0); err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null rebase", 0)
	}
	return &Rebase{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "rebase", "git_rebase_free"),
	}, nil
}

// Free releases the rebase. Safe to call more than once.
func (rb *Rebase) Free() error {
	return rb.h.Close()
}

// OperationCount returns the number of steps in the rebase.
func (rb *Rebase) OperationCount() (uint64, error) {
	ptr, err := rb.h.Ptr()
	if err != nil {
		return 0, err
	}
	return rb.eng.callSize("git_rebase_operation_entrycount", ptr)
}

// CurrentOperation returns the index of the step being applied. ok is
// false before the first step has started (the engine reports the
// all-ones "no operation" sentinel).
func (rb *Rebase) CurrentOperation() (n uint64, ok bool, err error) {
	ptr, err := rb.h.Ptr()
	if err != nil {
		return 0, false, err
	}
	raw, err := rb.eng.callSize("git_rebase_operation_current", ptr)
	if err != nil {
		return 0, false, err
	}
	if raw == noRebaseOperation() {
		return 0, false, nil
	}
	return raw, true, nil
}

// noRebaseOperation is the engine's SIZE_MAX sentinel at the process
// pointer width.
func noRebaseOperation() uint64 {
	if ffi.NativeWidth == ffi.Width32 {
		return 0xFFFFFFFF
	}
	return ^uint64(0)
}

// OperationByIndex decodes step n. Out-of-range indexes surface as a
// not-found error.
func (rb *Rebase) OperationByIndex(n uint64) (*RebaseOperation, error) {
	ptr, err := rb.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := rb.eng.callPtr("git_rebase_operation_byindex", ptr, uintptr(n))
	if err != nil {
		return nil, err
	}
	if p == 0 {
		return nil, newGitError(codeNotFound, "no rebase operation at index", 0)
	}
	return rb.eng.decodeRebaseOperation(p), nil
}

// decodeRebaseOperation reads a git_rebase_operation at p.
func (e *Engine) decodeRebaseOperation(p uintptr) *RebaseOperation {
	rd := ffi.NewReader(p, e.layouts.Get("git_rebase_operation"))
	return &RebaseOperation{
		Type: RebaseOperationType(rd.Uint32("type")),
		Id:   oidFromBytes(rd.Bytes("id")),
		Exec: ffi.GoString(rd.Pointer("exec")),
	}
}
