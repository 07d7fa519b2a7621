package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// SortFlags controls revision walk ordering.
type SortFlags uint32

// Sort orders, combinable by OR.
const (
	SortNone        SortFlags = 0
	SortTopological SortFlags = 1 << 0
	SortTime        SortFlags = 1 << 1
	SortReverse     SortFlags = 1 << 2
)

// Revwalk is an opaque engine revision walker. Next follows the
// iterator contract: it returns ErrIterOver, never a failure, when the
// walk is exhausted.
type Revwalk struct {
	eng *Engine
	h   *Handle
}

// NewRevwalk creates a walker over the repository's commit graph.
func (r *Repository) NewRevwalk() (*Revwalk, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	out := ffi.NewOutPtr()
	if _, err := r.eng.call("git_revwalk_new", out.Addr(), ptr); err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null revwalk", 0)
	}
	return &Revwalk{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "revwalk", "git_revwalk_free"),
	}, nil
}

// Free releases the walker. Safe to call more than once.
func (w *Revwalk) Free() error {
	return w.h.Close()
}

// PushHead starts the walk at HEAD.
func (w *Revwalk) PushHead() error {
	ptr, err := w.h.Ptr()
	if err != nil {
		return err
	}
	_, err = w.eng.call("git_revwalk_push_head", ptr)
	return err
}

// Push adds a starting commit to the walk.
func (w *Revwalk) Push(id *Oid) error {
	ptr, err := w.h.Ptr()
	if err != nil {
		return err
	}
	oid := append([]byte(nil), id[:]...)
	_, err = w.eng.call("git_revwalk_push", ptr, ffi.BytesAddr(oid))
	keepAlive(oid)
	return err
}

// SetSorting selects the walk order.
func (w *Revwalk) SetSorting(flags SortFlags) error {
	ptr, err := w.h.Ptr()
	if err != nil {
		return err
	}
	_, err = w.eng.call("git_revwalk_sorting", ptr, uintptr(flags))
	return err
}

// Next returns the next commit id. When the walk is exhausted it
// returns ErrIterOver; callers treat that as "no more items", not a
// failure:
//
//	for {
//		id, err := walk.Next()
//		if git2.IsIterOver(err) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		...
//	}
func (w *Revwalk) Next() (*Oid, error) {
	ptr, err := w.h.Ptr()
	if err != nil {
		return nil, err
	}
	out := ffi.NewOutStruct(OidSize)
	if _, err := w.eng.call("git_revwalk_next", out.Addr(), ptr); err != nil {
		return nil, err
	}
	o := oidFromBytes(out.Bytes())
	return &o, nil
}
