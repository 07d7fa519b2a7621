package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// Reference is a named pointer into the object graph (a branch, tag,
// or HEAD).
type Reference struct {
	eng *Engine
	h   *Handle
}

// LookupReference loads the reference with the given full name, e.g.
// "refs/heads/main".
func (r *Repository) LookupReference(name string) (*Reference, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	cname := ffi.CString(name)
	out := ffi.NewOutPtr()
	_, err = r.eng.call("git_reference_lookup", out.Addr(), ptr, ffi.BytesAddr(cname))
	keepAlive(cname)
	if err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null reference", 0)
	}
	return &Reference{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "reference", "git_reference_free"),
	}, nil
}

// Free releases the reference. Safe to call more than once.
func (r *Reference) Free() error {
	return r.h.Close()
}

// Name returns the full reference name, e.g. "refs/heads/main".
func (r *Reference) Name() (string, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return "", err
	}
	p, err := r.eng.callPtr("git_reference_name", ptr)
	if err != nil {
		return "", err
	}
	return ffi.GoString(p), nil
}

// Shorthand returns the human-readable reference name, e.g. "main".
func (r *Reference) Shorthand() (string, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return "", err
	}
	p, err := r.eng.callPtr("git_reference_shorthand", ptr)
	if err != nil {
		return "", err
	}
	return ffi.GoString(p), nil
}

// Target returns the OID a direct reference points at, or nil for a
// symbolic reference (the engine returns a null pointer).
func (r *Reference) Target() (*Oid, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := r.eng.callPtr("git_reference_target", ptr)
	if err != nil {
		return nil, err
	}
	return oidFromPtr(p), nil
}

// Resolve follows symbolic references until a direct reference is
// reached and returns it as a new handle.
func (r *Reference) Resolve() (*Reference, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	out := ffi.NewOutPtr()
	if _, err := r.eng.call("git_reference_resolve", out.Addr(), ptr); err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null reference", 0)
	}
	return &Reference{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "reference", "git_reference_free"),
	}, nil
}
