package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// Repository is an opaque engine resource wrapped in a lifecycle
// handle.
type Repository struct {
	eng *Engine
	h   *Handle
}

// OpenRepository opens the repository at path (a .git directory or a
// worktree root).
func (e *Engine) OpenRepository(path string) (*Repository, error) {
	cpath := ffi.CString(path)
	out := ffi.NewOutPtr()
	_, err := e.call("git_repository_open", out.Addr(), ffi.BytesAddr(cpath))
	keepAlive(cpath)
	if err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null repository", 0)
	}
	return &Repository{
		eng: e,
		h:   e.newHandle(out.Value(), "repository", "git_repository_free"),
	}, nil
}

// DiscoverRepository walks upward from start looking for a repository
// and returns the found .git path. The result arrives in a
// length-bounded native buffer, disposed after decoding.
func (e *Engine) DiscoverRepository(start string) (string, error) {
	cstart := ffi.CString(start)
	defer keepAlive(cstart)
	return e.withBuf(func(addr uintptr) error {
		_, err := e.call("git_repository_discover", addr, ffi.BytesAddr(cstart), 0, 0)
		return err
	})
}

// Free releases the repository. Safe to call more than once.
func (r *Repository) Free() error {
	return r.h.Close()
}

// Path returns the path to the repository's .git directory.
func (r *Repository) Path() (string, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return "", err
	}
	p, err := r.eng.callPtr("git_repository_path", ptr)
	if err != nil {
		return "", err
	}
	return ffi.GoString(p), nil
}

// Workdir returns the working directory path, or "" for a bare
// repository (the engine returns a null pointer).
func (r *Repository) Workdir() (string, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return "", err
	}
	p, err := r.eng.callPtr("git_repository_workdir", ptr)
	if err != nil {
		return "", err
	}
	return ffi.GoString(p), nil
}

// IsBare reports whether the repository has no working directory.
func (r *Repository) IsBare() (bool, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return false, err
	}
	rc, err := r.eng.call("git_repository_is_bare", ptr)
	if err != nil {
		return false, err
	}
	return rc != 0, nil
}

// Head returns the reference HEAD points at.
func (r *Repository) Head() (*Reference, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	out := ffi.NewOutPtr()
	if _, err := r.eng.call("git_repository_head", out.Addr(), ptr); err != nil {
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

// Index returns the repository's index.
func (r *Repository) Index() (*Index, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	out := ffi.NewOutPtr()
	if _, err := r.eng.call("git_repository_index", out.Addr(), ptr); err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null index", 0)
	}
	return &Index{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "index", "git_index_free"),
	}, nil
}
