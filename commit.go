package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// Commit is an opaque engine commit object.
type Commit struct {
	eng *Engine
	h   *Handle
}

// LookupCommit loads the commit identified by id.
func (r *Repository) LookupCommit(id *Oid) (*Commit, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	oid := append([]byte(nil), id[:]...)
	out := ffi.NewOutPtr()
	_, err = r.eng.call("git_commit_lookup", out.Addr(), ptr, ffi.BytesAddr(oid))
	keepAlive(oid)
	if err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null commit", 0)
	}
	return &Commit{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "commit", "git_commit_free"),
	}, nil
}

// Free releases the commit. Safe to call more than once.
func (c *Commit) Free() error {
	return c.h.Close()
}

// Message returns the full commit message.
func (c *Commit) Message() (string, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return "", err
	}
	p, err := c.eng.callPtr("git_commit_message", ptr)
	if err != nil {
		return "", err
	}
	return ffi.GoString(p), nil
}

// Summary returns the first paragraph of the message, as the engine
// renders it.
func (c *Commit) Summary() (string, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return "", err
	}
	p, err := c.eng.callPtr("git_commit_summary", ptr)
	if err != nil {
		return "", err
	}
	return ffi.GoString(p), nil
}

// Author decodes the author signature. The engine owns the underlying
// struct; the result is fully copied into managed memory.
func (c *Commit) Author() (*Signature, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := c.eng.callPtr("git_commit_author", ptr)
	if err != nil {
		return nil, err
	}
	return c.eng.decodeSignatureAt(p), nil
}

// Committer decodes the committer signature.
func (c *Commit) Committer() (*Signature, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := c.eng.callPtr("git_commit_committer", ptr)
	if err != nil {
		return nil, err
	}
	return c.eng.decodeSignatureAt(p), nil
}

// Time returns the commit time as seconds since the epoch, without
// decoding the full committer signature.
func (c *Commit) Time() (int64, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return 0, err
	}
	v, err := c.eng.callSize("git_commit_time", ptr)
	return int64(v), err
}

// TreeId returns the OID of the commit's root tree.
func (c *Commit) TreeId() (*Oid, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := c.eng.callPtr("git_commit_tree_id", ptr)
	if err != nil {
		return nil, err
	}
	return oidFromPtr(p), nil
}

// ParentCount returns the number of parents.
func (c *Commit) ParentCount() (uint32, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return 0, err
	}
	return c.eng.callUint32("git_commit_parentcount", ptr)
}

// ParentId returns the OID of parent n, or nil when n is out of range
// (the engine returns a null pointer).
func (c *Commit) ParentId(n uint32) (*Oid, error) {
	ptr, err := c.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := c.eng.callPtr("git_commit_parent_id", ptr, uintptr(n))
	if err != nil {
		return nil, err
	}
	return oidFromPtr(p), nil
}
