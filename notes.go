package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// Note is an opaque engine note resource: free-form text attached to
// an object outside its content.
type Note struct {
	eng *Engine
	h   *Handle
}

// ReadNote reads the note attached to the object id. ref names the
// notes reference; "" means the repository default.
func (r *Repository) ReadNote(ref string, id *Oid) (*Note, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	oid := append([]byte(nil), id[:]...)
	out := ffi.NewOutPtr()

	var refAddr uintptr
	var cref []byte
	if ref != "" {
		cref = ffi.CString(ref)
		refAddr = ffi.BytesAddr(cref)
	}
	_, err = r.eng.call("git_note_read", out.Addr(), ptr, refAddr, ffi.BytesAddr(oid))
	keepAlive(cref)
	keepAlive(oid)
	if err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null note", 0)
	}
	return &Note{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "note", "git_note_free"),
	}, nil
}

// Free releases the note. Safe to call more than once.
func (n *Note) Free() error {
	return n.h.Close()
}

// Message returns the note text.
func (n *Note) Message() (string, error) {
	ptr, err := n.h.Ptr()
	if err != nil {
		return "", err
	}
	p, err := n.eng.callPtr("git_note_message", ptr)
	if err != nil {
		return "", err
	}
	return ffi.GoString(p), nil
}

// Id returns the OID of the note blob itself.
func (n *Note) Id() (*Oid, error) {
	ptr, err := n.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := n.eng.callPtr("git_note_id", ptr)
	if err != nil {
		return nil, err
	}
	return oidFromPtr(p), nil
}

// Author decodes the note's author signature.
func (n *Note) Author() (*Signature, error) {
	ptr, err := n.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := n.eng.callPtr("git_note_author", ptr)
	if err != nil {
		return nil, err
	}
	return n.eng.decodeSignatureAt(p), nil
}

// Committer decodes the note's committer signature.
func (n *Note) Committer() (*Signature, error) {
	ptr, err := n.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := n.eng.callPtr("git_note_committer", ptr)
	if err != nil {
		return nil, err
	}
	return n.eng.decodeSignatureAt(p), nil
}
