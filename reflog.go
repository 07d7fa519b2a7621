package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// Reflog is an opaque engine reflog resource.
type Reflog struct {
	eng *Engine
	h   *Handle
}

// ReflogEntry is one fully decoded reflog record. OldId or NewId may
// be nil when the engine has no id on that side; Committer may be nil
// for damaged logs.
type ReflogEntry struct {
	OldId     *Oid
	NewId     *Oid
	Committer *Signature
	Message   string
}

// Reflog reads the reflog for a reference name, e.g. "HEAD" or
// "refs/heads/main".
func (r *Repository) Reflog(name string) (*Reflog, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	cname := ffi.CString(name)
	out := ffi.NewOutPtr()
	_, err = r.eng.call("git_reflog_read", out.Addr(), ptr, ffi.BytesAddr(cname))
	keepAlive(cname)
	if err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null reflog", 0)
	}
	return &Reflog{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "reflog", "git_reflog_free"),
	}, nil
}

// Free releases the reflog. Safe to call more than once.
func (l *Reflog) Free() error {
	return l.h.Close()
}

// EntryCount returns the number of records, newest first.
func (l *Reflog) EntryCount() (uint64, error) {
	ptr, err := l.h.Ptr()
	if err != nil {
		return 0, err
	}
	return l.eng.callSize("git_reflog_entrycount", ptr)
}

// EntryByIndex decodes record n (0 is the most recent). The record is
// borrowed from the engine and copied out field by field through its
// accessors.
func (l *Reflog) EntryByIndex(n uint64) (*ReflogEntry, error) {
	ptr, err := l.h.Ptr()
	if err != nil {
		return nil, err
	}
	ep, err := l.eng.callPtr("git_reflog_entry_byindex", ptr, uintptr(n))
	if err != nil {
		return nil, err
	}
	if ep == 0 {
		return nil, newGitError(codeNotFound, "no reflog entry at index", 0)
	}

	oldPtr, err := l.eng.callPtr("git_reflog_entry_id_old", ep)
	if err != nil {
		return nil, err
	}
	newPtr, err := l.eng.callPtr("git_reflog_entry_id_new", ep)
	if err != nil {
		return nil, err
	}
	sigPtr, err := l.eng.callPtr("git_reflog_entry_committer", ep)
	if err != nil {
		return nil, err
	}
	msgPtr, err := l.eng.callPtr("git_reflog_entry_message", ep)
	if err != nil {
		return nil, err
	}

	return &ReflogEntry{
		OldId:     oidFromPtr(oldPtr),
		NewId:     oidFromPtr(newPtr),
		Committer: l.eng.decodeSignatureAt(sigPtr),
		Message:   ffi.GoString(msgPtr),
	}, nil
}
