package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// Tree is an opaque engine tree object.
type Tree struct {
	eng *Engine
	h   *Handle
}

// ObjectType is the engine's object type tag.
type ObjectType int32

// Object types.
const (
	ObjectAny    ObjectType = -2
	ObjectCommit ObjectType = 1
	ObjectTree   ObjectType = 2
	ObjectBlob   ObjectType = 3
	ObjectTag    ObjectType = 4
)

// String returns the type name.
func (t ObjectType) String() string {
	switch t {
	case ObjectCommit:
		return "commit"
	case ObjectTree:
		return "tree"
	case ObjectBlob:
		return "blob"
	case ObjectTag:
		return "tag"
	case ObjectAny:
		return "any"
	}
	return "invalid"
}

// TreeEntry is one fully decoded tree member. Entries are borrowed
// from the engine while decoding and copied out; a TreeEntry never
// references native memory.
type TreeEntry struct {
	Name     string
	Id       Oid
	Type     ObjectType
	Filemode uint32
}

// LookupTree loads the tree identified by id.
func (r *Repository) LookupTree(id *Oid) (*Tree, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	oid := append([]byte(nil), id[:]...)
	out := ffi.NewOutPtr()
	_, err = r.eng.call("git_tree_lookup", out.Addr(), ptr, ffi.BytesAddr(oid))
	keepAlive(oid)
	if err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null tree", 0)
	}
	return &Tree{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "tree", "git_tree_free"),
	}, nil
}

// Free releases the tree. Safe to call more than once.
func (t *Tree) Free() error {
	return t.h.Close()
}

// EntryCount returns the number of direct entries.
func (t *Tree) EntryCount() (uint64, error) {
	ptr, err := t.h.Ptr()
	if err != nil {
		return 0, err
	}
	return t.eng.callSize("git_tree_entrycount", ptr)
}

// EntryByIndex decodes entry n. Out-of-range indexes surface as a
// not-found error, mirroring the engine's null return.
func (t *Tree) EntryByIndex(n uint64) (*TreeEntry, error) {
	ptr, err := t.h.Ptr()
	if err != nil {
		return nil, err
	}
	ep, err := t.eng.callPtr("git_tree_entry_byindex", ptr, uintptr(n))
	if err != nil {
		return nil, err
	}
	if ep == 0 {
		return nil, newGitError(codeNotFound, "no tree entry at index", 0)
	}

	namePtr, err := t.eng.callPtr("git_tree_entry_name", ep)
	if err != nil {
		return nil, err
	}
	idPtr, err := t.eng.callPtr("git_tree_entry_id", ep)
	if err != nil {
		return nil, err
	}
	typ, err := t.eng.call("git_tree_entry_type", ep)
	if err != nil {
		return nil, err
	}
	mode, err := t.eng.callUint32("git_tree_entry_filemode", ep)
	if err != nil {
		return nil, err
	}

	entry := &TreeEntry{
		Name:     ffi.GoString(namePtr),
		Type:     ObjectType(typ),
		Filemode: mode,
	}
	if id := oidFromPtr(idPtr); id != nil {
		entry.Id = *id
	}
	return entry, nil
}
