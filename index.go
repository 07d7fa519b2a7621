package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// Index stage flag constants: bits 12-13 of the entry flags field
// encode the merge stage.
const (
	indexEntryStageMask  = 0x3000
	indexEntryStageShift = 12
)

// Stage identifies which side of a merge an index entry belongs to.
type Stage int

// Stages. StageNormal is a regular entry; the conflict stages hold the
// ancestor and the two sides of an unresolved merge.
const (
	StageNormal   Stage = 0
	StageAncestor Stage = 1
	StageOurs     Stage = 2
	StageTheirs   Stage = 3
)

// Index is an opaque engine index (staging area) resource.
type Index struct {
	eng *Engine
	h   *Handle
}

// IndexEntry is one fully decoded index entry. The path string and OID
// are copied into managed memory during decoding.
type IndexEntry struct {
	CtimeSeconds     int32
	CtimeNanoseconds uint32
	MtimeSeconds     int32
	MtimeNanoseconds uint32
	Dev              uint32
	Ino              uint32
	Mode             uint32
	Uid              uint32
	Gid              uint32
	FileSize         uint32
	Id               Oid
	Flags            uint16
	FlagsExtended    uint16
	Path             string
}

// Stage extracts the merge stage from the flags field.
func (e *IndexEntry) Stage() Stage {
	return Stage((e.Flags & indexEntryStageMask) >> indexEntryStageShift)
}

// decodeIndexEntry reads a git_index_entry at p.
func (e *Engine) decodeIndexEntry(p uintptr) *IndexEntry {
	if p == 0 {
		return nil
	}
	rd := ffi.NewReader(p, e.layouts.Get("git_index_entry"))
	return &IndexEntry{
		CtimeSeconds:     rd.Int32("ctime_seconds"),
		CtimeNanoseconds: rd.Uint32("ctime_nanoseconds"),
		MtimeSeconds:     rd.Int32("mtime_seconds"),
		MtimeNanoseconds: rd.Uint32("mtime_nanoseconds"),
		Dev:              rd.Uint32("dev"),
		Ino:              rd.Uint32("ino"),
		Mode:             rd.Uint32("mode"),
		Uid:              rd.Uint32("uid"),
		Gid:              rd.Uint32("gid"),
		FileSize:         rd.Uint32("file_size"),
		Id:               oidFromBytes(rd.Bytes("id")),
		Flags:            rd.Uint16("flags"),
		FlagsExtended:    rd.Uint16("flags_extended"),
		Path:             ffi.GoString(rd.Pointer("path")),
	}
}

// Free releases the index. Safe to call more than once.
func (i *Index) Free() error {
	return i.h.Close()
}

// EntryCount returns the number of entries.
func (i *Index) EntryCount() (uint64, error) {
	ptr, err := i.h.Ptr()
	if err != nil {
		return 0, err
	}
	return i.eng.callSize("git_index_entrycount", ptr)
}

// EntryByIndex decodes entry n. Out-of-range indexes surface as a
// not-found error.
func (i *Index) EntryByIndex(n uint64) (*IndexEntry, error) {
	ptr, err := i.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := i.eng.callPtr("git_index_get_byindex", ptr, uintptr(n))
	if err != nil {
		return nil, err
	}
	entry := i.eng.decodeIndexEntry(p)
	if entry == nil {
		return nil, newGitError(codeNotFound, "no index entry at index", 0)
	}
	return entry, nil
}

// EntryByPath decodes the entry for path at the given merge stage.
func (i *Index) EntryByPath(path string, stage Stage) (*IndexEntry, error) {
	ptr, err := i.h.Ptr()
	if err != nil {
		return nil, err
	}
	cpath := ffi.CString(path)
	p, err := i.eng.callPtr("git_index_get_bypath", ptr, ffi.BytesAddr(cpath), uintptr(stage))
	keepAlive(cpath)
	if err != nil {
		return nil, err
	}
	entry := i.eng.decodeIndexEntry(p)
	if entry == nil {
		return nil, newGitError(codeNotFound, "no index entry for path", 0)
	}
	return entry, nil
}

// HasConflicts reports whether any entry carries a conflict stage.
func (i *Index) HasConflicts() (bool, error) {
	ptr, err := i.h.Ptr()
	if err != nil {
		return false, err
	}
	rc, err := i.eng.call("git_index_has_conflicts", ptr)
	if err != nil {
		return false, err
	}
	return rc != 0, nil
}
