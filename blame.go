package git2

import (
	"github.com/nullstyle/git2/internal/ffi"
)

// blameOptionsVersion is the version tag the engine expects in the
// options struct.
const blameOptionsVersion = 1

// BlameOptions bounds a blame: which commit range to consider and
// which line range of the file. Zero values mean "no bound".
type BlameOptions struct {
	// NewestCommit restricts blame to ancestors of this commit; nil
	// means HEAD.
	NewestCommit *Oid

	// OldestCommit stops the walk at this commit; nil means the first
	// commit touching the file.
	OldestCommit *Oid

	// MinLine is the first line to blame, 1-based; 0 means line 1.
	MinLine uint64

	// MaxLine is the last line to blame, 1-based; 0 means the last
	// line of the file.
	MaxLine uint64
}

// encode writes the options struct into a scratch buffer at the
// layout's computed offsets.
func (o *BlameOptions) encode(e *Engine) []byte {
	wr := ffi.NewWriter(e.layouts.Get("git_blame_options"))
	wr.PutUint32("version", blameOptionsVersion)
	if o != nil {
		if o.NewestCommit != nil {
			wr.PutBytes("newest_commit", o.NewestCommit[:])
		}
		if o.OldestCommit != nil {
			wr.PutBytes("oldest_commit", o.OldestCommit[:])
		}
		wr.PutUsize("min_line", o.MinLine)
		wr.PutUsize("max_line", o.MaxLine)
	}
	return wr.Buf()
}

// Blame is an opaque engine blame result.
type Blame struct {
	eng *Engine
	h   *Handle
}

// BlameHunk is one fully decoded run of lines attributed to a commit.
// The signatures and path are copied into managed memory; either
// signature may be nil when the engine has no record.
type BlameHunk struct {
	LinesInHunk          uint64
	FinalCommitId        Oid
	FinalStartLineNumber uint64
	FinalSignature       *Signature
	OrigCommitId         Oid
	OrigStartLineNumber  uint64
	OrigSignature        *Signature
	OrigPath             string
	Boundary             bool
}

// BlameFile computes blame for one file. opts may be nil for the
// defaults.
func (r *Repository) BlameFile(path string, opts *BlameOptions) (*Blame, error) {
	ptr, err := r.h.Ptr()
	if err != nil {
		return nil, err
	}
	cpath := ffi.CString(path)
	optbuf := opts.encode(r.eng)
	out := ffi.NewOutPtr()
	_, err = r.eng.call("git_blame_file", out.Addr(), ptr,
		ffi.BytesAddr(cpath), ffi.BytesAddr(optbuf))
	keepAlive(cpath)
	keepAlive(optbuf)
	if err != nil {
		return nil, err
	}
	if out.IsNull() {
		return nil, newGitError(codeGeneric, "engine returned null blame", 0)
	}
	return &Blame{
		eng: r.eng,
		h:   r.eng.newHandle(out.Value(), "blame", "git_blame_free"),
	}, nil
}

// Free releases the blame result. Safe to call more than once.
func (b *Blame) Free() error {
	return b.h.Close()
}

// HunkCount returns the number of hunks.
func (b *Blame) HunkCount() (uint32, error) {
	ptr, err := b.h.Ptr()
	if err != nil {
		return 0, err
	}
	return b.eng.callUint32("git_blame_get_hunk_count", ptr)
}

// HunkByIndex decodes hunk n. Out-of-range indexes surface as a
// not-found error.
func (b *Blame) HunkByIndex(n uint32) (*BlameHunk, error) {
	ptr, err := b.h.Ptr()
	if err != nil {
		return nil, err
	}
	p, err := b.eng.callPtr("git_blame_get_hunk_byindex", ptr, uintptr(n))
	if err != nil {
		return nil, err
	}
	if p == 0 {
		return nil, newGitError(codeNotFound, "no blame hunk at index", 0)
	}
	return b.eng.decodeBlameHunk(p), nil
}

// decodeBlameHunk reads a git_blame_hunk at p, recursing through the
// embedded signature pointers.
func (e *Engine) decodeBlameHunk(p uintptr) *BlameHunk {
	rd := ffi.NewReader(p, e.layouts.Get("git_blame_hunk"))
	return &BlameHunk{
		LinesInHunk:          rd.Usize("lines_in_hunk"),
		FinalCommitId:        oidFromBytes(rd.Bytes("final_commit_id")),
		FinalStartLineNumber: rd.Usize("final_start_line_number"),
		FinalSignature:       e.decodeSignatureAt(rd.Pointer("final_signature")),
		OrigCommitId:         oidFromBytes(rd.Bytes("orig_commit_id")),
		OrigStartLineNumber:  rd.Usize("orig_start_line_number"),
		OrigSignature:        e.decodeSignatureAt(rd.Pointer("orig_signature")),
		OrigPath:             ffi.GoString(rd.Pointer("orig_path")),
		Boundary:             rd.Uint8("boundary") != 0,
	}
}
