package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullstyle/git2/internal/ffi"
)

// The offsets asserted here are the ABI contract with the native
// engine. If one of these tests fails after editing a layout, the edit
// is wrong, not the test.

func TestSignatureOffsets(t *testing.T) {
	r := Signature.Resolve(ffi.Width64)
	assert.Equal(t, 0, r.Offset("name"))
	assert.Equal(t, 8, r.Offset("email"))
	assert.Equal(t, 16, r.Offset("time"))
	assert.Equal(t, 24, r.Offset("offset"))
	assert.Equal(t, 28, r.Offset("sign"))
	assert.Equal(t, 32, r.Size())

	r = Signature.Resolve(ffi.Width32)
	assert.Equal(t, 0, r.Offset("name"))
	assert.Equal(t, 4, r.Offset("email"))
	assert.Equal(t, 8, r.Offset("time"))
	assert.Equal(t, 16, r.Offset("offset"))
	assert.Equal(t, 20, r.Offset("sign"))
	assert.Equal(t, 24, r.Size())
}

func TestBlameOptionsOffsets(t *testing.T) {
	r := BlameOptions.Resolve(ffi.Width64)
	assert.Equal(t, 0, r.Offset("version"))
	assert.Equal(t, 4, r.Offset("newest_commit"))
	assert.Equal(t, 24, r.Offset("oldest_commit"))
	assert.Equal(t, 48, r.Offset("min_line")) // align(44, 8)
	assert.Equal(t, 56, r.Offset("max_line"))
	assert.Equal(t, 64, r.Size())

	r = BlameOptions.Resolve(ffi.Width32)
	assert.Equal(t, 44, r.Offset("min_line")) // align(44, 4)
	assert.Equal(t, 48, r.Offset("max_line"))
	assert.Equal(t, 52, r.Size())
}

func TestIndexEntryOffsets(t *testing.T) {
	for _, w := range []ffi.Width{ffi.Width32, ffi.Width64} {
		r := IndexEntry.Resolve(w)
		assert.Equal(t, 0, r.Offset("ctime_seconds"))
		assert.Equal(t, 16, r.Offset("dev"))
		assert.Equal(t, 24, r.Offset("mode"))
		assert.Equal(t, 36, r.Offset("file_size"))
		assert.Equal(t, 40, r.Offset("id"))
		assert.Equal(t, 60, r.Offset("flags"))
		assert.Equal(t, 62, r.Offset("flags_extended"))
		assert.Equal(t, 64, r.Offset("path")) // 64 is aligned for both widths
	}
	assert.Equal(t, 72, IndexEntry.Resolve(ffi.Width64).Size())
	assert.Equal(t, 68, IndexEntry.Resolve(ffi.Width32).Size())
}

func TestRebaseOperationOffsets(t *testing.T) {
	// The canonical 4-byte tag + 20-byte OID + pointer case: the raw
	// offset 24 happens to be aligned for both widths.
	for _, w := range []ffi.Width{ffi.Width32, ffi.Width64} {
		r := RebaseOperation.Resolve(w)
		assert.Equal(t, 0, r.Offset("type"))
		assert.Equal(t, 4, r.Offset("id"))
		assert.Equal(t, 24, r.Offset("exec"))
	}
}

func TestBlameHunkOffsets(t *testing.T) {
	r := BlameHunk.Resolve(ffi.Width64)
	assert.Equal(t, 0, r.Offset("lines_in_hunk"))
	assert.Equal(t, 8, r.Offset("final_commit_id"))
	assert.Equal(t, 32, r.Offset("final_start_line_number")) // align(28, 8)
	assert.Equal(t, 40, r.Offset("final_signature"))
	assert.Equal(t, 48, r.Offset("orig_commit_id"))
	assert.Equal(t, 72, r.Offset("orig_start_line_number")) // align(68, 8)
	assert.Equal(t, 80, r.Offset("orig_signature"))
	assert.Equal(t, 88, r.Offset("orig_path"))
	assert.Equal(t, 96, r.Offset("boundary"))
	assert.Equal(t, 104, r.Size())

	r = BlameHunk.Resolve(ffi.Width32)
	assert.Equal(t, 24, r.Offset("final_start_line_number"))
	assert.Equal(t, 28, r.Offset("final_signature"))
	assert.Equal(t, 52, r.Offset("orig_start_line_number"))
	assert.Equal(t, 64, r.Offset("boundary"))
	assert.Equal(t, 68, r.Size())
}

func TestBufAndErrorOffsets(t *testing.T) {
	r := Buf.Resolve(ffi.Width64)
	assert.Equal(t, 0, r.Offset("ptr"))
	assert.Equal(t, 8, r.Offset("reserved"))
	assert.Equal(t, 16, r.Offset("size"))

	e := Error.Resolve(ffi.Width32)
	assert.Equal(t, 0, e.Offset("message"))
	assert.Equal(t, 4, e.Offset("klass"))
}

func TestDefaultSet(t *testing.T) {
	s := Default(ffi.Width64)
	assert.Equal(t, ffi.Width64, s.Width())

	r, ok := s.Lookup("git_signature")
	require.True(t, ok)
	assert.Equal(t, 32, r.Size())

	_, ok = s.Lookup("git_nonexistent")
	assert.False(t, ok)
	assert.Panics(t, func() { s.Get("git_nonexistent") })
	assert.Len(t, s.Names(), 7)
}
