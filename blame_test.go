package git2

import (
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullstyle/git2/internal/ffi"
)

func TestBlameOptionsEncode(t *testing.T) {
	eng := newStubEngine(&stubDispatcher{})
	r := eng.layouts.Get("git_blame_options")

	newest, err := NewOid("1111111111111111111111111111111111111111")
	require.NoError(t, err)
	oldest, err := NewOid("2222222222222222222222222222222222222222")
	require.NoError(t, err)

	opts := &BlameOptions{
		NewestCommit: newest,
		OldestCommit: oldest,
		MinLine:      10,
		MaxLine:      25,
	}
	buf := opts.encode(eng)
	require.Len(t, buf, r.Size())

	assert.Equal(t, uint32(blameOptionsVersion),
		binary.LittleEndian.Uint32(buf[r.Offset("version"):]))
	assert.Equal(t, newest[:], buf[r.Offset("newest_commit"):r.Offset("newest_commit")+OidSize])
	assert.Equal(t, oldest[:], buf[r.Offset("oldest_commit"):r.Offset("oldest_commit")+OidSize])

	rd := ffi.ReaderOf(buf, r)
	assert.Equal(t, uint64(10), rd.Usize("min_line"))
	assert.Equal(t, uint64(25), rd.Usize("max_line"))
}

func TestBlameOptionsEncodeNil(t *testing.T) {
	eng := newStubEngine(&stubDispatcher{})
	r := eng.layouts.Get("git_blame_options")

	var opts *BlameOptions
	buf := opts.encode(eng)
	require.Len(t, buf, r.Size())

	// The version tag is always set; everything else stays zero.
	assert.Equal(t, uint32(blameOptionsVersion),
		binary.LittleEndian.Uint32(buf[r.Offset("version"):]))
	rd := ffi.ReaderOf(buf, r)
	assert.Equal(t, uint64(0), rd.Usize("min_line"))
	assert.Equal(t, uint64(0), rd.Usize("max_line"))
}

func TestDecodeBlameHunk(t *testing.T) {
	eng := newStubEngine(&stubDispatcher{})

	finalID, err := NewOid("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	origID, err := NewOid("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)

	sigName := ffi.CString("Grace")
	sigEmail := ffi.CString("grace@example.com")
	sw := ffi.NewWriter(eng.layouts.Get("git_signature"))
	sw.PutPointer("name", ffi.BytesAddr(sigName))
	sw.PutPointer("email", ffi.BytesAddr(sigEmail))
	sw.PutInt64("time", 1650000000)
	sw.PutInt32("offset", 120)
	sw.PutUint8("sign", '+')
	sigBuf := sw.Buf()

	origPath := ffi.CString("lib/old_name.c")
	hw := ffi.NewWriter(eng.layouts.Get("git_blame_hunk"))
	hw.PutUsize("lines_in_hunk", 7)
	hw.PutBytes("final_commit_id", finalID[:])
	hw.PutUsize("final_start_line_number", 100)
	hw.PutPointer("final_signature", ffi.BytesAddr(sigBuf))
	hw.PutBytes("orig_commit_id", origID[:])
	hw.PutUsize("orig_start_line_number", 90)
	hw.PutPointer("orig_signature", 0)
	hw.PutPointer("orig_path", ffi.BytesAddr(origPath))
	hw.PutUint8("boundary", 1)
	buf := hw.Buf()

	hunk := eng.decodeBlameHunk(ffi.BytesAddr(buf))
	runtime.KeepAlive(sigName)
	runtime.KeepAlive(sigEmail)
	runtime.KeepAlive(sigBuf)
	runtime.KeepAlive(origPath)
	runtime.KeepAlive(buf)

	require.NotNil(t, hunk)
	assert.Equal(t, uint64(7), hunk.LinesInHunk)
	assert.True(t, finalID.Equal(&hunk.FinalCommitId))
	assert.Equal(t, uint64(100), hunk.FinalStartLineNumber)
	require.NotNil(t, hunk.FinalSignature)
	assert.Equal(t, "Grace", hunk.FinalSignature.Name)
	assert.Equal(t, "grace@example.com", hunk.FinalSignature.Email)
	assert.True(t, origID.Equal(&hunk.OrigCommitId))
	assert.Equal(t, uint64(90), hunk.OrigStartLineNumber)
	assert.Nil(t, hunk.OrigSignature, "null signature pointer decodes to nil")
	assert.Equal(t, "lib/old_name.c", hunk.OrigPath)
	assert.True(t, hunk.Boundary)
}
