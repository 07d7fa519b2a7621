package git2

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullstyle/git2/internal/ffi"
)

func TestDecodeRebaseOperation(t *testing.T) {
	eng := newStubEngine(&stubDispatcher{})

	id, err := NewOid("cccccccccccccccccccccccccccccccccccccccc")
	require.NoError(t, err)

	wr := ffi.NewWriter(eng.layouts.Get("git_rebase_operation"))
	wr.PutUint32("type", uint32(RebaseOperationSquash))
	wr.PutBytes("id", id[:])
	wr.PutPointer("exec", 0)
	buf := wr.Buf()

	op := eng.decodeRebaseOperation(ffi.BytesAddr(buf))
	runtime.KeepAlive(buf)

	require.NotNil(t, op)
	assert.Equal(t, RebaseOperationSquash, op.Type)
	assert.True(t, id.Equal(&op.Id))
	assert.Empty(t, op.Exec)
}

func TestDecodeRebaseOperationExec(t *testing.T) {
	eng := newStubEngine(&stubDispatcher{})

	cmd := ffi.CString("make test")
	wr := ffi.NewWriter(eng.layouts.Get("git_rebase_operation"))
	wr.PutUint32("type", uint32(RebaseOperationExec))
	wr.PutPointer("exec", ffi.BytesAddr(cmd))
	buf := wr.Buf()

	op := eng.decodeRebaseOperation(ffi.BytesAddr(buf))
	runtime.KeepAlive(cmd)
	runtime.KeepAlive(buf)

	require.NotNil(t, op)
	assert.Equal(t, RebaseOperationExec, op.Type)
	assert.True(t, op.Id.IsZero(), "exec steps carry no commit id")
	assert.Equal(t, "make test", op.Exec)
}

func TestRebaseOperationTypeString(t *testing.T) {
	tests := []struct {
		typ  RebaseOperationType
		want string
	}{
		{RebaseOperationPick, "pick"},
		{RebaseOperationReword, "reword"},
		{RebaseOperationEdit, "edit"},
		{RebaseOperationSquash, "squash"},
		{RebaseOperationFixup, "fixup"},
		{RebaseOperationExec, "exec"},
		{RebaseOperationType(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestNoRebaseOperationSentinel(t *testing.T) {
	// The engine reports "no current operation" as SIZE_MAX at its own
	// pointer width.
	if ffi.NativeWidth == ffi.Width32 {
		assert.Equal(t, uint64(0xFFFFFFFF), noRebaseOperation())
		return
	}
	assert.Equal(t, ^uint64(0), noRebaseOperation())
}
