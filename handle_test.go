package git2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLifecycle(t *testing.T) {
	released := 0
	var releasedPtr uintptr
	h := newHandle(0xCAFE, "commit", func(p uintptr) {
		released++
		releasedPtr = p
	})

	ptr, err := h.Ptr()
	require.NoError(t, err)
	assert.Equal(t, uintptr(0xCAFE), ptr)
	assert.False(t, h.Closed())
	assert.Equal(t, "commit", h.Kind())

	require.NoError(t, h.Close())
	assert.True(t, h.Closed())
	assert.Equal(t, 1, released)
	assert.Equal(t, uintptr(0xCAFE), releasedPtr,
		"release receives the original pointer")
}

func TestHandleCloseIsIdempotent(t *testing.T) {
	released := 0
	h := newHandle(0xCAFE, "tree", func(uintptr) { released++ })

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.Equal(t, 1, released, "release runs exactly once")
}

func TestHandleUseAfterClose(t *testing.T) {
	h := newHandle(0xCAFE, "blame", func(uintptr) {})
	require.NoError(t, h.Close())

	_, err := h.Ptr()
	require.Error(t, err)
	assert.True(t, IsUseAfterFree(err))

	var uaf *UseAfterFreeError
	require.ErrorAs(t, err, &uaf)
	assert.Equal(t, "blame", uaf.Resource, "error names the resource kind")
}

func TestNewHandleRejectsBadInput(t *testing.T) {
	assert.Panics(t, func() { newHandle(0, "repository", func(uintptr) {}) },
		"null pointer is a caller bug")
	assert.Panics(t, func() { newHandle(0xCAFE, "repository", nil) },
		"missing release function is a caller bug")
}
