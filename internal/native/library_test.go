package native

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libgit2-custom.so")
	require.NoError(t, os.WriteFile(path, []byte{0x7F, 'E', 'L', 'F'}, 0o644))

	got, err := discover(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestDiscoverExplicitMissing(t *testing.T) {
	_, err := discover(filepath.Join(t.TempDir(), "nope.so"), nil)
	assert.ErrorContains(t, err, "not readable")
}

func TestDiscoverSearchPaths(t *testing.T) {
	dir := t.TempDir()
	name := sonames()[len(sonames())-1] // bare platform soname
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte{0}, 0o644))

	got, err := discover("", []string{dir})
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestDiscoverVersionedNameWins(t *testing.T) {
	dir := t.TempDir()
	names := sonames()
	require.Greater(t, len(names), 1)
	for _, n := range []string{names[0], names[len(names)-1]} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte{0}, 0o644))
	}

	got, err := discover("", []string{dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, names[0]), got,
		"most specific soname must be preferred")
}

func TestDiscoverNotFoundNamesCandidates(t *testing.T) {
	_, err := discover("", []string{t.TempDir()})
	require.Error(t, err)
	assert.ErrorContains(t, err, "not found")
	assert.ErrorContains(t, err, sonames()[0])
}

// bareLibrary builds a Library around the static table without any
// loaded code, for exercising dispatch bookkeeping. Reaching a real
// SyscallN through it would fault; the cases below all panic first.
func bareLibrary() *Library {
	l := &Library{
		path:  "fake",
		funcs: make(map[string]Func, len(Table)),
		log:   slog.Default(),
	}
	for _, spec := range Table {
		l.funcs[spec.Name] = Func{spec: spec, addr: 1}
	}
	return l
}

func TestInvokeUnknownSymbolPanics(t *testing.T) {
	l := bareLibrary()
	assert.Panics(t, func() { l.Invoke("git_no_such_symbol") })
}

func TestInvokeArityMismatchPanics(t *testing.T) {
	l := bareLibrary()
	assert.PanicsWithValue(t,
		"native: git_repository_open takes 2 args, got 1",
		func() { l.Invoke("git_repository_open", 0) })
}

func TestInvokeClosedLibraryPanics(t *testing.T) {
	l := bareLibrary()
	l.closed = true
	assert.Panics(t, func() { l.Invoke("git_libgit2_features") })
}

func TestShutdownWithoutInit(t *testing.T) {
	l := bareLibrary()
	assert.ErrorIs(t, l.Shutdown(), ErrNotInitialized)
}

func TestBound(t *testing.T) {
	l := bareLibrary()
	assert.True(t, l.Bound("git_commit_lookup"))
	assert.False(t, l.Bound("git_commit_create"))
}
