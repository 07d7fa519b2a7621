package git2

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullstyle/git2/internal/ffi"
)

func TestOpenRepository(t *testing.T) {
	stub := &stubDispatcher{}
	stub.invoke = func(name string, args ...uintptr) uintptr {
		switch name {
		case "git_repository_open":
			putNativeWord(args[0], 0xAB0)
			return rc(0)
		case "git_repository_free":
			return 0
		}
		t.Fatalf("unexpected native call %s", name)
		return 0
	}
	eng := newStubEngine(stub)

	repo, err := eng.OpenRepository("/work/repo")
	require.NoError(t, err)
	require.NoError(t, repo.Free())
	assert.Equal(t, []string{"git_repository_open", "git_repository_free"}, stub.calls)
}

func TestOpenRepositoryNotFound(t *testing.T) {
	stub := &stubDispatcher{
		invoke: func(string, ...uintptr) uintptr { return rc(-3) },
		msg:    "could not find repository at '/nowhere'",
	}
	eng := newStubEngine(stub)

	_, err := eng.OpenRepository("/nowhere")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRepositoryWorkdirBare(t *testing.T) {
	stub := &stubDispatcher{}
	stub.invoke = func(name string, args ...uintptr) uintptr {
		// Bare repositories have no working directory: null pointer.
		return 0
	}
	eng := newStubEngine(stub)
	repo := &Repository{eng: eng, h: eng.newHandle(0xAB0, "repository", "git_repository_free")}

	wd, err := repo.Workdir()
	require.NoError(t, err)
	assert.Equal(t, "", wd)
}

func TestRepositoryPath(t *testing.T) {
	path := ffi.CString("/work/repo/.git/")
	stub := &stubDispatcher{}
	stub.invoke = func(name string, args ...uintptr) uintptr {
		if name == "git_repository_path" {
			return ffi.BytesAddr(path)
		}
		return 0
	}
	eng := newStubEngine(stub)
	repo := &Repository{eng: eng, h: eng.newHandle(0xAB0, "repository", "git_repository_free")}

	got, err := repo.Path()
	runtime.KeepAlive(path)
	require.NoError(t, err)
	assert.Equal(t, "/work/repo/.git/", got)
}

func TestRepositoryUseAfterFree(t *testing.T) {
	eng := newStubEngine(&stubDispatcher{})
	repo := &Repository{eng: eng, h: eng.newHandle(0xAB0, "repository", "git_repository_free")}
	require.NoError(t, repo.Free())

	_, err := repo.Path()
	assert.True(t, IsUseAfterFree(err))
	_, err = repo.Head()
	assert.True(t, IsUseAfterFree(err))
	_, err = repo.Index()
	assert.True(t, IsUseAfterFree(err))
}
