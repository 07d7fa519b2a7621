//go:build linux || darwin || freebsd

package native

import (
	"runtime"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

// sonames lists the library file names probed during discovery, most
// specific first. Engine minor versions change struct layouts, so the
// versioned names the binding was derived against come before the bare
// soname.
func sonames() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			"libgit2.1.9.dylib",
			"libgit2.1.8.dylib",
			"libgit2.1.7.dylib",
			"libgit2.dylib",
		}
	}
	return []string{
		"libgit2.so.1.9",
		"libgit2.so.1.8",
		"libgit2.so.1.7",
		"libgit2.so",
	}
}

// defaultSearchPaths are the conventional install locations probed
// after caller-configured directories.
func defaultSearchPaths() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			"/opt/homebrew/lib",
			"/usr/local/lib",
			"/usr/lib",
		}
	}
	return []string{
		"/usr/local/lib",
		"/usr/lib",
		"/usr/lib/x86_64-linux-gnu",
		"/usr/lib/aarch64-linux-gnu",
	}
}

// readable reports whether the candidate file exists and is readable.
func readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

func dlOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func dlSym(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func dlClose(handle uintptr) error {
	return purego.Dlclose(handle)
}
