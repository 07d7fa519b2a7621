//go:build windows

package native

import (
	"os"

	"golang.org/x/sys/windows"
)

func sonames() []string {
	return []string{"git2.dll", "libgit2.dll"}
}

func defaultSearchPaths() []string {
	paths := []string{}
	if pf := os.Getenv("ProgramFiles"); pf != "" {
		paths = append(paths, pf+`\libgit2\bin`)
	}
	return paths
}

func readable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dlOpen(path string) (uintptr, error) {
	h, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func dlSym(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func dlClose(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}
