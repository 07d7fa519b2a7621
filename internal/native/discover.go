package native

import (
	"fmt"
	"path/filepath"
	"strings"
)

// discover picks the library path to load. Precedence: an explicit
// path wins outright (and must exist); otherwise caller-configured
// search directories are probed for a known soname, then the platform
// default locations. Downloading or installing the engine is out of
// scope here; we only find what is already on disk.
func discover(explicit string, searchPaths []string) (string, error) {
	if explicit != "" {
		if !readable(explicit) {
			return "", fmt.Errorf("native: library %s not readable", explicit)
		}
		return explicit, nil
	}

	dirs := append(append([]string{}, searchPaths...), defaultSearchPaths()...)
	var tried []string
	for _, dir := range dirs {
		for _, name := range sonames() {
			candidate := filepath.Join(dir, name)
			if readable(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
	}
	return "", fmt.Errorf("native: libgit2 not found; tried %s", strings.Join(tried, ", "))
}
