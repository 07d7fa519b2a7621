package git2

import (
	"fmt"

	"github.com/nullstyle/git2/internal/ffi"
)

// Feature flags reported by the engine build.
type Feature uint32

// Optional engine capabilities.
const (
	FeatureThreads Feature = 1 << 0
	FeatureHTTPS   Feature = 1 << 1
	FeatureSSH     Feature = 1 << 2
	FeatureNSec    Feature = 1 << 3
)

// Has reports whether the feature bit is set.
func (f Feature) Has(bit Feature) bool { return f&bit != 0 }

// Version is the engine's reported version triple.
type Version struct {
	Major int32
	Minor int32
	Patch int32
}

// String formats the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Version queries the loaded engine's version through three int
// out-parameters.
func (e *Engine) Version() (Version, error) {
	major := ffi.NewOutInt32()
	minor := ffi.NewOutInt32()
	patch := ffi.NewOutInt32()
	if _, err := e.call("git_libgit2_version", major.Addr(), minor.Addr(), patch.Addr()); err != nil {
		return Version{}, err
	}
	return Version{
		Major: major.Value(),
		Minor: minor.Value(),
		Patch: patch.Value(),
	}, nil
}

// Features returns the capability bitmask the engine was built with.
func (e *Engine) Features() (Feature, error) {
	rc, err := e.call("git_libgit2_features")
	if err != nil {
		return 0, err
	}
	return Feature(rc), nil
}
