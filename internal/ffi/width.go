// Package ffi provides the primitive marshaling layer for the native
// libgit2 engine: pointer-width resolution, struct layout arithmetic,
// typed field access over raw memory, out-parameter scratch buffers,
// and C string encoding/decoding.
//
// Nothing in this package knows about git semantics. It only knows how
// to move bytes across the foreign-call boundary without corrupting
// them.
package ffi

import "unsafe"

// Width is the size in bytes of a native pointer (and of size_t) on a
// given target. Layout computations are parameterized on it so tests
// can exercise both targets from a single process.
type Width int

// Supported pointer widths.
const (
	Width32 Width = 4
	Width64 Width = 8
)

// NativeWidth is the pointer width of the running process. It is fixed
// at process start and never re-evaluated.
var NativeWidth = resolveWidth()

func resolveWidth() Width {
	switch unsafe.Sizeof(uintptr(0)) {
	case 4:
		return Width32
	case 8:
		return Width64
	default:
		// No known Go port has a pointer size outside 4/8; if one
		// appears, refuse to guess a layout for it.
		panic("ffi: unsupported pointer width")
	}
}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	return w == Width32 || w == Width64
}

// Align returns the smallest multiple of w that is >= off.
// Align(24, 8) == 24, Align(25, 8) == 32, Align(21, 4) == 24.
func Align(off int, w Width) int {
	if off < 0 {
		panic("ffi: negative offset")
	}
	n := int(w)
	return (off + n - 1) / n * n
}

// alignTo is Align for an arbitrary alignment boundary.
func alignTo(off, n int) int {
	return (off + n - 1) / n * n
}
