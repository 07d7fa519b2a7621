package ffi

import "unsafe"

// maxCString bounds unbounded C string scans. A terminator further out
// than this means we are reading through garbage, not a real string.
const maxCString = 1 << 24

// CString encodes s as UTF-8 bytes with a single trailing NUL in a
// freshly allocated buffer. Pass its address with BytesAddr and keep
// the buffer alive across the native call.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// GoString decodes a NUL-terminated native string. A null pointer
// decodes to the empty string, matching the engine's convention of
// optional string fields.
func GoString(p uintptr) string {
	s, _ := GoStringOK(p)
	return s
}

// GoStringOK decodes a NUL-terminated native string, reporting whether
// the pointer was non-null so callers can distinguish "" from absent.
func GoStringOK(p uintptr) (string, bool) {
	if p == 0 {
		return "", false
	}
	n := 0
	for n < maxCString {
		if *(*byte)(unsafe.Pointer(p + uintptr(n))) == 0 {
			break
		}
		n++
	}
	if n == 0 {
		return "", true
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n)), true
}

// GoStringN decodes at most n bytes starting at p, stopping early at a
// NUL. Used for engine buffers that carry an explicit length instead
// of a terminator. A null pointer decodes to the empty string.
func GoStringN(p uintptr, n int) string {
	if p == 0 || n <= 0 {
		return ""
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// CopyBytes copies n bytes of native memory starting at p. A null
// pointer yields nil. The result never aliases native memory.
func CopyBytes(p uintptr, n int) []byte {
	if p == 0 || n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
	return out
}
