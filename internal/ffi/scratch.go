package ffi

import (
	"encoding/binary"
	"unsafe"
)

// Out-parameter scratch buffers. Many engine calls return results by
// writing through a caller-supplied pointer: pointer-to-pointer for
// opaque handles, pointer-to-scalar for counts. Each Out value owns a
// freshly allocated buffer for exactly one in-flight call; buffers are
// never shared or reused across calls.

// OutPtr is scratch for a pointer-sized out-parameter (void **).
type OutPtr struct {
	buf []byte
}

// NewOutPtr allocates scratch for one pointer-width out-parameter.
// Marked noinline so the buffer escapes to the non-moving heap; inlined
// allocations can land on the goroutine stack, where Addr's uintptr
// goes stale if the stack moves during the native call.
//
//go:noinline
func NewOutPtr() *OutPtr {
	return &OutPtr{buf: make([]byte, NativeWidth)}
}

// Addr returns the address the native call writes through. The OutPtr
// must be kept alive across the call (runtime.KeepAlive).
func (o *OutPtr) Addr() uintptr {
	return uintptr(unsafe.Pointer(&o.buf[0]))
}

// Value reads back the written pointer. Zero means the engine reported
// success without producing a resource (absent result).
func (o *OutPtr) Value() uintptr {
	if NativeWidth == Width32 {
		return uintptr(binary.LittleEndian.Uint32(o.buf))
	}
	return uintptr(binary.LittleEndian.Uint64(o.buf))
}

// IsNull reports whether the engine wrote a null pointer (or wrote
// nothing at all, since the buffer starts zeroed).
func (o *OutPtr) IsNull() bool {
	return o.Value() == 0
}

// OutInt32 is scratch for an int32/uint32 out-parameter (int *).
type OutInt32 struct {
	buf []byte
}

// NewOutInt32 allocates scratch for one 32-bit out-parameter.
// Noinline for the same heap-escape reason as NewOutPtr.
//
//go:noinline
func NewOutInt32() *OutInt32 {
	return &OutInt32{buf: make([]byte, 4)}
}

// Addr returns the address the native call writes through.
func (o *OutInt32) Addr() uintptr {
	return uintptr(unsafe.Pointer(&o.buf[0]))
}

// Value reads back the written value.
func (o *OutInt32) Value() int32 {
	return int32(binary.LittleEndian.Uint32(o.buf))
}

// OutSize is scratch for a size_t out-parameter (size_t *).
type OutSize struct {
	buf []byte
}

// NewOutSize allocates scratch for one size_t out-parameter.
// Noinline for the same heap-escape reason as NewOutPtr.
//
//go:noinline
func NewOutSize() *OutSize {
	return &OutSize{buf: make([]byte, NativeWidth)}
}

// Addr returns the address the native call writes through.
func (o *OutSize) Addr() uintptr {
	return uintptr(unsafe.Pointer(&o.buf[0]))
}

// Value reads back the written value, widened to uint64.
func (o *OutSize) Value() uint64 {
	if NativeWidth == Width32 {
		return uint64(binary.LittleEndian.Uint32(o.buf))
	}
	return binary.LittleEndian.Uint64(o.buf)
}

// OutStruct is scratch sized for a whole struct written by the engine
// (for example git_oid out-parameters, which are written by value).
type OutStruct struct {
	buf []byte
}

// NewOutStruct allocates zeroed scratch of n bytes.
// Noinline for the same heap-escape reason as NewOutPtr.
//
//go:noinline
func NewOutStruct(n int) *OutStruct {
	return &OutStruct{buf: make([]byte, n)}
}

// Addr returns the address the native call writes through.
func (o *OutStruct) Addr() uintptr {
	return uintptr(unsafe.Pointer(&o.buf[0]))
}

// Bytes returns the written buffer.
func (o *OutStruct) Bytes() []byte { return o.buf }

// IsZero reports whether the engine left the buffer untouched
// (all-zero pattern, treated as an absent result).
func (o *OutStruct) IsZero() bool {
	for _, b := range o.buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// BytesAddr returns the address of the first byte of b, for passing Go
// buffers (encoded C strings, options structs) to native calls. The
// slice must be non-empty and kept alive across the call.
func BytesAddr(b []byte) uintptr {
	if len(b) == 0 {
		panic("ffi: address of empty buffer")
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
