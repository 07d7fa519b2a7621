package ffi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() *Layout {
	return NewLayout("probe",
		Field{Name: "version", Kind: Uint32},
		Field{Name: "id", Kind: Bytes, Len: 20},
		Field{Name: "flags", Kind: Uint16},
		Field{Name: "delta", Kind: Int32},
		Field{Name: "stamp", Kind: Int64},
		Field{Name: "count", Kind: Size},
		Field{Name: "next", Kind: Pointer},
		Field{Name: "sign", Kind: Int8},
	)
}

func TestReaderWriterRoundTrip(t *testing.T) {
	oid := make([]byte, 20)
	for i := range oid {
		oid[i] = byte(i)
	}

	for _, w := range []Width{Width32, Width64} {
		r := testLayout().Resolve(w)
		wr := NewWriter(r)
		wr.PutUint32("version", 1)
		wr.PutBytes("id", oid)
		wr.PutUint16("flags", 0x2000)
		wr.PutInt32("delta", -60)
		wr.PutInt64("stamp", 1700000000)
		wr.PutUsize("count", 42)
		wr.PutPointer("next", 0)
		wr.PutInt8("sign", -1)

		rd := ReaderOf(wr.Buf(), r)
		assert.Equal(t, uint32(1), rd.Uint32("version"))
		assert.Equal(t, oid, rd.Bytes("id"))
		assert.Equal(t, uint16(0x2000), rd.Uint16("flags"))
		assert.Equal(t, int32(-60), rd.Int32("delta"))
		assert.Equal(t, int64(1700000000), rd.Int64("stamp"))
		assert.Equal(t, uint64(42), rd.Usize("count"))
		assert.Equal(t, uintptr(0), rd.Pointer("next"))
		assert.Equal(t, int8(-1), rd.Int8("sign"))
	}
}

func TestReaderCopiesBytes(t *testing.T) {
	r := testLayout().Resolve(NativeWidth)
	wr := NewWriter(r)
	wr.PutBytes("id", make([]byte, 20))

	rd := ReaderOf(wr.Buf(), r)
	got := rd.Bytes("id")
	got[0] = 0xFF
	assert.Equal(t, byte(0), rd.Bytes("id")[0], "Bytes must copy, not alias")
}

func TestReaderFromBaseAddress(t *testing.T) {
	r := NewLayout("pair",
		Field{Name: "a", Kind: Uint32},
		Field{Name: "b", Kind: Uint32},
	).Resolve(NativeWidth)

	buf := []byte{0x01, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x7F}
	rd := NewReader(uintptr(unsafe.Pointer(&buf[0])), r)
	assert.Equal(t, uint32(1), rd.Uint32("a"))
	assert.Equal(t, uint32(0x7FFFFFFF), rd.Uint32("b"))
}

func TestReaderKindMismatchPanics(t *testing.T) {
	r := testLayout().Resolve(NativeWidth)
	rd := ReaderOf(make([]byte, r.Size()), r)
	assert.Panics(t, func() { rd.Uint32("id") })
	assert.Panics(t, func() { rd.Pointer("version") })
}

func TestReaderShortBufferPanics(t *testing.T) {
	r := testLayout().Resolve(NativeWidth)
	assert.Panics(t, func() { ReaderOf(make([]byte, r.Size()-1), r) })
	assert.Panics(t, func() { NewReader(0, r) })
}

func TestWriterBadLengthPanics(t *testing.T) {
	r := testLayout().Resolve(NativeWidth)
	wr := NewWriter(r)
	assert.Panics(t, func() { wr.PutBytes("id", make([]byte, 19)) })
}

func TestWriterSizeOverflowOn32Bit(t *testing.T) {
	r := testLayout().Resolve(Width32)
	wr := NewWriter(r)
	assert.Panics(t, func() { wr.PutUsize("count", 1<<33) })
}

func TestOutPtr(t *testing.T) {
	o := NewOutPtr()
	require.NotZero(t, o.Addr())
	assert.True(t, o.IsNull(), "fresh scratch reads as null")

	// Simulate the engine writing a pointer through the out-param.
	*(*uintptr)(unsafe.Pointer(o.Addr())) = 0xDEADBEEF
	assert.Equal(t, uintptr(0xDEADBEEF), o.Value())
	assert.False(t, o.IsNull())
}

func TestOutScalars(t *testing.T) {
	n := NewOutInt32()
	*(*int32)(unsafe.Pointer(n.Addr())) = -31
	assert.Equal(t, int32(-31), n.Value())

	s := NewOutSize()
	*(*uintptr)(unsafe.Pointer(s.Addr())) = 7
	assert.Equal(t, uint64(7), s.Value())
}

func TestOutStruct(t *testing.T) {
	o := NewOutStruct(20)
	assert.True(t, o.IsZero())
	o.Bytes()[19] = 1
	assert.False(t, o.IsZero())
	assert.Len(t, o.Bytes(), 20)
}
