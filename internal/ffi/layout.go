package ffi

import (
	"fmt"
	"sync"
)

// Kind classifies a single field within a native struct layout.
type Kind int

// Field kinds. Size and Pointer occupy one pointer width; Bytes is a
// fixed-length byte array with alignment 1.
const (
	Uint8 Kind = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64
	Size    // native size_t
	Pointer // native pointer, zero means null
	Bytes   // fixed-size byte array, length in Field.Len
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Uint32:
		return "uint32"
	case Int32:
		return "int32"
	case Uint64:
		return "uint64"
	case Int64:
		return "int64"
	case Size:
		return "size"
	case Pointer:
		return "pointer"
	case Bytes:
		return "bytes"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// width returns the byte width of the kind at pointer width w.
func (k Kind) width(w Width) int {
	switch k {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32:
		return 4
	case Uint64, Int64:
		return 8
	case Size, Pointer:
		return int(w)
	}
	panic("ffi: kind has no fixed width: " + k.String())
}

// alignment returns the ABI alignment of the kind at pointer width w.
// Scalars align to their own size, capped at the pointer width (the
// i386 ABI aligns 8-byte integers to 4). Byte arrays are unaligned.
func (k Kind) alignment(w Width) int {
	if k == Bytes {
		return 1
	}
	n := k.width(w)
	if n > int(w) {
		return int(w)
	}
	return n
}

// Field describes one member of a native struct.
type Field struct {
	Name string
	Kind Kind
	Len  int // byte length, Bytes kind only
}

// Layout is the declarative description of one native struct. Offsets
// are not stored; they are derived per pointer width and cached, so a
// single Layout serves both 32-bit and 64-bit targets.
type Layout struct {
	name   string
	fields []Field

	mu       sync.Mutex
	resolved map[Width]*Resolved
}

// NewLayout builds a layout from an ordered field list. Field names
// must be unique; Bytes fields must carry a positive length.
func NewLayout(name string, fields ...Field) *Layout {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			panic("ffi: unnamed field in layout " + name)
		}
		if seen[f.Name] {
			panic("ffi: duplicate field " + f.Name + " in layout " + name)
		}
		seen[f.Name] = true
		if f.Kind == Bytes && f.Len <= 0 {
			panic("ffi: bytes field " + f.Name + " needs a length in layout " + name)
		}
		if f.Kind != Bytes && f.Len != 0 {
			panic("ffi: scalar field " + f.Name + " must not carry a length in layout " + name)
		}
	}
	return &Layout{
		name:     name,
		fields:   fields,
		resolved: make(map[Width]*Resolved, 2),
	}
}

// Name returns the layout's struct name.
func (l *Layout) Name() string { return l.name }

// Fields returns the ordered field list.
func (l *Layout) Fields() []Field { return l.fields }

// Resolve computes concrete offsets and total size for the given
// pointer width. Results are cached; the same *Resolved is returned on
// every call for a given width.
func (l *Layout) Resolve(w Width) *Resolved {
	if !w.Valid() {
		panic(fmt.Sprintf("ffi: invalid pointer width %d", w))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.resolved[w]; ok {
		return r
	}

	r := &Resolved{
		layout:  l,
		width:   w,
		offsets: make([]int, len(l.fields)),
		index:   make(map[string]int, len(l.fields)),
	}
	off := 0
	maxAlign := 1
	for i, f := range l.fields {
		a := f.Kind.alignment(w)
		if a > maxAlign {
			maxAlign = a
		}
		off = alignTo(off, a)
		r.offsets[i] = off
		if f.Kind == Bytes {
			off += f.Len
		} else {
			off += f.Kind.width(w)
		}
		r.index[f.Name] = i
	}
	// Trailing padding, as the native compiler would emit for arrays
	// of this struct.
	r.size = alignTo(off, maxAlign)

	l.resolved[w] = r
	return r
}

// Resolved is a Layout bound to one pointer width: every field has a
// concrete byte offset and the struct has a concrete size.
type Resolved struct {
	layout  *Layout
	width   Width
	offsets []int
	index   map[string]int
	size    int
}

// Name returns the struct name.
func (r *Resolved) Name() string { return r.layout.name }

// Width returns the pointer width the offsets were computed for.
func (r *Resolved) Width() Width { return r.width }

// Size returns the total struct size including trailing padding.
func (r *Resolved) Size() int { return r.size }

// Offset returns the byte offset of the named field. Unknown names are
// a programming error and panic.
func (r *Resolved) Offset(name string) int {
	return r.offsets[r.fieldIndex(name)]
}

// ResolvedField pairs a field descriptor with its computed offset.
type ResolvedField struct {
	Name   string
	Kind   Kind
	Len    int
	Offset int
}

// Fields returns every field with its computed offset, in declaration
// order. Used by diagnostics that dump layouts.
func (r *Resolved) Fields() []ResolvedField {
	out := make([]ResolvedField, len(r.layout.fields))
	for i, f := range r.layout.fields {
		out[i] = ResolvedField{Name: f.Name, Kind: f.Kind, Len: f.Len, Offset: r.offsets[i]}
	}
	return out
}

// field returns the field descriptor and offset for name, panicking on
// unknown names. A wrong field name is a layout/version bug, never a
// recoverable condition.
func (r *Resolved) field(name string) (Field, int) {
	i := r.fieldIndex(name)
	return r.layout.fields[i], r.offsets[i]
}

func (r *Resolved) fieldIndex(name string) int {
	i, ok := r.index[name]
	if !ok {
		panic("ffi: no field " + name + " in struct " + r.layout.name)
	}
	return i
}
