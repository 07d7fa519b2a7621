package git2

import (
	"encoding/hex"
	"fmt"

	"github.com/nullstyle/git2/internal/ffi"
	"github.com/nullstyle/git2/internal/layouts"
)

// OidSize is the byte length of a binary object id.
const OidSize = layouts.OidSize

// OidHexSize is the length of the canonical hex form.
const OidHexSize = OidSize * 2

// Oid is a fixed-length binary content identifier.
type Oid [OidSize]byte

// NewOid parses a 40-character lowercase or uppercase hex string.
func NewOid(s string) (*Oid, error) {
	if len(s) != OidHexSize {
		return nil, fmt.Errorf("git2: oid %q must be %d hex characters", s, OidHexSize)
	}
	var o Oid
	if _, err := hex.Decode(o[:], []byte(s)); err != nil {
		return nil, fmt.Errorf("git2: oid %q: %w", s, err)
	}
	return &o, nil
}

// oidFromBytes copies a decoded 20-byte run into an Oid.
func oidFromBytes(b []byte) Oid {
	if len(b) != OidSize {
		panic(fmt.Sprintf("git2: oid from %d bytes", len(b)))
	}
	var o Oid
	copy(o[:], b)
	return o
}

// oidFromPtr copies an OID out of native memory. A null pointer
// decodes to nil (absent), never to a zero id.
func oidFromPtr(p uintptr) *Oid {
	if p == 0 {
		return nil
	}
	o := oidFromBytes(ffi.CopyBytes(p, OidSize))
	return &o
}

// String returns the canonical lowercase hex form: always exactly 40
// characters, zero-padded per byte.
func (o *Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero reports whether the id is all zero bytes.
func (o *Oid) IsZero() bool {
	for _, b := range o {
		if b != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two ids carry the same bytes.
func (o *Oid) Equal(other *Oid) bool {
	if o == nil || other == nil {
		return o == other
	}
	return *o == *other
}
