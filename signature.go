package git2

import (
	"fmt"
	"time"

	"github.com/nullstyle/git2/internal/ffi"
)

// Time is the timestamp triple carried by a signature: seconds since
// the epoch, the timezone offset in minutes, and the original sign
// character ('+' or '-') preserved so -0000 offsets survive a
// round-trip.
type Time struct {
	Seconds int64
	Offset  int32
	Sign    byte
}

// Time converts to a time.Time in the signature's timezone.
func (t Time) Time() time.Time {
	loc := time.FixedZone(fmt.Sprintf("%c%02d%02d", t.Sign, abs32(t.Offset)/60, abs32(t.Offset)%60),
		int(t.Offset)*60)
	return time.Unix(t.Seconds, 0).In(loc)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Signature is an author/committer record decoded from native memory.
// Name and email are owned managed strings; a null native string
// pointer decodes to "".
type Signature struct {
	Name  string
	Email string
	When  Time
}

// decodeSignatureAt reads a git_signature at p. A null pointer decodes
// to nil: signatures are optional in several engine structures.
func (e *Engine) decodeSignatureAt(p uintptr) *Signature {
	if p == 0 {
		return nil
	}
	rd := ffi.NewReader(p, e.layouts.Get("git_signature"))
	return &Signature{
		Name:  ffi.GoString(rd.Pointer("name")),
		Email: ffi.GoString(rd.Pointer("email")),
		When: Time{
			Seconds: rd.Int64("time"),
			Offset:  rd.Int32("offset"),
			Sign:    rd.Uint8("sign"),
		},
	}
}
