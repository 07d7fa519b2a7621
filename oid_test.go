package git2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOid(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"lowercase", "000102030405060708090a0b0c0d0e0f10111213", false},
		{"uppercase", "000102030405060708090A0B0C0D0E0F10111213", false},
		{"too short", "0001", true},
		{"too long", "000102030405060708090a0b0c0d0e0f1011121314", true},
		{"not hex", "zz0102030405060708090a0b0c0d0e0f10111213", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOid(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			// Canonical form is always lowercase.
			assert.Equal(t, "000102030405060708090a0b0c0d0e0f10111213", o.String())
		})
	}
}

func TestOidStringIsZeroPadded(t *testing.T) {
	b := make([]byte, OidSize)
	for i := range b {
		b[i] = byte(i)
	}
	o := oidFromBytes(b)
	s := o.String()
	assert.Len(t, s, OidHexSize)
	assert.Equal(t, "000102030405060708090a0b0c0d0e0f10111213", s)
}

func TestOidIsZero(t *testing.T) {
	var zero Oid
	assert.True(t, zero.IsZero())

	o, err := NewOid("000102030405060708090a0b0c0d0e0f10111213")
	require.NoError(t, err)
	assert.False(t, o.IsZero())
}

func TestOidEqual(t *testing.T) {
	a, err := NewOid("000102030405060708090a0b0c0d0e0f10111213")
	require.NoError(t, err)
	b, err := NewOid("000102030405060708090a0b0c0d0e0f10111213")
	require.NoError(t, err)
	c, err := NewOid("ffffffffffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Oid)(nil).Equal(nil))
}

func TestOidFromBytesRejectsWrongLength(t *testing.T) {
	assert.Panics(t, func() { oidFromBytes(make([]byte, 19)) })
	assert.Panics(t, func() { oidFromBytes(nil) })
}
