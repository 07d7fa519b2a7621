package layouts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nullstyle/git2/internal/ffi"
)

//go:embed profile.schema.json
var profileSchema []byte

// Profile is a version-specific override of one or more struct
// layouts, loaded from JSON. Field lists replace the built-in
// declaration order wholesale; offsets are still derived by the ffi
// alignment rules, so a profile only needs to know the engine's field
// order, not its padding.
type Profile struct {
	// Engine is the engine version the profile was derived from, for
	// example "1.7".
	Engine string `json:"engine"`

	// Structs maps struct names to replacement field lists.
	Structs map[string][]ProfileField `json:"structs"`
}

// ProfileField is one field in a profile's struct description.
type ProfileField struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Len  int    `json:"len,omitempty"`
}

var kindNames = map[string]ffi.Kind{
	"uint8":   ffi.Uint8,
	"int8":    ffi.Int8,
	"uint16":  ffi.Uint16,
	"int16":   ffi.Int16,
	"uint32":  ffi.Uint32,
	"int32":   ffi.Int32,
	"uint64":  ffi.Uint64,
	"int64":   ffi.Int64,
	"size":    ffi.Size,
	"pointer": ffi.Pointer,
	"bytes":   ffi.Bytes,
}

// LoadProfile reads and validates a layout profile. Validation happens
// before any field is trusted: a malformed profile must fail here, not
// corrupt a decode later.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layouts: read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile validates raw JSON against the embedded schema and
// decodes it.
func ParseProfile(data []byte) (*Profile, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.schema.json", bytes.NewReader(profileSchema)); err != nil {
		return nil, fmt.Errorf("layouts: load schema: %w", err)
	}
	schema, err := compiler.Compile("profile.schema.json")
	if err != nil {
		return nil, fmt.Errorf("layouts: compile schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("layouts: parse profile: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("layouts: invalid profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("layouts: decode profile: %w", err)
	}
	for name, fields := range p.Structs {
		for _, f := range fields {
			k, ok := kindNames[f.Kind]
			if !ok {
				return nil, fmt.Errorf("layouts: struct %s field %s: unknown kind %q", name, f.Name, f.Kind)
			}
			if k == ffi.Bytes && f.Len <= 0 {
				return nil, fmt.Errorf("layouts: struct %s field %s: bytes kind needs len", name, f.Name)
			}
			if k != ffi.Bytes && f.Len != 0 {
				return nil, fmt.Errorf("layouts: struct %s field %s: len only valid for bytes", name, f.Name)
			}
		}
	}
	return &p, nil
}

// Apply returns a copy of the set with the profile's overrides
// resolved at the set's width. Overriding a struct the binding does
// not know about is an error: it would silently do nothing.
func (s *Set) Apply(p *Profile) (*Set, error) {
	out := &Set{width: s.width, m: make(map[string]*ffi.Resolved, len(s.m))}
	for name, r := range s.m {
		out.m[name] = r
	}
	for name, pfields := range p.Structs {
		if _, ok := s.m[name]; !ok {
			return nil, fmt.Errorf("layouts: profile overrides unknown struct %q", name)
		}
		fields := make([]ffi.Field, len(pfields))
		for i, f := range pfields {
			fields[i] = ffi.Field{Name: f.Name, Kind: kindNames[f.Kind], Len: f.Len}
		}
		out.m[name] = ffi.NewLayout(name, fields...).Resolve(s.width)
	}
	return out, nil
}
