// Package layouts holds the struct layout constants for the native
// libgit2 engine. The engine never exposes these layouts through a
// typed interface; they are derived from its headers and must match
// the native compiler's padding exactly.
//
// Built-in layouts target the engine versions the binding is tested
// against. Because the "options" structs are version-fragile, a JSON
// layout profile can override any built-in layout for other engine
// versions; profiles are validated against an embedded schema before
// they are trusted.
package layouts

import (
	"fmt"
	"sort"

	"github.com/nullstyle/git2/internal/ffi"
)

// OidSize is the byte length of a binary object id.
const OidSize = 20

// Built-in layout definitions. Field order is the engine's declaration
// order; offsets fall out of the ffi alignment rules per target width.
var (
	// Error mirrors git_error: the transient native-owned structure
	// returned by git_error_last.
	Error = ffi.NewLayout("git_error",
		ffi.Field{Name: "message", Kind: ffi.Pointer},
		ffi.Field{Name: "klass", Kind: ffi.Int32},
	)

	// Buf mirrors git_buf: pointer + reserved + size, a length-bounded
	// byte run with no NUL guarantee.
	Buf = ffi.NewLayout("git_buf",
		ffi.Field{Name: "ptr", Kind: ffi.Pointer},
		ffi.Field{Name: "reserved", Kind: ffi.Size},
		ffi.Field{Name: "size", Kind: ffi.Size},
	)

	// Signature mirrors git_signature with its embedded git_time.
	Signature = ffi.NewLayout("git_signature",
		ffi.Field{Name: "name", Kind: ffi.Pointer},
		ffi.Field{Name: "email", Kind: ffi.Pointer},
		ffi.Field{Name: "time", Kind: ffi.Int64},
		ffi.Field{Name: "offset", Kind: ffi.Int32},
		ffi.Field{Name: "sign", Kind: ffi.Uint8},
	)

	// IndexEntry mirrors git_index_entry. The two timestamps are
	// flattened; bits 12-13 of flags carry the merge stage.
	IndexEntry = ffi.NewLayout("git_index_entry",
		ffi.Field{Name: "ctime_seconds", Kind: ffi.Int32},
		ffi.Field{Name: "ctime_nanoseconds", Kind: ffi.Uint32},
		ffi.Field{Name: "mtime_seconds", Kind: ffi.Int32},
		ffi.Field{Name: "mtime_nanoseconds", Kind: ffi.Uint32},
		ffi.Field{Name: "dev", Kind: ffi.Uint32},
		ffi.Field{Name: "ino", Kind: ffi.Uint32},
		ffi.Field{Name: "mode", Kind: ffi.Uint32},
		ffi.Field{Name: "uid", Kind: ffi.Uint32},
		ffi.Field{Name: "gid", Kind: ffi.Uint32},
		ffi.Field{Name: "file_size", Kind: ffi.Uint32},
		ffi.Field{Name: "id", Kind: ffi.Bytes, Len: OidSize},
		ffi.Field{Name: "flags", Kind: ffi.Uint16},
		ffi.Field{Name: "flags_extended", Kind: ffi.Uint16},
		ffi.Field{Name: "path", Kind: ffi.Pointer},
	)

	// BlameOptions mirrors git_blame_options as passed to
	// git_blame_file: version tag, commit range, line range.
	BlameOptions = ffi.NewLayout("git_blame_options",
		ffi.Field{Name: "version", Kind: ffi.Uint32},
		ffi.Field{Name: "newest_commit", Kind: ffi.Bytes, Len: OidSize},
		ffi.Field{Name: "oldest_commit", Kind: ffi.Bytes, Len: OidSize},
		ffi.Field{Name: "min_line", Kind: ffi.Size},
		ffi.Field{Name: "max_line", Kind: ffi.Size},
	)

	// BlameHunk mirrors git_blame_hunk.
	BlameHunk = ffi.NewLayout("git_blame_hunk",
		ffi.Field{Name: "lines_in_hunk", Kind: ffi.Size},
		ffi.Field{Name: "final_commit_id", Kind: ffi.Bytes, Len: OidSize},
		ffi.Field{Name: "final_start_line_number", Kind: ffi.Size},
		ffi.Field{Name: "final_signature", Kind: ffi.Pointer},
		ffi.Field{Name: "orig_commit_id", Kind: ffi.Bytes, Len: OidSize},
		ffi.Field{Name: "orig_start_line_number", Kind: ffi.Size},
		ffi.Field{Name: "orig_signature", Kind: ffi.Pointer},
		ffi.Field{Name: "orig_path", Kind: ffi.Pointer},
		ffi.Field{Name: "boundary", Kind: ffi.Uint8},
	)

	// RebaseOperation mirrors git_rebase_operation: a 4-byte type tag,
	// an OID, then a realigned exec string pointer.
	RebaseOperation = ffi.NewLayout("git_rebase_operation",
		ffi.Field{Name: "type", Kind: ffi.Uint32},
		ffi.Field{Name: "id", Kind: ffi.Bytes, Len: OidSize},
		ffi.Field{Name: "exec", Kind: ffi.Pointer},
	)
)

func builtins() []*ffi.Layout {
	return []*ffi.Layout{
		Error, Buf, Signature, IndexEntry,
		BlameOptions, BlameHunk, RebaseOperation,
	}
}

// Set is the collection of resolved layouts for one pointer width,
// after any profile overrides have been applied.
type Set struct {
	width ffi.Width
	m     map[string]*ffi.Resolved
}

// Default returns the built-in layout set resolved at width w.
func Default(w ffi.Width) *Set {
	s := &Set{width: w, m: make(map[string]*ffi.Resolved)}
	for _, l := range builtins() {
		s.m[l.Name()] = l.Resolve(w)
	}
	return s
}

// Width returns the pointer width the set was resolved for.
func (s *Set) Width() ffi.Width { return s.width }

// Lookup returns the resolved layout for a struct name.
func (s *Set) Lookup(name string) (*ffi.Resolved, bool) {
	r, ok := s.m[name]
	return r, ok
}

// Get returns the resolved layout for a struct name. An unknown name
// is a programming error, not a runtime condition.
func (s *Set) Get(name string) *ffi.Resolved {
	r, ok := s.m[name]
	if !ok {
		panic(fmt.Sprintf("layouts: unknown struct %q", name))
	}
	return r
}

// Names returns the struct names present in the set, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.m))
	for n := range s.m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
