// Package native loads the libgit2 shared library at runtime and
// dispatches calls to it. It owns the static function table (one entry
// per bound symbol), the reference-counted engine init/shutdown, and
// the capture of the engine's transient "last error" state.
//
// The table must mirror the engine's C signatures exactly: argument
// order, width, and pointer-vs-value semantics. A wrong entry is
// undefined behavior at the call site, not a catchable error, which is
// why the table is static data reviewed against the headers rather
// than something assembled at runtime.
package native

import "fmt"

// ArgKind classifies one native parameter for a table entry.
type ArgKind uint8

// Parameter kinds.
const (
	ArgPtr      ArgKind = iota // opaque pointer, C string, or out-param address
	ArgInt32                   // signed 32-bit
	ArgUint32                  // unsigned 32-bit
	ArgInt64                   // signed 64-bit
	ArgUint64                  // unsigned 64-bit
	ArgSize                    // size_t
	ArgCallback                // callback function pointer
)

// RetKind classifies a native return value.
type RetKind uint8

// Return kinds. Int32 is the engine's standard result-code return.
const (
	RetInt32 RetKind = iota
	RetUint32
	RetInt64
	RetSize
	RetPtr
	RetVoid
)

// FuncSpec is one static function-table entry.
type FuncSpec struct {
	Name string
	Args []ArgKind
	Ret  RetKind
}

// String renders the entry for diagnostics.
func (s FuncSpec) String() string {
	return fmt.Sprintf("%s/%d", s.Name, len(s.Args))
}

// Table lists every bound engine symbol. Grouped the way the engine's
// headers group them; keep the groups sorted by symbol within.
var Table = []FuncSpec{
	// Library lifecycle and metadata.
	{Name: "git_libgit2_features", Args: nil, Ret: RetInt32},
	{Name: "git_libgit2_init", Args: nil, Ret: RetInt32},
	{Name: "git_libgit2_shutdown", Args: nil, Ret: RetInt32},
	{Name: "git_libgit2_version", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},

	// Error state.
	{Name: "git_error_last", Args: nil, Ret: RetPtr},

	// Growable buffer results.
	{Name: "git_buf_dispose", Args: []ArgKind{ArgPtr}, Ret: RetVoid},

	// Repository.
	{Name: "git_repository_discover", Args: []ArgKind{ArgPtr, ArgPtr, ArgInt32, ArgPtr}, Ret: RetInt32},
	{Name: "git_repository_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_repository_head", Args: []ArgKind{ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_repository_index", Args: []ArgKind{ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_repository_is_bare", Args: []ArgKind{ArgPtr}, Ret: RetInt32},
	{Name: "git_repository_open", Args: []ArgKind{ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_repository_path", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_repository_workdir", Args: []ArgKind{ArgPtr}, Ret: RetPtr},

	// References.
	{Name: "git_reference_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_reference_lookup", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_reference_name", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_reference_resolve", Args: []ArgKind{ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_reference_shorthand", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_reference_target", Args: []ArgKind{ArgPtr}, Ret: RetPtr},

	// Commits.
	{Name: "git_commit_author", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_commit_committer", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_commit_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_commit_lookup", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_commit_message", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_commit_parent_id", Args: []ArgKind{ArgPtr, ArgUint32}, Ret: RetPtr},
	{Name: "git_commit_parentcount", Args: []ArgKind{ArgPtr}, Ret: RetUint32},
	{Name: "git_commit_summary", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_commit_time", Args: []ArgKind{ArgPtr}, Ret: RetInt64},
	{Name: "git_commit_tree_id", Args: []ArgKind{ArgPtr}, Ret: RetPtr},

	// Trees.
	{Name: "git_tree_entry_byindex", Args: []ArgKind{ArgPtr, ArgSize}, Ret: RetPtr},
	{Name: "git_tree_entry_filemode", Args: []ArgKind{ArgPtr}, Ret: RetInt32},
	{Name: "git_tree_entry_id", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_tree_entry_name", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_tree_entry_type", Args: []ArgKind{ArgPtr}, Ret: RetInt32},
	{Name: "git_tree_entrycount", Args: []ArgKind{ArgPtr}, Ret: RetSize},
	{Name: "git_tree_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_tree_lookup", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},

	// Index.
	{Name: "git_index_entrycount", Args: []ArgKind{ArgPtr}, Ret: RetSize},
	{Name: "git_index_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_index_get_byindex", Args: []ArgKind{ArgPtr, ArgSize}, Ret: RetPtr},
	{Name: "git_index_get_bypath", Args: []ArgKind{ArgPtr, ArgPtr, ArgInt32}, Ret: RetPtr},
	{Name: "git_index_has_conflicts", Args: []ArgKind{ArgPtr}, Ret: RetInt32},

	// Blame.
	{Name: "git_blame_file", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_blame_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_blame_get_hunk_byindex", Args: []ArgKind{ArgPtr, ArgUint32}, Ret: RetPtr},
	{Name: "git_blame_get_hunk_count", Args: []ArgKind{ArgPtr}, Ret: RetUint32},

	// Rebase.
	{Name: "git_rebase_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_rebase_open", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_rebase_operation_byindex", Args: []ArgKind{ArgPtr, ArgSize}, Ret: RetPtr},
	{Name: "git_rebase_operation_current", Args: []ArgKind{ArgPtr}, Ret: RetSize},
	{Name: "git_rebase_operation_entrycount", Args: []ArgKind{ArgPtr}, Ret: RetSize},

	// Reflog.
	{Name: "git_reflog_entry_byindex", Args: []ArgKind{ArgPtr, ArgSize}, Ret: RetPtr},
	{Name: "git_reflog_entry_committer", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_reflog_entry_id_new", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_reflog_entry_id_old", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_reflog_entry_message", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_reflog_entrycount", Args: []ArgKind{ArgPtr}, Ret: RetSize},
	{Name: "git_reflog_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_reflog_read", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},

	// Notes.
	{Name: "git_note_author", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_note_committer", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_note_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_note_id", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_note_message", Args: []ArgKind{ArgPtr}, Ret: RetPtr},
	{Name: "git_note_read", Args: []ArgKind{ArgPtr, ArgPtr, ArgPtr, ArgPtr}, Ret: RetInt32},

	// Revision walking.
	{Name: "git_revwalk_free", Args: []ArgKind{ArgPtr}, Ret: RetVoid},
	{Name: "git_revwalk_new", Args: []ArgKind{ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_revwalk_next", Args: []ArgKind{ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_revwalk_push", Args: []ArgKind{ArgPtr, ArgPtr}, Ret: RetInt32},
	{Name: "git_revwalk_push_head", Args: []ArgKind{ArgPtr}, Ret: RetInt32},
	{Name: "git_revwalk_sorting", Args: []ArgKind{ArgPtr, ArgUint32}, Ret: RetInt32},
}
