// Package git2 drives a dynamically loaded libgit2 engine without cgo.
// The shared library is located and opened at runtime, its symbols are
// resolved eagerly against a static function table, and every native
// struct is read and written through declarative layouts computed for
// the process pointer width.
//
// Features:
//   - Pure-Go dynamic loading; no cgo, no build-time linkage
//   - Declarative struct layouts resolved for 32- and 64-bit targets,
//     overridable per engine version with a JSON profile
//   - Lifecycle-tracked handles with idempotent close and
//     use-after-free detection
//   - Native result codes translated to typed errors with the engine's
//     message and subsystem copied out of its transient error state
//   - Explicit engine injection; no package-level state
//
// Construct an Engine with Open, pass it to whatever needs it, and
// Close it when done:
//
//	eng, err := git2.Open(nil)
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//
//	repo, err := eng.OpenRepository("/path/to/repo")
//	if err != nil {
//		return err
//	}
//	defer repo.Free()
package git2
