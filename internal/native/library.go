package native

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/nullstyle/git2/internal/ffi"
	"github.com/nullstyle/git2/internal/layouts"
)

// Errors reported by the library lifecycle.
var (
	ErrNotLoaded      = errors.New("native: library not loaded")
	ErrNotInitialized = errors.New("native: engine not initialized")
)

// Options configures library loading.
type Options struct {
	// Path is an explicit library path. When set, discovery is skipped.
	Path string

	// SearchPaths are directories probed for a known soname when Path
	// is empty. Platform default locations are appended.
	SearchPaths []string

	// Logger receives load and call diagnostics. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// Func is one resolved table entry: the symbol address plus its spec.
type Func struct {
	spec FuncSpec
	addr uintptr
}

// Library is the process-scoped service object owning the loaded
// engine. It is constructed once by the bootstrap path and passed
// explicitly to everything that needs native calls; there is no hidden
// package-level instance.
//
// Init and Shutdown are reference counted: the first Init initializes
// the engine, the last Shutdown tears it down. Close unloads the
// shared object. The mutex only guards this load/init bookkeeping;
// call dispatch itself takes no locks, matching the engine's
// single-owner-per-resource threading contract.
type Library struct {
	mu     sync.Mutex
	path   string
	handle uintptr
	funcs  map[string]Func
	inits  int
	closed bool
	log    *slog.Logger
}

// Load discovers, opens, and resolves the engine library. Every table
// symbol is resolved eagerly so a version mismatch surfaces here as a
// named error instead of a crash mid-call.
func Load(opts Options) (*Library, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	path, err := discover(opts.Path, opts.SearchPaths)
	if err != nil {
		return nil, err
	}

	handle, err := dlOpen(path)
	if err != nil {
		return nil, fmt.Errorf("native: load %s: %w", path, err)
	}

	l := &Library{
		path:   path,
		handle: handle,
		funcs:  make(map[string]Func, len(Table)),
		log:    log,
	}
	for _, spec := range Table {
		addr, err := dlSym(handle, spec.Name)
		if err != nil || addr == 0 {
			_ = dlClose(handle)
			return nil, fmt.Errorf("native: %s: missing symbol %s", path, spec.Name)
		}
		l.funcs[spec.Name] = Func{spec: spec, addr: addr}
	}

	log.Debug("native library loaded", "path", path, "symbols", len(l.funcs))
	return l, nil
}

// Path returns the loaded library path.
func (l *Library) Path() string { return l.path }

// Init initializes the engine, reference counted. Every successful
// Init must be paired with a Shutdown.
func (l *Library) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrNotLoaded
	}
	if rc := int32(l.invoke("git_libgit2_init")); rc < 0 {
		return fmt.Errorf("native: git_libgit2_init failed with %d", rc)
	}
	l.inits++
	return nil
}

// Shutdown releases one Init reference. The engine itself tears down
// internal state when its own count reaches zero.
func (l *Library) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrNotLoaded
	}
	if l.inits == 0 {
		return ErrNotInitialized
	}
	l.inits--
	if rc := int32(l.invoke("git_libgit2_shutdown")); rc < 0 {
		return fmt.Errorf("native: git_libgit2_shutdown failed with %d", rc)
	}
	return nil
}

// Close drains any outstanding Init references and unloads the shared
// object. Calling Close more than once is a no-op.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	for l.inits > 0 {
		l.inits--
		l.invoke("git_libgit2_shutdown")
	}
	l.closed = true
	err := dlClose(l.handle)
	l.handle = 0
	if err != nil {
		return fmt.Errorf("native: unload %s: %w", l.path, err)
	}
	l.log.Debug("native library unloaded", "path", l.path)
	return nil
}

// Invoke calls a bound symbol with raw uintptr arguments and returns
// the raw machine-word result. The caller interprets the result per
// the table's RetKind. Unknown symbols and arity mismatches are
// programming errors against the static table and panic; they can
// never be produced by engine state.
func (l *Library) Invoke(name string, args ...uintptr) uintptr {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		panic("native: invoke " + name + " on closed library")
	}
	return l.invoke(name, args...)
}

func (l *Library) invoke(name string, args ...uintptr) uintptr {
	f, ok := l.funcs[name]
	if !ok {
		panic("native: symbol " + name + " not in function table")
	}
	if len(args) != len(f.spec.Args) {
		panic(fmt.Sprintf("native: %s takes %d args, got %d",
			name, len(f.spec.Args), len(args)))
	}
	r1, _, _ := purego.SyscallN(f.addr, args...)
	return r1
}

// LastError copies the engine's transient "last error" state. It must
// be called immediately after a failing call, before any other native
// call can overwrite the engine-owned buffer. The message is copied
// into managed memory before returning.
func (l *Library) LastError() (msg string, klass int32) {
	p := l.Invoke("git_error_last")
	if p == 0 {
		return "", 0
	}
	rd := ffi.NewReader(p, layouts.Error.Resolve(ffi.NativeWidth))
	return ffi.GoString(rd.Pointer("message")), rd.Int32("klass")
}

// Bound reports whether the table binds the named symbol. Used by
// diagnostics, never by call paths.
func (l *Library) Bound(name string) bool {
	_, ok := l.funcs[name]
	return ok
}
