package git2

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/nullstyle/git2/internal/config"
	"github.com/nullstyle/git2/internal/ffi"
	"github.com/nullstyle/git2/internal/layouts"
	"github.com/nullstyle/git2/internal/logging"
	"github.com/nullstyle/git2/internal/metrics"
	"github.com/nullstyle/git2/internal/native"
)

// dispatcher is the slice of the native library the call paths use.
// It is an interface so decode logic can be exercised against a stub
// engine in tests; the only production implementation is
// *native.Library.
type dispatcher interface {
	Invoke(name string, args ...uintptr) uintptr
	LastError() (msg string, klass int32)
}

// Engine is the process-scoped service object owning the loaded native
// library, the resolved struct layouts, and the call/translate
// machinery. Construct one with Open, pass it explicitly to whatever
// needs it, and Close it when done; there is no package-level engine.
//
// Engine methods do not lock around native resources: a given handle
// has a single owner at a time, per the engine's own threading
// contract.
type Engine struct {
	lib       dispatcher
	nlib      *native.Library
	layouts   *layouts.Set
	log       *slog.Logger
	metrics   *metrics.Registry
	logCloser func() error
	closed    bool
}

// Open loads the native engine per the configuration, initializes it,
// and resolves struct layouts for the process pointer width (applying
// the configured layout profile, if any).
func Open(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	log, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("git2: %w", err)
	}

	var cu Cleanup
	defer cu.Clean()
	cu.Add(func() { _ = logCloser() })

	lib, err := native.Load(native.Options{
		Path:        cfg.Library.Path,
		SearchPaths: cfg.Library.SearchPaths,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}
	cu.Add(func() { _ = lib.Close() })

	if err := lib.Init(); err != nil {
		return nil, err
	}
	cu.Add(func() { _ = lib.Shutdown() })

	set := layouts.Default(ffi.NativeWidth)
	if path := cfg.Library.LayoutProfile; path != "" {
		profile, err := layouts.LoadProfile(path)
		if err != nil {
			return nil, err
		}
		if set, err = set.Apply(profile); err != nil {
			return nil, err
		}
		log.Info("layout profile applied", "path", path, "engine", profile.Engine)
	}

	cu.Release()
	return &Engine{
		lib:       lib,
		nlib:      lib,
		layouts:   set,
		log:       log,
		metrics:   metrics.NewRegistry(),
		logCloser: logCloser,
	}, nil
}

// Close shuts the engine down and unloads the native library. Closing
// twice is a no-op. Handles created from this engine must be closed
// first; releasing one afterwards has nothing left to call into.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.nlib == nil {
		return nil
	}
	if err := e.nlib.Shutdown(); err != nil {
		_ = e.nlib.Close()
		return err
	}
	err := e.nlib.Close()
	if e.logCloser != nil {
		_ = e.logCloser()
	}
	return err
}

// Metrics returns the engine's call and handle counters.
func (e *Engine) Metrics() *metrics.Registry { return e.metrics }

// LibraryPath returns the path of the loaded native library.
func (e *Engine) LibraryPath() string {
	if e.nlib == nil {
		return ""
	}
	return e.nlib.Path()
}

// call dispatches a result-code native call and translates failures.
// Negative results become a *GitError carrying the exact native code,
// except the iteration sentinel which surfaces as ErrIterOver.
func (e *Engine) call(name string, args ...uintptr) (int32, error) {
	if e.closed {
		return 0, &UseAfterFreeError{Resource: "engine"}
	}
	e.metrics.NativeCalls.Inc()
	rc := int32(e.lib.Invoke(name, args...))
	if rc >= 0 {
		return rc, nil
	}
	if rc == codeIterOver {
		return rc, ErrIterOver
	}
	e.metrics.NativeErrors.Inc()
	// Copy the transient last-error state out before any further
	// native call can overwrite it.
	msg, klass := e.lib.LastError()
	err := newGitError(rc, msg, klass)
	e.log.Debug("native call failed", "symbol", name, "code", rc, "class", err.Class.String())
	return rc, err
}

// callPtr dispatches a pointer-returning accessor. Zero means null.
func (e *Engine) callPtr(name string, args ...uintptr) (uintptr, error) {
	if e.closed {
		return 0, &UseAfterFreeError{Resource: "engine"}
	}
	e.metrics.NativeCalls.Inc()
	return e.lib.Invoke(name, args...), nil
}

// callSize dispatches a size_t-returning accessor.
func (e *Engine) callSize(name string, args ...uintptr) (uint64, error) {
	p, err := e.callPtr(name, args...)
	return uint64(p), err
}

// callUint32 dispatches a uint32-returning accessor.
func (e *Engine) callUint32(name string, args ...uintptr) (uint32, error) {
	p, err := e.callPtr(name, args...)
	return uint32(p), err
}

// callVoid dispatches a void call, typically a release function.
func (e *Engine) callVoid(name string, args ...uintptr) {
	if e.closed {
		return
	}
	e.metrics.NativeCalls.Inc()
	e.lib.Invoke(name, args...)
}

// newHandle wraps a native pointer in a lifecycle-tracked handle whose
// release invokes the named engine free function.
func (e *Engine) newHandle(ptr uintptr, kind, freeSymbol string) *Handle {
	e.metrics.HandlesOpened.Inc()
	e.metrics.OpenHandles.Inc()
	return newHandle(ptr, kind, func(p uintptr) {
		e.callVoid(freeSymbol, p)
		e.metrics.HandlesClosed.Inc()
		e.metrics.OpenHandles.Dec()
	})
}

// keepAlive pins scratch buffers across a native call.
func keepAlive(buf []byte) {
	runtime.KeepAlive(buf)
}

// withBuf runs fn with the address of a zeroed git_buf, decodes the
// length-bounded result into a managed string, and disposes the native
// allocation on every path.
func (e *Engine) withBuf(fn func(addr uintptr) error) (string, error) {
	r := e.layouts.Get("git_buf")
	out := ffi.NewOutStruct(r.Size())
	if err := fn(out.Addr()); err != nil {
		return "", err
	}
	rd := ffi.ReaderOf(out.Bytes(), r)
	ptr := rd.Pointer("ptr")
	size := rd.Usize("size")
	s := ffi.GoStringN(ptr, int(size))
	if ptr != 0 {
		e.callVoid("git_buf_dispose", out.Addr())
	}
	return s, nil
}
