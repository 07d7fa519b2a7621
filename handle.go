package git2

// Handle wraps an opaque native pointer together with the release
// function for its resource kind. It exists so calling code never
// touches raw memory: while Open the pointer is guaranteed non-null,
// and once Closed the pointer is discarded and every further access is
// reported as a use-after-free instead of corrupting memory.
//
// A handle is not safe for concurrent use, matching the engine's
// single-owner-at-a-time contract for the underlying resource.
type Handle struct {
	ptr     uintptr
	kind    string
	release func(uintptr)
	closed  bool
}

// newHandle wraps a non-null native pointer. Wrapping null is a
// programming error: callers must check the out-parameter first.
func newHandle(ptr uintptr, kind string, release func(uintptr)) *Handle {
	if ptr == 0 {
		panic("git2: wrapping null " + kind + " pointer")
	}
	if release == nil {
		panic("git2: " + kind + " handle needs a release function")
	}
	return &Handle{ptr: ptr, kind: kind, release: release}
}

// Ptr returns the native pointer, or a UseAfterFreeError once the
// handle is closed.
func (h *Handle) Ptr() (uintptr, error) {
	if h.closed {
		return 0, &UseAfterFreeError{Resource: h.kind}
	}
	return h.ptr, nil
}

// Close releases the native resource. The first call invokes the
// release function exactly once; every later call is a documented
// no-op, so Close composes safely with deferred cleanup.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	ptr := h.ptr
	h.ptr = 0
	h.release(ptr)
	return nil
}

// Closed reports whether the handle has been released.
func (h *Handle) Closed() bool { return h.closed }

// Kind returns the resource kind, for diagnostics.
func (h *Handle) Kind() string { return h.kind }
