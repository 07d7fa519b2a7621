package git2

// Cleanup accumulates release steps during a multi-stage operation and
// runs them in LIFO order on every exit path. The usual shape:
//
//	var cu Cleanup
//	defer cu.Clean()
//	... acquire resources, cu.Add each ...
//	cu.Release() // success: keep the resources
//
// Clean after Release is a no-op, and Clean itself is idempotent, so a
// deferred Clean composes with explicit Close calls the same way
// double-closing a Handle does.
type Cleanup struct {
	fns []func()
}

// Add registers a cleanup step. Steps run in reverse registration
// order.
func (c *Cleanup) Add(fn func()) {
	c.fns = append(c.fns, fn)
}

// Clean runs the registered steps, most recent first, then forgets
// them.
func (c *Cleanup) Clean() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
	c.fns = nil
}

// Release forgets the registered steps without running them. Called
// once an operation has succeeded and ownership has moved to the
// returned values.
func (c *Cleanup) Release() {
	c.fns = nil
}
