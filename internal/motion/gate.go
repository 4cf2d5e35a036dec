package motion

// Gate is a one-shot visibility latch. It opens the first time Observe sees
// a visible region and never closes again.
type Gate struct {
	open  bool
	hooks []func()
}

// Observe records whether the tracked region is visible. It reports true only
// on the call that opens the gate.
func (g *Gate) Observe(visible bool) bool {
	if g.open || !visible {
		return false
	}
	g.open = true

	hooks := g.hooks
	g.hooks = nil
	for _, fn := range hooks {
		fn()
	}
	return true
}

// Open reports whether the gate has fired.
func (g *Gate) Open() bool {
	return g.open
}

// OnOpen registers fn to run when the gate opens. If the gate is already
// open, fn runs immediately.
func (g *Gate) OnOpen(fn func()) {
	if fn == nil {
		return
	}
	if g.open {
		fn()
		return
	}
	g.hooks = append(g.hooks, fn)
}
