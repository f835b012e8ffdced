package deps

// Effect runs a function as the current target and runs it again whenever one
// of the Deps it read notifies.
type Effect struct {
	fn      func()
	deps    []*Dep
	running bool
	stopped bool
	Runs    int
}

var _ Target = new(Effect)

// NewEffect creates an effect and runs it once.
func NewEffect(fn func()) *Effect {
	e := &Effect{
		fn: fn,
	}
	e.run()
	return e
}

func (e *Effect) run() {
	if e.stopped || e.running {
		return
	}
	e.running = true
	defer func() {
		e.running = false
	}()
	// dependencies are collected again on every run
	for _, dep := range e.deps {
		dep.RemoveSub(e)
	}
	e.deps = e.deps[:0]
	PushTarget(e)
	defer PopTarget()
	e.Runs++
	e.fn()
}

func (e *Effect) AddDep(dep *Dep) {
	for _, d := range e.deps {
		if d == dep {
			return
		}
	}
	e.deps = append(e.deps, dep)
	dep.AddSub(e)
}

func (e *Effect) Update() {
	e.run()
}

func (e *Effect) Deps() []*Dep {
	return e.deps
}

// Stop detaches the effect from all its deps.
func (e *Effect) Stop() {
	e.stopped = true
	for _, dep := range e.deps {
		dep.RemoveSub(e)
	}
	e.deps = nil
}
