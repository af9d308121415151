package latch

// DetachFunc severs an attachment before the ordinary release path runs.
// Safe to call more than once.
type DetachFunc func()

func noopDetach() {}

// Latch is a one-shot release signal: it starts waiting and flips to
// released exactly once, running every attached handler. Handlers attached
// after release run immediately.
type Latch struct {
	released bool
	fns      []func()
}

func New() *Latch {
	return &Latch{}
}

func (l *Latch) Released() bool {
	return l.released
}

// OnRelease attaches fn, running it immediately if the latch has already
// released. The returned DetachFunc removes the attachment.
func (l *Latch) OnRelease(fn func()) DetachFunc {
	if l.released {
		fn()
		return noopDetach
	}
	l.fns = append(l.fns, fn)
	i := len(l.fns) - 1
	return func() {
		if i < len(l.fns) {
			l.fns[i] = nil
		}
	}
}

// Release flips the latch and fans out to attached handlers in attachment
// order. Idempotent.
func (l *Latch) Release() {
	if l.released {
		return
	}
	l.released = true
	fns := l.fns
	l.fns = nil
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

// Resettable is a latch that can return to waiting. Handlers survive
// resets and run once per release.
type Resettable struct {
	released bool
	fns      []func()
}

func NewResettable() *Resettable {
	return &Resettable{}
}

func (l *Resettable) Released() bool {
	return l.released
}

// OnRelease attaches fn. If the latch is currently released, fn runs
// immediately AND stays attached, so it also runs on releases after a
// Reset. This differs from Latch.OnRelease, where release is final and a
// late attachment only fires once.
func (l *Resettable) OnRelease(fn func()) DetachFunc {
	if l.released {
		fn()
	}
	l.fns = append(l.fns, fn)
	i := len(l.fns) - 1
	return func() {
		if i < len(l.fns) {
			l.fns[i] = nil
		}
	}
}

func (l *Resettable) Release() {
	if l.released {
		return
	}
	l.released = true
	for _, fn := range l.fns {
		if fn != nil {
			fn()
		}
	}
}

// Reset returns the latch to waiting so it can release again.
func (l *Resettable) Reset() {
	l.released = false
}

// Master is a multicast latch over downstream latch handles. Releasing the
// master releases every attached handle; attaching to an already-released
// master releases the handle immediately.
type Master struct {
	released bool
	handles  []*Latch
}

func NewMaster() *Master {
	return &Master{}
}

func (m *Master) Released() bool {
	return m.released
}

func (m *Master) Attach(handle *Latch) DetachFunc {
	if m.released {
		handle.Release()
		return noopDetach
	}
	m.handles = append(m.handles, handle)
	i := len(m.handles) - 1
	return func() {
		if i < len(m.handles) {
			m.handles[i] = nil
		}
	}
}

func (m *Master) Release() {
	if m.released {
		return
	}
	m.released = true
	handles := m.handles
	m.handles = nil
	for _, h := range handles {
		if h != nil {
			h.Release()
		}
	}
}

// And releases handle once both left and right have released. The returned
// DetachFunc tears the join down early, typically wired to an abort
// signal.
func And(left, right *Latch, handle *Latch) DetachFunc {
	remaining := 2
	arm := func() {
		remaining--
		if remaining == 0 {
			handle.Release()
		}
	}
	d0 := left.OnRelease(arm)
	d1 := right.OnRelease(arm)
	return func() {
		d0()
		d1()
	}
}

// Future is a one-shot completed-value latch. Completion fans the value
// out to attached handlers; handlers attached after completion run
// immediately with the completed value.
type Future[T any] struct {
	done  bool
	value T
	fns   []func(T)
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{}
}

func (f *Future[T]) Completed() bool {
	return f.done
}

// Value returns the completed value. Reading before completion is a
// programming error.
func (f *Future[T]) Value() T {
	if !f.done {
		panic("future has not completed")
	}
	return f.value
}

func (f *Future[T]) OnComplete(fn func(T)) DetachFunc {
	if f.done {
		fn(f.value)
		return noopDetach
	}
	f.fns = append(f.fns, fn)
	i := len(f.fns) - 1
	return func() {
		if i < len(f.fns) {
			f.fns[i] = nil
		}
	}
}

// Complete publishes the value exactly once; later calls are no-ops.
func (f *Future[T]) Complete(value T) {
	if f.done {
		return
	}
	f.done = true
	f.value = value
	fns := f.fns
	f.fns = nil
	for _, fn := range fns {
		if fn != nil {
			fn(value)
		}
	}
}
