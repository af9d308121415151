package subscribable

// Scheduler is a deferred-task queue standing in for an event loop's
// "next tick". Sources queue work on it instead of running callbacks
// synchronously inside Subscribe, and the owner of the loop (app, test,
// benchmark) flushes it once per logical turn.
type Scheduler struct {
	tasks []func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Defer queues fn to run on the next Flush.
func (s *Scheduler) Defer(fn func()) {
	s.tasks = append(s.tasks, fn)
}

// Flush runs every queued task, including tasks queued while flushing.
func (s *Scheduler) Flush() {
	for len(s.tasks) > 0 {
		tasks := s.tasks
		s.tasks = nil
		for _, fn := range tasks {
			fn()
		}
	}
}

func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
