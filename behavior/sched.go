package behavior

// TaskFunc is the body of a scheduled routine.
type TaskFunc func()

type task struct {
	cancelled bool
	due       float64
	interval  float64 // 0 = one-shot
	fn        TaskFunc
}

// Handle cancels a scheduled task. Cancel is idempotent and nil-safe:
// cancelling an already-stopped routine is a no-op.
type Handle struct {
	t *task
}

func (h *Handle) Cancel() {
	if h == nil || h.t == nil {
		return
	}
	h.t.cancelled = true
}

// Active reports whether the task is still pending.
func (h *Handle) Active() bool {
	return h != nil && h.t != nil && !h.t.cancelled
}

// Scheduler runs an agent's periodic routines on the shared frame clock.
// Everything is cooperative: tasks run inside Advance, never concurrently.
type Scheduler struct {
	now   float64
	tasks []*task
}

// After schedules fn once, delay seconds from now. Non-positive delays run on
// the next Advance.
func (s *Scheduler) After(delay float64, fn TaskFunc) *Handle {
	return s.add(delay, 0, fn)
}

// Every schedules fn repeatedly. The first run happens one interval from now.
// Non-positive intervals degrade to once per Advance.
func (s *Scheduler) Every(interval float64, fn TaskFunc) *Handle {
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(delay, interval float64, fn TaskFunc) *Handle {
	if fn == nil {
		return &Handle{}
	}
	if delay < 0 {
		delay = 0
	}
	t := &task{due: s.now + delay, interval: interval, fn: fn}
	s.tasks = append(s.tasks, t)
	return &Handle{t: t}
}

// Advance moves the scheduler clock and runs due tasks. A repeating task runs
// at most once per Advance; its next due time is measured from the current
// clock, so a zero interval cannot spin.
func (s *Scheduler) Advance(dt float64) {
	s.now += dt
	pending := s.tasks
	for _, t := range pending {
		if t.cancelled || t.due > s.now {
			continue
		}
		t.fn()
		if t.cancelled {
			continue
		}
		if t.interval > 0 {
			t.due = s.now + t.interval
		} else {
			t.cancelled = true
		}
	}
	s.compact()
}

func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.tasks = live
}

// CancelAll stops every pending task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = s.tasks[:0]
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Now returns the scheduler clock in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}
