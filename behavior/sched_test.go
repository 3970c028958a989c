package behavior

import "testing"

func TestSchedulerAfterFiresOnceAtDeadline(t *testing.T) {
	s := &Scheduler{}
	ran := 0
	s.After(0.5, func() { ran++ })

	s.Advance(0.4)
	if ran != 0 {
		t.Fatalf("ran before deadline")
	}
	s.Advance(0.1)
	if ran != 1 {
		t.Fatalf("expected one run at deadline, got %d", ran)
	}
	s.Advance(1)
	if ran != 1 {
		t.Fatalf("one-shot ran again, got %d", ran)
	}
}

func TestSchedulerEveryRepeats(t *testing.T) {
	s := &Scheduler{}
	ran := 0
	s.Every(0.25, func() { ran++ })

	for i := 0; i < 4; i++ {
		s.Advance(0.25)
	}
	if ran != 4 {
		t.Fatalf("expected 4 runs, got %d", ran)
	}
}

func TestSchedulerCancelIsIdempotent(t *testing.T) {
	s := &Scheduler{}
	ran := 0
	h := s.Every(0.1, func() { ran++ })

	s.Advance(0.1)
	h.Cancel()
	h.Cancel()
	var nilHandle *Handle
	nilHandle.Cancel()

	s.Advance(1)
	if ran != 1 {
		t.Fatalf("cancelled task kept running, got %d", ran)
	}
	if h.Active() {
		t.Fatalf("cancelled handle reports active")
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s := &Scheduler{}
	ran := 0
	s.Every(0.1, func() { ran++ })
	s.After(0.1, func() { ran++ })
	s.CancelAll()
	s.Advance(1)
	if ran != 0 {
		t.Fatalf("tasks ran after CancelAll, got %d", ran)
	}
}

// Exit must kill every routine Enter started; an orphaned periodic task
// continuing after a state change is the classic latent bug here.
func TestStrategyExitCancelsPeriodicWork(t *testing.T) {
	cases := []struct {
		name     string
		strategy Strategy
	}{
		{"idle", NewIdle()},
		{"attack", NewAttack()},
		{"flee", NewFlee()},
		{"ambush", NewAmbush()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sched := &Scheduler{}
			ctx := &Context{
				Tasks: sched,
				Tun: Tunables{
					IdlePause:    0.1,
					WanderRadius: 1,
					FireInterval: 0.1,
					FleeDistance: 1,
					FleeDuration: 0.5,
					PopupDelay:   0.1,
					PeekInterval: 0.1,
				},
			}
			c.strategy.Enter(ctx)
			c.strategy.Exit(ctx)

			for _, task := range sched.tasks {
				if !task.cancelled {
					t.Fatalf("%s left a live task after Exit", c.name)
				}
			}
		})
	}
}
