package projectile

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/ecs"
)

func newTestPool() (*arena.Space, *Pool) {
	space := arena.NewSpace(0, 0)
	return space, NewPool(space, space.NextGroup(), 0.2, 1.5)
}

func TestPoolRoundTripNeverGrowsBeyondPeak(t *testing.T) {
	cases := []struct {
		name     string
		peak     int
		cycles   int
		wantSize int
	}{
		{"serial_reuse", 1, 50, 1},
		{"burst_of_three", 3, 20, 3},
		{"burst_of_eight", 8, 5, 8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, pool := newTestPool()
			owner := ecs.Entity(1)
			for cycle := 0; cycle < c.cycles; cycle++ {
				shots := make([]*Shot, 0, c.peak)
				for i := 0; i < c.peak; i++ {
					shots = append(shots, pool.Acquire(owner, cp.Vector{}, cp.Vector{X: 10}, 0))
				}
				if pool.InUse() != c.peak {
					t.Fatalf("in use = %d, want %d", pool.InUse(), c.peak)
				}
				for _, shot := range shots {
					pool.Release(shot)
				}
			}
			if pool.Size() != c.wantSize {
				t.Fatalf("pool grew to %d, want %d", pool.Size(), c.wantSize)
			}
			if pool.InUse() != 0 {
				t.Fatalf("in use = %d after full release", pool.InUse())
			}
		})
	}
}

func TestReleaseResetsPhysicalState(t *testing.T) {
	_, pool := newTestPool()
	shot := pool.Acquire(ecs.Entity(7), cp.Vector{X: 1, Y: 2}, cp.Vector{X: 30, Y: -4}, 0)
	pool.Release(shot)

	if shot.Active {
		t.Fatalf("released shot still active")
	}
	if v := shot.Body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("released shot keeps velocity %v", v)
	}
	if w := shot.Body.AngularVelocity(); w != 0 {
		t.Fatalf("released shot keeps angular velocity %v", w)
	}
	if shot.Owner.Valid() {
		t.Fatalf("released shot keeps owner %v", shot.Owner)
	}

	// releasing twice is a no-op
	pool.Release(shot)
	if pool.InUse() != 0 {
		t.Fatalf("double release corrupted in-use count: %d", pool.InUse())
	}
}

func TestAcquireSharesOwnerFilterGroup(t *testing.T) {
	space := arena.NewSpace(0, 0)
	group := space.NextGroup()
	pool := NewPool(space, group, 0.2, 1)

	shot := pool.Acquire(ecs.Entity(3), cp.Vector{}, cp.Vector{X: 5}, 0)
	if shot.Shape.Filter.Group != group {
		t.Fatalf("shot filter group %d, want owner group %d", shot.Shape.Filter.Group, group)
	}
}

func TestReleaseExpired(t *testing.T) {
	_, pool := newTestPool()
	pool.Acquire(ecs.Entity(1), cp.Vector{}, cp.Vector{X: 5}, 0) // deadline 1.5
	late := pool.Acquire(ecs.Entity(1), cp.Vector{}, cp.Vector{X: 5}, 1)

	if n := pool.ReleaseExpired(1.6); n != 1 {
		t.Fatalf("expired %d shots, want 1", n)
	}
	if !late.Active {
		t.Fatalf("unexpired shot was released")
	}
	if n := pool.ReleaseExpired(2.5); n != 1 {
		t.Fatalf("expired %d shots, want 1", n)
	}
}
