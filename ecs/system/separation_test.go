package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

func TestSeparationMagnitudeNeverExceedsMaxPush(t *testing.T) {
	cases := []struct {
		name      string
		neighbors int
	}{
		{"one_neighbor", 1},
		{"five_overlapping", 5},
		{"twenty_overlapping", 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			const maxPush = 3.0

			center, mover := f.addBody(t, "drone", cp.Vector{X: 10, Y: 10})
			if err := ecs.Add(f.world, center, component.Separations, &component.Separation{
				MinDistance: 4,
				MaxPush:     maxPush,
			}); err != nil {
				t.Fatalf("add separation: %v", err)
			}
			for i := 0; i < c.neighbors; i++ {
				// all piled essentially on top of the subject
				f.addBody(t, "drone", cp.Vector{X: 10.01 + float64(i)*0.01, Y: 10})
			}

			NewSeparation(f.deps).Update(f.world, 1.0/60.0)

			if got := mover.Nudge.Length(); got > maxPush+1e-9 {
				t.Fatalf("nudge magnitude %v exceeds max %v with %d neighbors", got, maxPush, c.neighbors)
			}
			if mover.Nudge.Length() == 0 {
				t.Fatalf("overlapping neighbors produced no push")
			}
		})
	}
}

func TestSeparationIgnoresOtherArchetypesAndFarPeers(t *testing.T) {
	f := newFixture(t)
	e, mover := f.addBody(t, "drone", cp.Vector{X: 0, Y: 0})
	if err := ecs.Add(f.world, e, component.Separations, &component.Separation{MinDistance: 2, MaxPush: 3}); err != nil {
		t.Fatalf("add separation: %v", err)
	}
	f.addBody(t, "crawler", cp.Vector{X: 0.5, Y: 0}) // different archetype
	f.addBody(t, "drone", cp.Vector{X: 10, Y: 0})    // outside min distance

	NewSeparation(f.deps).Update(f.world, 1.0/60.0)

	if mover.Nudge.Length() != 0 {
		t.Fatalf("unexpected push %v", mover.Nudge)
	}
}

func TestSeparationSuppressedForFrameByAvoidance(t *testing.T) {
	f := newFixture(t)
	e, mover := f.addBody(t, "drone", cp.Vector{X: 0, Y: 0})
	sep := &component.Separation{MinDistance: 4, MaxPush: 3}
	if err := ecs.Add(f.world, e, component.Separations, sep); err != nil {
		t.Fatalf("add separation: %v", err)
	}
	f.addBody(t, "drone", cp.Vector{X: 0.5, Y: 0})

	system := NewSeparation(f.deps)
	f.world.AddSystem(system)

	sep.SuppressedTick = f.world.Tick() + 1
	f.world.Update(1.0 / 60.0)
	if mover.Nudge.Length() != 0 {
		t.Fatalf("suppressed tick still pushed: %v", mover.Nudge)
	}

	f.world.Update(1.0 / 60.0)
	if mover.Nudge.Length() == 0 {
		t.Fatalf("suppression must only last one frame")
	}
}
