package system

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

type fixture struct {
	world  *ecs.World
	deps   Deps
	target *arena.FixedTarget
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	target := arena.NewFixedTarget(cp.Vector{})
	return &fixture{
		world:  ecs.NewWorld(),
		target: target,
		deps: Deps{
			Rand:     rand.New(rand.NewSource(1)),
			Space:    arena.NewSpace(0, 0),
			Registry: arena.NewRegistry(),
			Clusters: arena.NewClusters(),
			Target:   target,
		},
	}
}

// addBody creates a bare agent entity with a body and mover, registered
// under the given archetype.
func (f *fixture) addBody(t *testing.T, archetype string, at cp.Vector) (ecs.Entity, *component.Mover) {
	t.Helper()
	e := ecs.CreateEntity(f.world)
	body := f.deps.Space.AddAgentBody(e, at, 0.5, f.deps.Space.NextGroup())
	mover := &component.Mover{Body: body, Speed: 5, ArriveRadius: 0.5, Home: at}
	if err := ecs.Add(f.world, e, component.Movers, mover); err != nil {
		t.Fatalf("add mover: %v", err)
	}
	f.deps.Registry.Add(archetype, e)
	return e, mover
}
