package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// Separation pushes same-archetype agents apart. Each overlapping neighbor
// contributes a normalized repulsion weighted by penetration depth; the
// average is magnitude-clamped and applied as a velocity nudge so it
// composes with path following instead of replacing it.
type Separation struct {
	deps Deps
}

func NewSeparation(deps Deps) *Separation {
	return &Separation{deps: deps}
}

func (s *Separation) Update(w *ecs.World, dt float64) {
	tick := w.Tick()

	ecs.ForEach2(w, component.Separations, component.Movers, func(e ecs.Entity, sep *component.Separation, mov *component.Mover) {
		// hazard avoidance claimed this agent this frame
		if sep.SuppressedTick == tick {
			return
		}
		archetype, ok := s.deps.Registry.ArchetypeOf(e)
		if !ok {
			return
		}

		pos := mov.Position()
		var sum cp.Vector
		n := 0
		for _, peer := range s.deps.Registry.OfType(archetype) {
			if peer == e {
				continue
			}
			pm, ok := ecs.Get(w, peer, component.Movers)
			if !ok {
				continue
			}
			away := pos.Sub(pm.Position())
			dist := away.Length()
			if dist >= sep.MinDistance {
				continue
			}
			if dist == 0 {
				// coincident bodies: pick an arbitrary push direction
				away = common.Polar(s.deps.randFloat() * 2 * math.Pi)
				dist = 0
			} else {
				away = away.Mult(1 / dist)
			}
			weight := 1 - dist/sep.MinDistance
			sum = sum.Add(away.Mult(weight))
			n++
		}
		if n == 0 {
			return
		}
		push := common.ClampLength(sum.Mult(sep.MaxPush/float64(n)), sep.MaxPush)
		mov.Nudge = mov.Nudge.Add(push)
	})
}
