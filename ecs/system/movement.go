package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// Movement converts destinations and separation nudges into body velocities,
// then steps the physics space once.
type Movement struct {
	deps Deps
}

func NewMovement(deps Deps) *Movement {
	return &Movement{deps: deps}
}

func (s *Movement) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.Movers, func(e ecs.Entity, m *component.Mover) {
		if m.Body == nil {
			return
		}
		var v cp.Vector
		if m.HasDest {
			d := m.Destination.Sub(m.Position())
			dist := d.Length()
			if dist <= m.ArriveRadius {
				m.HasDest = false
			} else {
				v = d.Mult(m.Speed / dist)
			}
		}
		// the nudge composes with steering instead of replacing it
		v = v.Add(m.Nudge)
		m.Nudge = cp.Vector{}
		m.Body.SetVelocity(v.X, v.Y)
		if v.LengthSq() > 0 {
			m.Heading = v.ToAngle()
		}
	})

	s.deps.Space.Step(dt)
}
