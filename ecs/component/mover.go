package component

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/ecs"
)

var Movers = ecs.NewComponent[Mover]()

// Mover is the locomotion component. Destination steering and the separation
// nudge are composed by the movement system each frame; the nudge never
// overrides the destination.
type Mover struct {
	Body  *cp.Body
	Group uint

	Speed        float64
	ArriveRadius float64
	Home         cp.Vector

	Destination cp.Vector
	HasDest     bool
	Heading     float64

	// Nudge is this frame's separation adjustment, consumed and cleared by
	// the movement system.
	Nudge cp.Vector
}

func (m *Mover) Position() cp.Vector {
	if m.Body == nil {
		return cp.Vector{}
	}
	return m.Body.Position()
}

func (m *Mover) SetDestination(p cp.Vector) {
	m.Destination = p
	m.HasDest = true
}

// Stop clears the destination; the movement system will bleed velocity off.
func (m *Mover) Stop() {
	m.HasDest = false
}

// Arrived reports whether the mover is within its arrive radius of the
// destination. A mover with no destination has trivially arrived.
func (m *Mover) Arrived() bool {
	if !m.HasDest {
		return true
	}
	return m.Position().Distance(m.Destination) <= m.ArriveRadius
}

func (m *Mover) Face(p cp.Vector) {
	d := p.Sub(m.Position())
	if d.LengthSq() == 0 {
		return
	}
	m.Heading = d.ToAngle()
}
