package component

import (
	"math"

	"github.com/milk9111/skirmish/ecs"
)

var Detections = ecs.NewComponent[Detection]()

// minThresholdGap keeps exit strictly above enter even with hostile buffer
// configuration.
const minThresholdGap = 0.5

// Detection drives the periodic spot/engage evaluator. Thresholds are
// asymmetric on purpose: the exit distance always sits strictly above the
// enter distance so agents do not flap at a range boundary.
type Detection struct {
	BaseRange   float64
	EnterBuffer float64
	ExitBuffer  float64
	MinGap      float64

	// AttackRange gates the in-range/out-of-range pair the same way
	// BaseRange gates spotting.
	AttackRange float64

	// MaxAngle limits spotting to a forward cone, in radians. Zero means
	// no angular limit.
	MaxAngle float64

	Interval float64
	Sustain  float64

	NextEvalAt float64

	Spot   Gate
	Engage Gate
}

// Thresholds returns the derived (enter, exit) distances. Exit is forced to
// exceed enter by at least the configured gap.
func (d *Detection) Thresholds() (enter, exit float64) {
	return d.thresholds(d.BaseRange)
}

// AttackThresholds returns the derived attack (enter, exit) distances.
func (d *Detection) AttackThresholds() (enter, exit float64) {
	return d.thresholds(d.AttackRange)
}

func (d *Detection) thresholds(base float64) (enter, exit float64) {
	gap := d.MinGap
	if gap <= 0 {
		gap = minThresholdGap
	}
	enter = base + d.EnterBuffer
	exit = math.Max(base+d.ExitBuffer, enter+gap)
	return enter, exit
}

// Gate is one hysteresis latch with a sustain filter. A candidate flip must
// hold across evaluation ticks for the sustain duration before it commits;
// a single tick outside the candidate condition resets the timer.
type Gate struct {
	Engaged bool

	holding bool
	since   float64
}

// Eval runs one evaluation tick. candidate is the flip condition for the
// current side of the latch (inside enter when disengaged, outside exit when
// engaged). It returns true when the latch flips.
func (g *Gate) Eval(now float64, candidate bool, sustain float64) bool {
	if !candidate {
		g.holding = false
		return false
	}
	if !g.holding {
		g.holding = true
		g.since = now
		if sustain <= 0 {
			g.holding = false
			g.Engaged = !g.Engaged
			return true
		}
		return false
	}
	if now-g.since >= sustain {
		g.holding = false
		g.Engaged = !g.Engaged
		return true
	}
	return false
}

// Reset drops the latch back to disengaged with no pending sustain.
func (g *Gate) Reset() {
	g.Engaged = false
	g.holding = false
}
