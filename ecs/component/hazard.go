package component

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/ecs"
)

var Hazards = ecs.NewComponent[Hazard]()

// Hazard marks an agent as dangerous to its own side while armed, e.g. a
// bomber closing on its detonation point.
type Hazard struct {
	Armed bool

	// EffectiveRadius is the blast radius; peers keep strictly farther
	// than this while avoiding.
	EffectiveRadius float64

	// PanicRadius is how close to the shared target the hazard must be
	// before peers start avoiding it.
	PanicRadius float64

	Damage float64
}

var Avoiders = ecs.NewComponent[Avoidance]()

// AvoidPolicy selects how an agent flees an armed hazard.
type AvoidPolicy uint8

const (
	// AvoidFlee computes an instantaneous safe point and goes straight at it.
	AvoidFlee AvoidPolicy = iota
	// AvoidLerp chases a time-smoothed avoidance point instead of snapping.
	AvoidLerp
	// AvoidRandom flips between the two policies per tick.
	AvoidRandom
)

func (p AvoidPolicy) String() string {
	switch p {
	case AvoidFlee:
		return "flee"
	case AvoidLerp:
		return "lerp"
	case AvoidRandom:
		return "random"
	}
	return "unknown"
}

// ParseAvoidPolicy maps a config string to a policy. Unknown strings fall
// back to random, matching the loader's clamp-and-continue posture.
func ParseAvoidPolicy(s string) AvoidPolicy {
	switch s {
	case "flee":
		return AvoidFlee
	case "lerp":
		return AvoidLerp
	default:
		return AvoidRandom
	}
}

// Avoidance is the hazard avoidance state for one agent. While Avoiding is
// set, the avoidance system owns the agent's destination and separation is
// suppressed for the tick.
type Avoidance struct {
	Policy       AvoidPolicy
	SafeDistance float64
	LerpRate     float64
	ArcDuration  float64

	Avoiding   bool
	AvoidPoint cp.Vector
	HavePoint  bool

	// Post-avoidance arc maneuver. The arc ends at ArcUntil no matter what
	// the hazard does in the meantime.
	Arcing   bool
	ArcUntil float64
	ArcSide  float64
}
