// Package system holds the per-frame update passes. Order matters: the
// scheduler in cmd/sim registers detection, brains, formation, avoidance,
// separation, movement, projectiles, then reinforcement.
package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/skirmish/arena"
)

// Deps is the shared scene state injected into every system at construction.
// Nothing here is reachable as ambient global state.
type Deps struct {
	Log      logrus.FieldLogger
	Rand     *rand.Rand
	Space    *arena.Space
	Registry *arena.Registry
	Clusters *arena.Clusters

	// Target is the tracked hostile. May report gone at any time; every
	// consumer re-checks on every access.
	Target arena.Target
}

func (d Deps) targetPos() (cp.Vector, bool) {
	if d.Target == nil {
		return cp.Vector{}, false
	}
	return d.Target.Position()
}

func (d Deps) randFloat() float64 {
	if d.Rand == nil {
		return 0.5
	}
	return d.Rand.Float64()
}

func (d Deps) randSign() float64 {
	if d.randFloat() < 0.5 {
		return -1
	}
	return 1
}
