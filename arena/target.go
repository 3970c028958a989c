package arena

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/common"
)

// Target is anything agents can detect and attack. The second return is
// false when the target is gone (despawned, dead).
type Target interface {
	Position() (cp.Vector, bool)
}

// TargetFunc adapts a closure to Target.
type TargetFunc func() (cp.Vector, bool)

func (f TargetFunc) Position() (cp.Vector, bool) {
	if f == nil {
		return cp.Vector{}, false
	}
	return f()
}

// FixedTarget is a stationary target, mostly useful in tests and scripted
// scenarios.
type FixedTarget struct {
	At    cp.Vector
	Alive bool
}

func NewFixedTarget(at cp.Vector) *FixedTarget {
	return &FixedTarget{At: at, Alive: true}
}

func (t *FixedTarget) Position() (cp.Vector, bool) {
	if t == nil || !t.Alive {
		return cp.Vector{}, false
	}
	return t.At, true
}

func (t *FixedTarget) Kill() { t.Alive = false }

// PatrolTarget walks a loop of waypoints at constant speed. The simulator
// uses it as the hostile the agents hunt.
type PatrolTarget struct {
	Points []cp.Vector
	Speed  float64

	pos   cp.Vector
	next  int
	alive bool
}

func NewPatrolTarget(points []cp.Vector, speed float64) *PatrolTarget {
	t := &PatrolTarget{Points: points, Speed: speed, alive: true}
	if len(points) > 0 {
		t.pos = points[0]
		t.next = 1 % len(points)
	}
	return t
}

func (t *PatrolTarget) Position() (cp.Vector, bool) {
	if t == nil || !t.alive {
		return cp.Vector{}, false
	}
	return t.pos, true
}

// Advance moves the target along its loop.
func (t *PatrolTarget) Advance(dt float64) {
	if t == nil || !t.alive || len(t.Points) == 0 || t.Speed <= 0 || dt <= 0 {
		return
	}
	remain := t.Speed * dt
	for remain > 0 {
		goal := t.Points[t.next]
		dist := goal.Distance(t.pos)
		if dist <= remain {
			t.pos = goal
			t.next = (t.next + 1) % len(t.Points)
			remain -= dist
			if dist == 0 {
				return
			}
			continue
		}
		dir := goal.Sub(t.pos).Normalize()
		t.pos = t.pos.Add(dir.Mult(remain))
		return
	}
}

// Teleport snaps the target to a position, used by the script console.
func (t *PatrolTarget) Teleport(at cp.Vector) {
	if t == nil {
		return
	}
	t.pos = at
	if len(t.Points) > 0 {
		t.next = common.NearestPointIndex(t.Points, at)
	}
}

func (t *PatrolTarget) Kill() { t.alive = false }
