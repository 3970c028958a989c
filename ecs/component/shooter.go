package component

import (
	"math"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/projectile"
)

var Shooters = ecs.NewComponent[Shooter]()

// Shooter is the ranged attack component. The cooldown is an absolute
// last-fire timestamp so it survives state re-entries.
type Shooter struct {
	Pool *projectile.Pool

	Interval        float64
	ProjectileSpeed float64
	Damage          float64

	// MissChance rotates the fire direction by a random yaw within
	// [MissYawMin, MissYawMax] radians, sign chosen at random. Applied
	// after the vertical correction.
	MissChance float64
	MissYawMin float64
	MissYawMax float64

	// AimHeight is the vertical offset of the target's center of mass;
	// PitchGain converts it to a pitch correction per unit of distance.
	AimHeight float64
	PitchGain float64

	LastFiredAt float64
}

// NeverFired is the LastFiredAt value of a shooter that has not fired yet.
var NeverFired = math.Inf(-1)

// CanFire reports whether the cooldown has elapsed at the given sim time.
func (s *Shooter) CanFire(now float64) bool {
	return now-s.LastFiredAt >= s.Interval
}

// MarkFired records the absolute fire time.
func (s *Shooter) MarkFired(now float64) {
	s.LastFiredAt = now
}

// Pitch returns the vertical aim correction for a target at the given
// ground distance. The correction is a scalar; positions stay on the plane.
func (s *Shooter) Pitch(distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return math.Atan2(s.AimHeight, distance) * s.PitchGain
}
