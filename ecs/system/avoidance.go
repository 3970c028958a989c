package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

const arcSweep = math.Pi / 3

// Avoidance steers agents away from armed hazards (bombers closing on the
// target). While a hazard qualifies, avoidance owns the agent's destination
// and suppresses separation for the tick; when it ends, the agent runs a
// bounded arc back toward pursuit instead of snapping around.
type Avoidance struct {
	deps Deps
}

func NewAvoidance(deps Deps) *Avoidance {
	return &Avoidance{deps: deps}
}

type armedHazard struct {
	pos    cp.Vector
	radius float64
}

func (s *Avoidance) Update(w *ecs.World, dt float64) {
	now := w.Now()
	tick := w.Tick()
	tpos, tok := s.deps.targetPos()

	var hazards []armedHazard
	ecs.ForEach2(w, component.Hazards, component.Movers, func(e ecs.Entity, h *component.Hazard, m *component.Mover) {
		if !h.Armed || !tok {
			return
		}
		if m.Position().Distance(tpos) <= h.PanicRadius {
			hazards = append(hazards, armedHazard{pos: m.Position(), radius: h.EffectiveRadius})
		}
	})

	ecs.ForEach2(w, component.Avoiders, component.Movers, func(e ecs.Entity, av *component.Avoidance, mov *component.Mover) {
		// hazards do not avoid themselves
		if _, isHazard := ecs.Get(w, e, component.Hazards); isHazard {
			return
		}

		pos := mov.Position()
		hz, found := nearest(hazards, pos)
		if !found {
			s.afterAvoid(av, mov, pos, tpos, tok, now)
			return
		}

		if !av.Avoiding {
			av.Avoiding = true
			av.HavePoint = false
			av.Arcing = false
		}

		safe := s.safePoint(av, hz, pos, tpos, tok)

		policy := av.Policy
		if policy == component.AvoidRandom {
			if s.deps.randFloat() < 0.5 {
				policy = component.AvoidFlee
			} else {
				policy = component.AvoidLerp
			}
		}

		var dest cp.Vector
		switch policy {
		case component.AvoidLerp:
			if !av.HavePoint {
				av.AvoidPoint = pos
				av.HavePoint = true
			}
			av.AvoidPoint = common.LerpVec(av.AvoidPoint, safe, common.Clamp01(av.LerpRate*dt))
			dest = av.AvoidPoint
		default:
			av.AvoidPoint = safe
			av.HavePoint = true
			dest = safe
		}

		// never hand out a destination inside the blast radius
		dest = pushOutside(dest, hz.pos, hz.radius)
		mov.SetDestination(dest)

		if sep, ok := ecs.Get(w, e, component.Separations); ok {
			sep.SuppressedTick = tick
		}
	})
}

// afterAvoid handles the tick where no hazard qualifies: start or continue
// the return arc. The arc ends at its deadline unconditionally.
func (s *Avoidance) afterAvoid(av *component.Avoidance, mov *component.Mover, pos, tpos cp.Vector, tok bool, now float64) {
	if av.Avoiding {
		av.Avoiding = false
		av.HavePoint = false
		if av.ArcDuration > 0 && tok {
			av.Arcing = true
			av.ArcUntil = now + av.ArcDuration
			av.ArcSide = s.deps.randSign()
		}
	}
	if !av.Arcing {
		return
	}
	if now >= av.ArcUntil || !tok {
		av.Arcing = false
		return
	}

	radial := pos.Sub(tpos)
	if radial.LengthSq() == 0 {
		radial = common.Polar(s.deps.randFloat() * 2 * math.Pi)
	}
	// sweep around the target while closing distance, easing out as the
	// deadline approaches
	remaining := (av.ArcUntil - now) / av.ArcDuration
	swung := common.Rotate(radial, av.ArcSide*arcSweep*remaining)
	dest := tpos.Add(swung.Mult(0.5 + 0.5*remaining))
	mov.SetDestination(dest)
}

// safePoint picks a destination away from both the hazard and the target.
func (s *Avoidance) safePoint(av *component.Avoidance, hz armedHazard, pos, tpos cp.Vector, tok bool) cp.Vector {
	away := pos.Sub(hz.pos)
	if away.LengthSq() == 0 {
		away = common.Polar(s.deps.randFloat() * 2 * math.Pi)
	} else {
		away = away.Normalize()
	}
	if tok {
		fromTarget := pos.Sub(tpos)
		if fromTarget.LengthSq() > 0 {
			away = away.Add(fromTarget.Normalize())
		}
	}
	if away.LengthSq() == 0 {
		away = common.Polar(s.deps.randFloat() * 2 * math.Pi)
	}
	dist := math.Max(av.SafeDistance, hz.radius*1.25)
	return hz.pos.Add(away.Normalize().Mult(dist))
}

func nearest(hazards []armedHazard, pos cp.Vector) (armedHazard, bool) {
	best := armedHazard{}
	bestDist := math.MaxFloat64
	found := false
	for _, hz := range hazards {
		d := hz.pos.DistanceSq(pos)
		if d < bestDist {
			bestDist = d
			best = hz
			found = true
		}
	}
	return best, found
}

// pushOutside moves p radially until it sits strictly beyond radius of from.
func pushOutside(p, from cp.Vector, radius float64) cp.Vector {
	d := p.Sub(from)
	dist := d.Length()
	if dist > radius {
		return p
	}
	if dist == 0 {
		d = cp.Vector{X: 1}
		dist = 1
	}
	return from.Add(d.Mult(radius * 1.05 / dist))
}
