package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/behavior"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// Detection is the periodic spot/engage evaluator. It runs on each agent's
// own interval, decoupled from frame rate, and fires transitions through
// the agent's brain. Both latches are hysteresis gates with a sustain
// filter, so a single noisy frame never flips a state.
type Detection struct {
	deps Deps
}

func NewDetection(deps Deps) *Detection {
	return &Detection{deps: deps}
}

func (s *Detection) Update(w *ecs.World, dt float64) {
	now := w.Now()
	tpos, tok := s.deps.targetPos()

	ecs.ForEach2(w, component.Detections, component.Movers, func(e ecs.Entity, det *component.Detection, mov *component.Mover) {
		if now < det.NextEvalAt {
			return
		}
		det.NextEvalAt = now + det.Interval

		agent, ok := ecs.Get(w, e, component.Agents)
		if !ok || agent.Brain == nil || !agent.Alive() {
			return
		}

		pos := mov.Position()
		var dist float64
		seen := false
		if tok {
			dist = pos.Distance(tpos)
			seen = s.deps.Space.LineOfSight(pos, tpos) && s.inCone(det, mov, pos, tpos)
		}

		enter, exit := det.Thresholds()
		if !det.Spot.Engaged {
			candidate := tok && seen && dist <= enter
			if det.Spot.Eval(now, candidate, det.Sustain) {
				agent.Brain.Fire(behavior.TriggerSpotted)
			}
		} else {
			candidate := !tok || !seen || dist > exit
			if det.Spot.Eval(now, candidate, det.Sustain) {
				det.Engage.Reset()
				agent.Brain.Fire(behavior.TriggerLostTarget)
				return
			}
		}

		if !det.Spot.Engaged {
			return
		}

		attackEnter, attackExit := det.AttackThresholds()
		if !det.Engage.Engaged {
			if det.Engage.Eval(now, tok && dist <= attackEnter, det.Sustain) {
				agent.Brain.Fire(behavior.TriggerInRange)
			}
		} else {
			if det.Engage.Eval(now, !tok || dist > attackExit, det.Sustain) {
				agent.Brain.Fire(behavior.TriggerOutOfRange)
			}
		}
	})
}

func (s *Detection) inCone(det *component.Detection, mov *component.Mover, pos, tpos cp.Vector) bool {
	if det.MaxAngle <= 0 {
		return true
	}
	toTarget := tpos.Sub(pos)
	if toTarget.LengthSq() == 0 {
		return true
	}
	return common.AngleBetween(common.Polar(mov.Heading), toTarget) <= det.MaxAngle
}
