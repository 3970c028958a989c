package behavior

import "math"

// Flee bursts away from the tracked target for a bounded duration, then
// reports recovery. The deadline fires unconditionally even if the target
// vanished mid-flight.
type Flee struct {
	done *Handle
}

func NewFlee() *Flee { return &Flee{} }

func (s *Flee) Enter(ctx *Context) {
	pos := ctx.position()
	away := pos
	if target, ok := ctx.target(); ok {
		delta := pos.Sub(target)
		if delta.Length() == 0 {
			angle := ctx.randFloat() * 2 * math.Pi
			delta.X = math.Cos(angle)
			delta.Y = math.Sin(angle)
		}
		dist := ctx.Tun.FleeDistance * (0.5 + 0.5*ctx.randFloat())
		away = pos.Add(delta.Normalize().Mult(dist))
	} else {
		away = ctx.home()
	}
	ctx.setDestination(away)
	s.done = ctx.Tasks.After(ctx.Tun.FleeDuration, func() {
		ctx.fire(TriggerRecovered)
	})
}

func (s *Flee) Exit(ctx *Context) {
	s.done.Cancel()
}
