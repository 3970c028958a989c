package behavior

import (
	"math"

	"github.com/milk9111/skirmish/common"
)

// Idle holds position and wanders a little around home on a slow cadence.
type Idle struct {
	wander *Handle
}

func NewIdle() *Idle { return &Idle{} }

func (s *Idle) Enter(ctx *Context) {
	ctx.stop()
	s.wander = ctx.Tasks.Every(ctx.Tun.IdlePause, func() {
		r := ctx.Tun.WanderRadius
		if r <= 0 {
			return
		}
		angle := ctx.randFloat() * 2 * math.Pi
		dist := r * (0.25 + 0.75*ctx.randFloat())
		ctx.setDestination(ctx.home().Add(common.Polar(angle).Mult(dist)))
	})
}

func (s *Idle) Exit(ctx *Context) {
	s.wander.Cancel()
}
