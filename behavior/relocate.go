package behavior

import (
	"math"

	"github.com/milk9111/skirmish/common"
)

// Relocate moves the agent to a fresh point near home, then reports arrival.
type Relocate struct {
	picked bool
}

func NewRelocate() *Relocate { return &Relocate{} }

func (s *Relocate) Enter(ctx *Context) {
	s.picked = false
	r := ctx.Tun.RelocateRadius
	if r <= 0 {
		return
	}
	angle := ctx.randFloat() * 2 * math.Pi
	dist := r * (0.3 + 0.7*ctx.randFloat())
	ctx.setDestination(ctx.home().Add(common.Polar(angle).Mult(dist)))
	s.picked = true
}

func (s *Relocate) Exit(ctx *Context) {}

func (s *Relocate) Tick(ctx *Context, dt float64) {
	if !s.picked {
		// Missing tunable or home at enter time; retry rather than stall.
		s.Enter(ctx)
		return
	}
	if ctx.Arrived != nil && ctx.Arrived() {
		ctx.fire(TriggerArrived)
	}
}
