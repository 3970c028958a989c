package behavior

// Attack holds position and runs a repeating aim/fire routine. The shot
// cooldown itself is enforced by the shooter's absolute last-fire timestamp,
// so re-entering this state cannot be used to fire early.
type Attack struct {
	aim *Handle
}

func NewAttack() *Attack { return &Attack{} }

func (s *Attack) Enter(ctx *Context) {
	ctx.stop()
	s.aim = ctx.Tasks.Every(ctx.Tun.FireInterval, func() {
		if ctx.FireAt == nil {
			return
		}
		if pos, ok := ctx.target(); ok {
			ctx.FireAt(pos)
		}
	})
}

func (s *Attack) Exit(ctx *Context) {
	s.aim.Cancel()
}

func (s *Attack) Tick(ctx *Context, dt float64) {
	pos, ok := ctx.target()
	if !ok {
		ctx.fire(TriggerLostTarget)
		return
	}
	if ctx.Face != nil {
		ctx.Face(pos)
	}
}
