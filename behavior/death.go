package behavior

// Death is terminal: it cancels every pending routine, leaves any cluster,
// emits the lifecycle event, and schedules despawn.
type Death struct{}

func NewDeath() *Death { return &Death{} }

func (s *Death) Enter(ctx *Context) {
	if ctx.Tasks != nil {
		ctx.Tasks.CancelAll()
	}
	ctx.stop()
	if ctx.LeaveCluster != nil {
		ctx.LeaveCluster()
	}
	if ctx.EmitDeath != nil {
		ctx.EmitDeath()
	}
	corpse := ctx.Tun.CorpseTime
	if corpse <= 0 {
		if ctx.Despawn != nil {
			ctx.Despawn()
		}
		return
	}
	ctx.Tasks.After(corpse, func() {
		if ctx.Despawn != nil {
			ctx.Despawn()
		}
	})
}

func (s *Death) Exit(ctx *Context) {}
