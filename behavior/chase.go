package behavior

// Chase pursues the tracked target directly. The coordination layer may
// override the requested destination (hazard avoidance, return arc) after
// this runs; chase only states intent.
type Chase struct{}

func NewChase() *Chase { return &Chase{} }

func (s *Chase) Enter(ctx *Context) {}

func (s *Chase) Exit(ctx *Context) {}

func (s *Chase) Tick(ctx *Context, dt float64) {
	pos, ok := ctx.target()
	if !ok {
		ctx.fire(TriggerLostTarget)
		return
	}
	ctx.setDestination(pos)
}
