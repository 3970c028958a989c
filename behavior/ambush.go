package behavior

// Ambush hides at the agent's pocket. A slow peek routine watches for a
// visible target; once seen, a one-shot popup delay commits to emerging. The
// popup delay terminates at its deadline even if the target ducks back out
// of sight.
type Ambush struct {
	peek   *Handle
	emerge *Handle
}

func NewAmbush() *Ambush { return &Ambush{} }

func (s *Ambush) Enter(ctx *Context) {
	ctx.stop()
	s.emerge = nil
	s.peek = ctx.Tasks.Every(ctx.Tun.PeekInterval, func() {
		if s.emerge.Active() {
			return
		}
		if ctx.TargetVisible == nil || !ctx.TargetVisible() {
			return
		}
		s.emerge = ctx.Tasks.After(ctx.Tun.PopupDelay, func() {
			ctx.fire(TriggerEmerge)
		})
	})
}

func (s *Ambush) Exit(ctx *Context) {
	s.peek.Cancel()
	s.emerge.Cancel()
}
