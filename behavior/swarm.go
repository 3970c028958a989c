package behavior

// Swarm joins the agent's cluster; the formation layer moves members into
// their orbit slots while this state is active.
type Swarm struct{}

func NewSwarm() *Swarm { return &Swarm{} }

func (s *Swarm) Enter(ctx *Context) {
	if ctx.JoinCluster != nil {
		ctx.JoinCluster()
	}
}

func (s *Swarm) Exit(ctx *Context) {
	if ctx.LeaveCluster != nil {
		ctx.LeaveCluster()
	}
}

func (s *Swarm) Tick(ctx *Context, dt float64) {
	if _, ok := ctx.target(); !ok {
		ctx.fire(TriggerLostTarget)
	}
}
