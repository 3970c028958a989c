package behavior

import (
	"fmt"

	"github.com/milk9111/skirmish/fsm"
)

// Agent binds a state machine to its strategy set. One strategy instance per
// state, constructed once at spawn and owned exclusively by this agent.
type Agent struct {
	machine    *fsm.Machine[State, Trigger]
	strategies map[State]Strategy
	ctx        *Context
}

// Table registers the permitted transitions for an archetype.
type Table func(m *fsm.Machine[State, Trigger])

// NewAgent builds the machine, wiring each state's entry/exit to its
// strategy so OnExit cancellation always runs on transition.
func NewAgent(ctx *Context, initial State, strategies map[State]Strategy, table Table) *Agent {
	m := fsm.New[State, Trigger](initial)
	if ctx != nil && ctx.Log != nil {
		m.SetLogger(ctx.Log)
	}
	for state, strat := range strategies {
		state, strat := state, strat
		m.Configure(state).
			OnEnter(func() { strat.Enter(ctx) }).
			OnExit(func() { strat.Exit(ctx) })
	}
	if table != nil {
		table(m)
	}
	a := &Agent{machine: m, strategies: strategies, ctx: ctx}
	return a
}

// Start enters the initial state.
func (a *Agent) Start() {
	a.machine.Start()
}

// Tick advances the agent's task scheduler, then runs the active state's
// per-frame decision if it has one.
func (a *Agent) Tick(dt float64) {
	if a.ctx != nil && a.ctx.Tasks != nil {
		a.ctx.Tasks.Advance(dt)
	}
	if s, ok := a.strategies[a.machine.Current()]; ok {
		if t, ok := s.(Ticker); ok {
			t.Tick(a.ctx, dt)
		}
	}
}

// Fire requests a transition. Unpermitted triggers are ignored.
func (a *Agent) Fire(t Trigger) bool {
	return a.machine.Fire(t)
}

// CanFire reports whether the trigger would transition right now.
func (a *Agent) CanFire(t Trigger) bool {
	return a.machine.CanFire(t)
}

// Current returns the active state.
func (a *Agent) Current() State {
	return a.machine.Current()
}

// FireTriggerName is the designer-tool fallback: it validates the name
// against the trigger enum and rejects mismatches instead of crashing.
func (a *Agent) FireTriggerName(name string) error {
	t, err := ParseTrigger(name)
	if err != nil {
		return fmt.Errorf("fire by name: %w", err)
	}
	a.machine.Fire(t)
	return nil
}

// Context exposes the agent's context for the driving system.
func (a *Agent) Context() *Context {
	return a.ctx
}
