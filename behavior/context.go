package behavior

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

// Tunables are the per-archetype numbers the strategies consume. They arrive
// pre-clamped from the archetype loader.
type Tunables struct {
	MoveSpeed      float64
	IdlePause      float64
	WanderRadius   float64
	RelocateRadius float64
	HoldRange      float64
	FireInterval   float64
	FleeDistance   float64
	FleeDuration   float64
	PopupDelay     float64
	PeekInterval   float64
	CorpseTime     float64
}

// Context is an agent's view of the world, expressed as closures so that
// strategies never reach into sibling agents or engine internals. Every
// closure may be nil and every target access may report a vanished target;
// strategies must tolerate both and retry on a later tick.
type Context struct {
	Entity string
	Log    logrus.FieldLogger
	Rand   *rand.Rand
	Tasks  *Scheduler
	Tun    Tunables

	Now            func() float64
	Position       func() cp.Vector
	Home           func() cp.Vector
	SetDestination func(cp.Vector)
	Stop           func()
	Face           func(cp.Vector)
	Arrived        func() bool

	Target        func() (cp.Vector, bool)
	TargetVisible func() bool
	FireAt        func(cp.Vector) bool

	Fire func(Trigger)

	JoinCluster  func()
	LeaveCluster func()
	EmitDeath    func()
	Despawn      func()
}

func (c *Context) position() cp.Vector {
	if c.Position == nil {
		return cp.Vector{}
	}
	return c.Position()
}

func (c *Context) home() cp.Vector {
	if c.Home == nil {
		return c.position()
	}
	return c.Home()
}

func (c *Context) target() (cp.Vector, bool) {
	if c.Target == nil {
		return cp.Vector{}, false
	}
	return c.Target()
}

func (c *Context) setDestination(p cp.Vector) {
	if c.SetDestination != nil {
		c.SetDestination(p)
	}
}

func (c *Context) stop() {
	if c.Stop != nil {
		c.Stop()
	}
}

func (c *Context) fire(t Trigger) {
	if c.Fire != nil {
		c.Fire(t)
	}
}

func (c *Context) randFloat() float64 {
	if c.Rand == nil {
		return 0.5
	}
	return c.Rand.Float64()
}

// Strategy is the per-state decision logic bound to one agent. Enter starts
// the state's periodic routines; Exit must cancel all of them.
type Strategy interface {
	Enter(ctx *Context)
	Exit(ctx *Context)
}

// Ticker is implemented by strategies that also run a per-frame decision.
type Ticker interface {
	Tick(ctx *Context, dt float64)
}
