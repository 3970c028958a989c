// Package component holds the data attached to entities. Components are
// plain structs; all decision logic lives in ecs/system and behavior.
package component

import (
	"github.com/milk9111/skirmish/behavior"
	"github.com/milk9111/skirmish/ecs"
)

var Agents = ecs.NewComponent[Agent]()

// Agent is the brain component: the state machine plus health bookkeeping.
type Agent struct {
	Archetype string
	Brain     *behavior.Agent

	Health    float64
	MaxHealth float64
	// LowHealthFrac is the fraction of max health below which the low
	// health trigger fires.
	LowHealthFrac float64

	lowFired bool
}

// Alive reports whether the agent still has health.
func (a *Agent) Alive() bool {
	return a.Health > 0
}

// HealthFrac returns health as a fraction of max, clamped to [0, 1].
func (a *Agent) HealthFrac() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	f := a.Health / a.MaxHealth
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ApplyDamage lowers health and raises the matching triggers. A dead agent
// ignores further damage.
func (a *Agent) ApplyDamage(amount float64) {
	if amount <= 0 || !a.Alive() {
		return
	}
	a.Health -= amount
	if a.Health <= 0 {
		a.Health = 0
		a.fire(behavior.TriggerDied)
		return
	}
	a.fire(behavior.TriggerDamaged)
	if !a.lowFired && a.HealthFrac() <= a.LowHealthFrac {
		a.lowFired = true
		a.fire(behavior.TriggerLowHealth)
	}
}

// ApplyHeal raises health, clamped to max. Healing above the low health
// threshold re-arms the low health trigger.
func (a *Agent) ApplyHeal(amount float64) {
	if amount <= 0 || !a.Alive() {
		return
	}
	a.Health += amount
	if a.Health > a.MaxHealth {
		a.Health = a.MaxHealth
	}
	if a.HealthFrac() > a.LowHealthFrac {
		a.lowFired = false
	}
}

func (a *Agent) fire(t behavior.Trigger) {
	if a.Brain != nil {
		a.Brain.Fire(t)
	}
}
