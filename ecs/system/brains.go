package system

import (
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// Brains advances every agent's task scheduler and active state tick.
type Brains struct{}

func NewBrains() *Brains {
	return &Brains{}
}

func (s *Brains) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.Agents, func(e ecs.Entity, a *component.Agent) {
		if a.Brain != nil {
			a.Brain.Tick(dt)
		}
	})
}
