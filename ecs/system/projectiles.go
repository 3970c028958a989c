package system

import (
	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// Projectiles expires shots that outlived their lifetime and resolves the
// impacts recorded by the space handlers: release the shot back to its
// pool, apply damage, publish the event.
type Projectiles struct {
	deps Deps
}

func NewProjectiles(deps Deps) *Projectiles {
	return &Projectiles{deps: deps}
}

func (s *Projectiles) Update(w *ecs.World, dt float64) {
	now := w.Now()

	ecs.ForEach(w, component.Shooters, func(e ecs.Entity, sh *component.Shooter) {
		if sh.Pool != nil {
			sh.Pool.ReleaseExpired(now)
		}
	})

	for _, imp := range s.deps.Space.DrainImpacts() {
		damage := 0.0
		if sh, ok := ecs.Get(w, imp.Owner, component.Shooters); ok && sh.Pool != nil {
			damage = sh.Damage
			if shot := sh.Pool.Find(imp.Shape); shot != nil {
				sh.Pool.Release(shot)
			}
		}

		if imp.Victim.Valid() && ecs.IsAlive(w, imp.Victim) {
			if victim, ok := ecs.Get(w, imp.Victim, component.Agents); ok {
				victim.ApplyDamage(damage)
			}
		}

		w.Events().Push(ecs.Event{Type: arena.EventImpact, Data: arena.ProjectileImpact{
			Owner:  imp.Owner,
			Victim: imp.Victim,
			At:     imp.Point,
			Damage: damage,
		}})
	}
}
