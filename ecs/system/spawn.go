package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/behavior"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/milk9111/skirmish/projectile"
)

// Spawner assembles complete agents from archetype specs: body, components,
// projectile pool, context closures, and the brain. It is the only place
// that knows how all the layers fit together.
type Spawner struct {
	deps  Deps
	world *ecs.World
	specs map[string]prefabs.ArchetypeSpec
}

func NewSpawner(w *ecs.World, deps Deps, specs map[string]prefabs.ArchetypeSpec) *Spawner {
	return &Spawner{deps: deps, world: w, specs: specs}
}

// SetSpecs swaps the archetype sheets. Already-spawned agents keep their
// tuning; only future spawns pick up the new numbers.
func (sp *Spawner) SetSpecs(specs map[string]prefabs.ArchetypeSpec) {
	sp.specs = specs
}

// Archetypes returns the spawnable archetype names.
func (sp *Spawner) Archetypes() []string {
	names := make([]string, 0, len(sp.specs))
	for name := range sp.specs {
		names = append(names, name)
	}
	return names
}

// Spawn creates one agent at the given point and starts its brain. Registry
// registration is deferred to the frame boundary.
func (sp *Spawner) Spawn(archetype string, at cp.Vector) (ecs.Entity, error) {
	spec, ok := sp.specs[archetype]
	if !ok {
		return 0, fmt.Errorf("spawn: unknown archetype %q", archetype)
	}
	initial, strategies, table, ok := behavior.TableFor(spec.Role)
	if !ok {
		return 0, fmt.Errorf("spawn: archetype %q: unknown role %q", archetype, spec.Role)
	}

	w := sp.world
	deps := sp.deps
	e := ecs.CreateEntity(w)
	group := deps.Space.NextGroup()
	body := deps.Space.AddAgentBody(e, at, spec.Radius, group)

	mover := &component.Mover{
		Body:         body,
		Group:        group,
		Speed:        spec.MoveSpeed,
		ArriveRadius: spec.ArriveRadius,
		Home:         at,
	}
	if err := ecs.Add(w, e, component.Movers, mover); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", archetype, err)
	}

	det := &component.Detection{
		BaseRange:   spec.Detection.BaseRange,
		EnterBuffer: spec.Detection.EnterBuffer,
		ExitBuffer:  spec.Detection.ExitBuffer,
		MinGap:      spec.Detection.MinGap,
		AttackRange: spec.Detection.AttackRange,
		MaxAngle:    spec.Detection.MaxAngle,
		Interval:    spec.Detection.Interval,
		Sustain:     spec.Detection.Sustain,
	}
	if err := ecs.Add(w, e, component.Detections, det); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", archetype, err)
	}

	if err := ecs.Add(w, e, component.Separations, &component.Separation{
		MinDistance: spec.Separation.MinDistance,
		MaxPush:     spec.Separation.MaxPush,
	}); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", archetype, err)
	}

	var shooter *component.Shooter
	if spec.Weapon != nil {
		weapon := spec.Weapon
		pool := projectile.NewPool(deps.Space, group, weapon.ProjectileSize, weapon.Lifetime)
		shooter = &component.Shooter{
			Pool:            pool,
			Interval:        weapon.Interval,
			ProjectileSpeed: weapon.ProjectileSpeed,
			Damage:          weapon.Damage,
			MissChance:      weapon.MissChance,
			MissYawMin:      weapon.MissYawMin,
			MissYawMax:      weapon.MissYawMax,
			AimHeight:       weapon.AimHeight,
			PitchGain:       weapon.PitchGain,
			LastFiredAt:     component.NeverFired,
		}
		if err := ecs.Add(w, e, component.Shooters, shooter); err != nil {
			return 0, fmt.Errorf("spawn %s: %w", archetype, err)
		}
	}

	var hazard *component.Hazard
	if spec.Hazard != nil {
		hazard = &component.Hazard{
			Armed:           true,
			EffectiveRadius: spec.Hazard.EffectiveRadius,
			PanicRadius:     spec.Hazard.PanicRadius,
			Damage:          spec.Hazard.Damage,
		}
		if err := ecs.Add(w, e, component.Hazards, hazard); err != nil {
			return 0, fmt.Errorf("spawn %s: %w", archetype, err)
		}
	}

	if spec.Avoid != nil {
		if err := ecs.Add(w, e, component.Avoiders, &component.Avoidance{
			Policy:       component.ParseAvoidPolicy(spec.Avoid.Policy),
			SafeDistance: spec.Avoid.SafeDistance,
			LerpRate:     spec.Avoid.LerpRate,
			ArcDuration:  spec.Avoid.ArcDuration,
		}); err != nil {
			return 0, fmt.Errorf("spawn %s: %w", archetype, err)
		}
	}

	var member *component.ClusterMember
	if spec.Cluster != nil {
		member = &component.ClusterMember{
			Cluster:         spec.Cluster.Name,
			OrbitRadius:     spec.Cluster.OrbitRadius,
			MinCenterDelta:  spec.Cluster.MinCenterDelta,
			CrossSwapChance: spec.Cluster.CrossSwapChance,
		}
		if err := ecs.Add(w, e, component.ClusterMembers, member); err != nil {
			return 0, fmt.Errorf("spawn %s: %w", archetype, err)
		}
		deps.Clusters.Ensure(spec.Cluster.Name, at, spec.Cluster.OrbitRadius)
	}

	agent := &component.Agent{
		Archetype:     archetype,
		Health:        spec.Health,
		MaxHealth:     spec.Health,
		LowHealthFrac: spec.LowHealthFrac,
	}
	if err := ecs.Add(w, e, component.Agents, agent); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", archetype, err)
	}

	ctx := sp.buildContext(e, spec, agent, mover, det, shooter, hazard, member)
	agent.Brain = behavior.NewAgent(ctx, initial, strategies, table)

	w.Defer(func() {
		deps.Registry.Add(archetype, e)
	})
	w.Events().Push(ecs.Event{Type: arena.EventAgentSpawned, Data: arena.AgentSpawned{
		Entity:    e,
		Archetype: archetype,
		At:        at,
	}})

	agent.Brain.Start()
	return e, nil
}

func (sp *Spawner) buildContext(
	e ecs.Entity,
	spec prefabs.ArchetypeSpec,
	agent *component.Agent,
	mover *component.Mover,
	det *component.Detection,
	shooter *component.Shooter,
	hazard *component.Hazard,
	member *component.ClusterMember,
) *behavior.Context {
	w := sp.world
	deps := sp.deps

	var log = deps.Log
	if log != nil {
		log = log.WithField("agent", e.String()).WithField("archetype", spec.Name)
	}

	ctx := &behavior.Context{
		Entity: e.String(),
		Log:    log,
		Rand:   deps.Rand,
		Tasks:  &behavior.Scheduler{},
		Tun: behavior.Tunables{
			MoveSpeed:      spec.MoveSpeed,
			IdlePause:      spec.Behavior.IdlePause,
			WanderRadius:   spec.Behavior.WanderRadius,
			RelocateRadius: spec.Behavior.RelocateRadius,
			HoldRange:      spec.Behavior.HoldRange,
			FireInterval:   spec.Behavior.FireInterval,
			FleeDistance:   spec.Behavior.FleeDistance,
			FleeDuration:   spec.Behavior.FleeDuration,
			PopupDelay:     spec.Behavior.PopupDelay,
			PeekInterval:   spec.Behavior.PeekInterval,
			CorpseTime:     spec.Behavior.CorpseTime,
		},

		Now:            w.Now,
		Position:       mover.Position,
		Home:           func() cp.Vector { return mover.Home },
		SetDestination: mover.SetDestination,
		Stop:           mover.Stop,
		Face:           mover.Face,
		Arrived:        mover.Arrived,

		Target: deps.targetPos,
	}

	ctx.TargetVisible = func() bool {
		tpos, ok := deps.targetPos()
		if !ok {
			return false
		}
		enter, _ := det.Thresholds()
		pos := mover.Position()
		return pos.Distance(tpos) <= enter && deps.Space.LineOfSight(pos, tpos)
	}

	ctx.FireAt = func(at cp.Vector) bool {
		if shooter == nil || shooter.Pool == nil {
			return false
		}
		now := w.Now()
		if !shooter.CanFire(now) {
			return false
		}
		pos := mover.Position()
		dir := at.Sub(pos)
		dist := dir.Length()
		if dist == 0 {
			return false
		}
		dir = dir.Mult(1 / dist)

		// vertical correction first, then the yaw miss offset; the miss
		// never re-normalizes the corrected direction
		pitch := shooter.Pitch(dist)
		speed := shooter.ProjectileSpeed * math.Cos(pitch)
		if deps.randFloat() < shooter.MissChance {
			yaw := shooter.MissYawMin + deps.randFloat()*(shooter.MissYawMax-shooter.MissYawMin)
			dir = common.Rotate(dir, deps.randSign()*yaw)
		}

		muzzle := pos.Add(dir.Mult(spec.Radius + 0.1))
		shooter.Pool.Acquire(e, muzzle, dir.Mult(speed), now)
		shooter.MarkFired(now)
		return true
	}

	ctx.Fire = func(t behavior.Trigger) {
		if agent.Brain != nil {
			agent.Brain.Fire(t)
		}
	}

	ctx.JoinCluster = func() {
		if member == nil {
			return
		}
		w.Defer(func() {
			deps.Clusters.Join(member.Cluster, e)
			member.Joined = true
		})
	}
	ctx.LeaveCluster = func() {
		if member == nil {
			return
		}
		w.Defer(func() {
			deps.Clusters.Leave(e)
			member.Joined = false
		})
	}

	ctx.EmitDeath = func() {
		at := mover.Position()
		if hazard != nil && hazard.Armed {
			sp.detonate(e, at, hazard)
		}
		w.Events().Push(ecs.Event{Type: arena.EventAgentDied, Data: arena.AgentDied{
			Entity:    e,
			Archetype: spec.Name,
			At:        at,
		}})
	}

	ctx.Despawn = func() {
		w.Defer(func() {
			if shooter != nil && shooter.Pool != nil {
				shooter.Pool.ReleaseAll()
			}
			deps.Space.RemoveAgentBody(mover.Body)
			mover.Body = nil
			deps.Clusters.Leave(e)
			deps.Registry.Remove(e)
			ecs.DestroyEntity(w, e)
		})
	}

	return ctx
}

// detonate applies an armed hazard's area damage to everything in range,
// then disarms it so the blast cannot double-fire.
func (sp *Spawner) detonate(source ecs.Entity, at cp.Vector, hazard *component.Hazard) {
	hazard.Armed = false
	w := sp.world
	ecs.ForEach2(w, component.Agents, component.Movers, func(peer ecs.Entity, a *component.Agent, m *component.Mover) {
		if peer == source || !a.Alive() {
			return
		}
		if m.Position().Distance(at) <= hazard.EffectiveRadius {
			a.ApplyDamage(hazard.Damage)
		}
	})
}
