// Package script exposes the designer console: a tengo environment with
// spawn, trigger, and query functions bound to the running scenario. It is
// the only place triggers are fired by name; the name is validated against
// the trigger enum and rejected on mismatch.
package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/behavior"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/ecs/system"
)

// Console runs designer scripts against a live scenario.
type Console struct {
	log      logrus.FieldLogger
	world    *ecs.World
	registry *arena.Registry
	spawner  *system.Spawner

	// SetTargetPos teleports the scripted target, when the scenario
	// provides one.
	SetTargetPos func(cp.Vector)

	// RaiseAlarm arms the reinforcement spawner.
	RaiseAlarm func()
}

func NewConsole(log logrus.FieldLogger, world *ecs.World, registry *arena.Registry, spawner *system.Spawner) *Console {
	return &Console{log: log, world: world, registry: registry, spawner: spawner}
}

// Run compiles and executes one script with the console bindings installed.
func (c *Console) Run(src []byte) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("sim", c.engine()); err != nil {
		return fmt.Errorf("script: bind engine: %w", err)
	}
	if _, err := script.Run(); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (c *Console) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		archetype := objectAsString(args[0])
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if archetype == "" || !okX || !okY {
			return tengo.FalseValue, nil
		}
		e, err := c.spawner.Spawn(archetype, cp.Vector{X: x, Y: y})
		if err != nil {
			c.warn(err, "scripted spawn rejected")
			return tengo.FalseValue, nil
		}
		return &tengo.Int{Value: int64(e)}, nil
	}}

	values["fire_trigger"] = &tengo.UserFunction{Name: "fire_trigger", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		id, okID := tengo.ToInt64(args[0])
		name := objectAsString(args[1])
		if !okID || name == "" {
			return tengo.FalseValue, nil
		}
		e := ecs.Entity(id)
		agent, ok := ecs.Get(c.world, e, component.Agents)
		if !ok || agent.Brain == nil {
			return tengo.FalseValue, nil
		}
		if err := agent.Brain.FireTriggerName(name); err != nil {
			c.warn(err, "scripted trigger rejected")
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Float{Value: 0}, nil
		}
		id, ok := tengo.ToInt64(args[0])
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		if agent, ok := ecs.Get(c.world, ecs.Entity(id), component.Agents); ok {
			return &tengo.Float{Value: agent.Health}, nil
		}
		return &tengo.Float{Value: 0}, nil
	}}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		id, okID := tengo.ToInt64(args[0])
		amount, okAmt := tengo.ToFloat64(args[1])
		if !okID || !okAmt {
			return tengo.FalseValue, nil
		}
		if agent, ok := ecs.Get(c.world, ecs.Entity(id), component.Agents); ok {
			agent.ApplyDamage(amount)
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["reset"] = &tengo.UserFunction{Name: "reset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		id, ok := tengo.ToInt64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		e := ecs.Entity(id)
		agent, ok := ecs.Get(c.world, e, component.Agents)
		if !ok || agent.Brain == nil || !agent.Alive() {
			return tengo.FalseValue, nil
		}
		agent.ApplyHeal(agent.MaxHealth)
		agent.Brain.Fire(behavior.TriggerLostTarget)
		c.world.Events().Push(ecs.Event{Type: arena.EventAgentReset, Data: arena.AgentReset{
			Entity:    e,
			Archetype: agent.Archetype,
		}})
		return tengo.TrueValue, nil
	}}

	values["agent_count"] = &tengo.UserFunction{Name: "agent_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) >= 1 {
			archetype := objectAsString(args[0])
			return &tengo.Int{Value: int64(c.registry.Count(archetype))}, nil
		}
		return &tengo.Int{Value: int64(c.registry.Total())}, nil
	}}

	values["set_target"] = &tengo.UserFunction{Name: "set_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if c.SetTargetPos == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		c.SetTargetPos(cp.Vector{X: x, Y: y})
		return tengo.TrueValue, nil
	}}

	values["raise_alarm"] = &tengo.UserFunction{Name: "raise_alarm", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if c.RaiseAlarm == nil {
			return tengo.FalseValue, nil
		}
		c.RaiseAlarm()
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (c *Console) warn(err error, msg string) {
	if c.log != nil {
		c.log.WithError(err).Warn(msg)
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := tengo.ToString(obj); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
