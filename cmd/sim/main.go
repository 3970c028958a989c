// Command sim runs a headless skirmish: a patrol target walks the arena
// while spawned agents hunt it. It exists to exercise the behavior engine
// end to end and to host the designer script console.
package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/ecs/system"
	"github.com/milk9111/skirmish/logger"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/milk9111/skirmish/script"
)

func main() {
	var (
		ticks      = flag.Int("ticks", 3600, "fixed update ticks to run")
		dt         = flag.Float64("dt", 1.0/60.0, "seconds per tick")
		seed       = flag.Int64("seed", 1, "rng seed")
		scriptPath = flag.String("script", "", "tengo scenario script to run before the loop")
		watch      = flag.Bool("watch", false, "hot reload archetype yaml edits")
		alarm      = flag.Bool("alarm", true, "raise the reinforcement alarm at start")
		width      = flag.Float64("width", 120, "arena width")
		height     = flag.Float64("height", 90, "arena height")
	)
	flag.Parse()

	log := logger.New()
	rng := rand.New(rand.NewSource(*seed))

	world := ecs.NewWorld()
	space := arena.NewSpace(*width, *height)
	registry := arena.NewRegistry()
	clusters := arena.NewClusters()

	// The tracked hostile is a real body in the space so projectiles can
	// hit it; its movement is scripted, not brain-driven.
	patrol := arena.NewPatrolTarget([]cp.Vector{
		{X: 20, Y: 20},
		{X: *width - 20, Y: 20},
		{X: *width - 20, Y: *height - 20},
		{X: 20, Y: *height - 20},
	}, 4)
	targetEnt := ecs.CreateEntity(world)
	targetBody := space.AddAgentBody(targetEnt, cp.Vector{X: 20, Y: 20}, 0.8, space.NextGroup())
	targetAgent := &component.Agent{Archetype: "intruder", Health: 400, MaxHealth: 400}
	if err := ecs.Add(world, targetEnt, component.Agents, targetAgent); err != nil {
		log.WithError(err).Fatal("target setup failed")
	}
	if err := ecs.Add(world, targetEnt, component.Movers, &component.Mover{Body: targetBody}); err != nil {
		log.WithError(err).Fatal("target setup failed")
	}

	deps := system.Deps{
		Log:      log,
		Rand:     rng,
		Space:    space,
		Registry: registry,
		Clusters: clusters,
		Target: arena.TargetFunc(func() (cp.Vector, bool) {
			if !targetAgent.Alive() {
				return cp.Vector{}, false
			}
			return patrol.Position()
		}),
	}

	specs, err := prefabs.LoadAll(log)
	if err != nil {
		log.WithError(err).Fatal("archetype load failed")
	}
	spawner := system.NewSpawner(world, deps, specs)

	reinforce := system.NewReinforce(deps, system.ReinforceConfig{
		BaseInterval: 4,
		MinInterval:  1.5,
		MaxInterval:  12,
		LogScale:     1.1,
		Ramp:         10,
		MaxAlive:     24,
		Mix:          []string{"drone", "drone", "crawler", "bomber"},
		Points: []cp.Vector{
			{X: 5, Y: 5},
			{X: *width - 5, Y: 5},
			{X: 5, Y: *height - 5},
			{X: *width - 5, Y: *height - 5},
		},
	}, spawner)

	world.AddSystem(targetDriver{patrol: patrol, body: targetBody, agent: targetAgent})
	world.AddSystem(system.NewDetection(deps))
	world.AddSystem(system.NewBrains())
	world.AddSystem(system.NewFormation(deps))
	world.AddSystem(system.NewAvoidance(deps))
	world.AddSystem(system.NewSeparation(deps))
	world.AddSystem(system.NewMovement(deps))
	world.AddSystem(system.NewProjectiles(deps))
	world.AddSystem(reinforce)

	seedWave(log, spawner, *width, *height)
	if *alarm {
		reinforce.Raise(0)
	}

	console := script.NewConsole(log, world, registry, spawner)
	console.SetTargetPos = patrol.Teleport
	console.RaiseAlarm = func() { reinforce.Raise(world.Now()) }
	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.WithError(err).Fatal("scenario script unreadable")
		}
		if err := console.Run(src); err != nil {
			log.WithError(err).Fatal("scenario script failed")
		}
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher("prefabs/archetypes")
		if err != nil {
			log.WithError(err).Warn("archetype watch unavailable")
		} else {
			defer watcher.Close()
		}
	}

	deaths := map[string]int{}
	for i := 0; i < *ticks; i++ {
		world.Update(*dt)
		drainEvents(log, world, deaths)
		if watcher != nil {
			reloadOnEdit(log, watcher, spawner)
		}
		if !targetAgent.Alive() {
			log.WithField("tick", world.Tick()).Info("target destroyed")
			break
		}
	}

	summary := log.WithFields(logrus.Fields{
		"ticks":         world.Tick(),
		"alive":         registry.Total(),
		"spawned":       reinforce.Spawned(),
		"target_health": targetAgent.Health,
	})
	for _, archetype := range registry.Archetypes() {
		summary = summary.WithField("alive_"+archetype, registry.Count(archetype))
	}
	for archetype, n := range deaths {
		summary = summary.WithField("lost_"+archetype, n)
	}
	summary.Info("skirmish complete")
}

// targetDriver walks the patrol loop and keeps the target body in sync.
type targetDriver struct {
	patrol *arena.PatrolTarget
	body   *cp.Body
	agent  *component.Agent
}

func (d targetDriver) Update(w *ecs.World, dt float64) {
	if !d.agent.Alive() {
		d.patrol.Kill()
		return
	}
	d.patrol.Advance(dt)
	if pos, ok := d.patrol.Position(); ok {
		d.body.SetPosition(pos)
	}
}

func seedWave(log logrus.FieldLogger, spawner *system.Spawner, width, height float64) {
	wave := []struct {
		archetype string
		at        cp.Vector
	}{
		{"drone", cp.Vector{X: width * 0.5, Y: height * 0.3}},
		{"drone", cp.Vector{X: width * 0.55, Y: height * 0.35}},
		{"drone", cp.Vector{X: width * 0.45, Y: height * 0.35}},
		{"crawler", cp.Vector{X: width * 0.8, Y: height * 0.7}},
		{"crawler", cp.Vector{X: width * 0.2, Y: height * 0.7}},
		{"bomber", cp.Vector{X: width * 0.5, Y: height * 0.8}},
	}
	for _, s := range wave {
		if _, err := spawner.Spawn(s.archetype, s.at); err != nil {
			log.WithError(err).WithField("archetype", s.archetype).Warn("seed spawn failed")
		}
	}
}

func drainEvents(log logrus.FieldLogger, world *ecs.World, deaths map[string]int) {
	for _, evt := range world.Events().Drain() {
		switch data := evt.Data.(type) {
		case arena.AgentSpawned:
			log.WithFields(logrus.Fields{
				"agent":     data.Entity,
				"archetype": data.Archetype,
			}).Debug("spawned")
		case arena.AgentDied:
			deaths[data.Archetype]++
			log.WithFields(logrus.Fields{
				"agent":     data.Entity,
				"archetype": data.Archetype,
			}).Info("died")
		case arena.ProjectileImpact:
			log.WithFields(logrus.Fields{
				"owner":  data.Owner,
				"victim": data.Victim,
				"damage": data.Damage,
			}).Debug("impact")
		case arena.SpawnEscalation:
			log.WithFields(logrus.Fields{
				"spawned":       data.Spawned,
				"next_interval": data.NextInterval,
			}).Info("reinforcements escalating")
		}
	}
}

func reloadOnEdit(log logrus.FieldLogger, watcher *prefabs.Watcher, spawner *system.Spawner) {
	reload := false
	for {
		select {
		case name, ok := <-watcher.Events:
			if !ok {
				return
			}
			log.WithField("file", name).Info("archetype edited")
			reload = true
			continue
		case err, ok := <-watcher.Errors:
			if ok {
				log.WithError(err).Warn("archetype watcher error")
			}
			continue
		default:
		}
		break
	}
	if reload {
		specs, err := prefabs.LoadAll(log)
		if err != nil {
			log.WithError(err).Warn("archetype reload failed, keeping previous tuning")
			return
		}
		spawner.SetSpecs(specs)
	}
}
