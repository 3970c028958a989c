package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
)

// SpawnInterval computes the reinforcement curve for the nth spawn. The
// first ramp spawns interpolate linearly from 0.6*base up to base, giving
// fast early pressure; after that the interval grows with log1p of the
// overflow so the long-run rate is self-limiting. The result always lands
// in [lo, hi].
func SpawnInterval(n int, base, lo, hi float64, ramp int, logScale float64) float64 {
	if ramp < 1 {
		ramp = 1
	}
	var v float64
	if n <= ramp {
		t := float64(n) / float64(ramp)
		if t < 0 {
			t = 0
		}
		v = common.Lerp(0.6*base, base, t)
	} else {
		v = base + logScale*math.Log1p(float64(n-ramp))
	}
	return common.Clamp(v, lo, hi)
}

// ReinforceConfig tunes the alarm-driven reinforcement spawner.
type ReinforceConfig struct {
	BaseInterval float64
	MinInterval  float64
	MaxInterval  float64
	LogScale     float64
	Ramp         int

	// MaxAlive caps the live population; spawns pause while at the cap
	// and resume as agents die.
	MaxAlive int

	// Mix is cycled through per spawn.
	Mix    []string
	Points []cp.Vector
}

// Reinforce spawns escalating reinforcements once the alarm is raised.
type Reinforce struct {
	deps    Deps
	cfg     ReinforceConfig
	spawner *Spawner

	raised  bool
	spawned int
	nextAt  float64
}

func NewReinforce(deps Deps, cfg ReinforceConfig, spawner *Spawner) *Reinforce {
	return &Reinforce{deps: deps, cfg: cfg, spawner: spawner}
}

// Raise arms the spawner. Raising an already-raised alarm is a no-op.
func (s *Reinforce) Raise(now float64) {
	if s.raised {
		return
	}
	s.raised = true
	s.nextAt = now + SpawnInterval(s.spawned, s.cfg.BaseInterval, s.cfg.MinInterval, s.cfg.MaxInterval, s.cfg.Ramp, s.cfg.LogScale)
}

// Silence disarms the spawner but keeps the escalation count, so a re-raised
// alarm continues the curve instead of restarting the early rush.
func (s *Reinforce) Silence() {
	s.raised = false
}

func (s *Reinforce) Raised() bool { return s.raised }
func (s *Reinforce) Spawned() int { return s.spawned }

func (s *Reinforce) Update(w *ecs.World, dt float64) {
	if !s.raised || len(s.cfg.Mix) == 0 || len(s.cfg.Points) == 0 {
		return
	}
	now := w.Now()
	if now < s.nextAt {
		return
	}
	if s.cfg.MaxAlive > 0 && s.deps.Registry.Total() >= s.cfg.MaxAlive {
		// at the cap: re-check one interval from now
		s.nextAt = now + s.cfg.MinInterval
		return
	}

	archetype := s.cfg.Mix[s.spawned%len(s.cfg.Mix)]
	point := s.cfg.Points[int(s.deps.randFloat()*float64(len(s.cfg.Points)))%len(s.cfg.Points)]
	if _, err := s.spawner.Spawn(archetype, point); err != nil {
		if s.deps.Log != nil {
			s.deps.Log.WithError(err).WithField("archetype", archetype).Warn("reinforcement spawn failed")
		}
		s.nextAt = now + s.cfg.MinInterval
		return
	}

	s.spawned++
	interval := SpawnInterval(s.spawned, s.cfg.BaseInterval, s.cfg.MinInterval, s.cfg.MaxInterval, s.cfg.Ramp, s.cfg.LogScale)
	s.nextAt = now + interval

	w.Events().Push(ecs.Event{Type: arena.EventEscalation, Data: arena.SpawnEscalation{
		Spawned:      s.spawned,
		NextInterval: interval,
	}})
}
