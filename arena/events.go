package arena

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/ecs"
)

// Event names pushed to the world event queue. Wave and encounter managers
// drain these to count survivors; the simulator logs them.
const (
	EventAgentSpawned = "agent_spawned"
	EventAgentDied    = "agent_died"
	EventAgentReset   = "agent_reset"
	EventImpact       = "projectile_impact"
	EventEscalation   = "spawn_escalation"
)

type AgentSpawned struct {
	Entity    ecs.Entity
	Archetype string
	At        cp.Vector
}

type AgentDied struct {
	Entity    ecs.Entity
	Archetype string
	At        cp.Vector
}

// AgentReset is emitted when an agent is returned to idle by the script
// console or an encounter reset rather than dying.
type AgentReset struct {
	Entity    ecs.Entity
	Archetype string
}

type ProjectileImpact struct {
	Owner  ecs.Entity
	Victim ecs.Entity
	At     cp.Vector
	Damage float64
}

// SpawnEscalation reports the reinforcement curve advancing.
type SpawnEscalation struct {
	Spawned      int
	NextInterval float64
}
