package component

import "github.com/milk9111/skirmish/ecs"

var Separations = ecs.NewComponent[Separation]()

// Separation configures same-archetype repulsion. The resulting push is a
// velocity nudge, never a destination override.
type Separation struct {
	MinDistance float64
	MaxPush     float64

	// SuppressedTick marks the frame on which another policy (hazard
	// avoidance) claimed this agent; separation skips that frame.
	SuppressedTick uint64
}

var ClusterMembers = ecs.NewComponent[ClusterMember]()

// ClusterMember attaches an agent to a named cluster and carries its
// formation tuning.
type ClusterMember struct {
	Cluster string

	OrbitRadius float64

	// MinCenterDelta is how far the cluster center must move before slots
	// are recomputed.
	MinCenterDelta float64

	// CrossSwapChance is the per-recompute probability that the member's
	// slot flips 180 degrees.
	CrossSwapChance float64

	Joined bool
}
