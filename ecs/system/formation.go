package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/arena"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// Formation assigns cluster members evenly spaced angular slots around a
// moving center. Slots are recomputed only when the center drifts past the
// minimum delta or membership changes, so the path layer is not saturated
// with near-duplicate destinations. A random per-cycle offset and the
// cross-swap chance keep the pattern from being exploitable.
type Formation struct {
	deps Deps
}

func NewFormation(deps Deps) *Formation {
	return &Formation{deps: deps}
}

func (s *Formation) Update(w *ecs.World, dt float64) {
	tpos, tok := s.deps.targetPos()

	names := make([]string, 0, len(s.deps.Clusters.All()))
	for name := range s.deps.Clusters.All() {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cluster, _ := s.deps.Clusters.Get(name)
		if cluster == nil || cluster.Len() == 0 {
			continue
		}

		center := cluster.Anchor
		if tok {
			center = tpos
		}

		minDelta := 0.0
		members := cluster.Members()
		for _, e := range members {
			if cm, ok := ecs.Get(w, e, component.ClusterMembers); ok {
				minDelta = cm.MinCenterDelta
				break
			}
		}

		if s.needsRecompute(cluster, center, minDelta, len(members)) {
			s.assignSlots(w, cluster, center)
		}

		for _, e := range members {
			cm, ok := ecs.Get(w, e, component.ClusterMembers)
			if !ok {
				continue
			}
			mov, ok := ecs.Get(w, e, component.Movers)
			if !ok {
				continue
			}
			slot, ok := cluster.Slots[e]
			if !ok {
				continue
			}
			mov.SetDestination(center.Add(common.Polar(slot).Mult(cm.OrbitRadius)))
		}
	}
}

func (s *Formation) needsRecompute(c *arena.Cluster, center cp.Vector, minDelta float64, memberCount int) bool {
	if !c.CenterSet {
		return true
	}
	if len(c.Slots) != memberCount {
		return true
	}
	return center.Distance(c.LastCenter) >= minDelta
}

func (s *Formation) assignSlots(w *ecs.World, c *arena.Cluster, center cp.Vector) {
	members := c.Members()
	n := len(members)
	if n == 0 {
		return
	}
	c.LastCenter = center
	c.CenterSet = true
	c.CycleOffset = s.deps.randFloat() * 2 * math.Pi

	step := 2 * math.Pi / float64(n)
	for i, e := range members {
		slot := c.CycleOffset + step*float64(i)
		if cm, ok := ecs.Get(w, e, component.ClusterMembers); ok {
			if cm.CrossSwapChance > 0 && s.deps.randFloat() < cm.CrossSwapChance {
				slot += math.Pi
			}
		}
		c.Slots[e] = slot
	}
}
