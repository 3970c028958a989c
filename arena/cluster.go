package arena

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/skirmish/ecs"
)

// Cluster is a named coordination group: a drone squad orbiting a shared
// anchor, or a crawler pocket marking an ambush spot. Formation slot state
// lives here so the formation system can recompute lazily.
type Cluster struct {
	Name   string
	Anchor cp.Vector
	Radius float64

	members []ecs.Entity

	// formation state, owned by the formation system
	LastCenter  cp.Vector
	CenterSet   bool
	CycleOffset float64
	Slots       map[ecs.Entity]float64 // member -> slot angle in radians
}

// Members returns the live membership in join order. The returned slice is
// shared; callers iterate, they do not mutate.
func (c *Cluster) Members() []ecs.Entity {
	return c.members
}

func (c *Cluster) Len() int {
	return len(c.members)
}

func (c *Cluster) Contains(e ecs.Entity) bool {
	for _, m := range c.members {
		if m == e {
			return true
		}
	}
	return false
}

// Clusters indexes all clusters by name and enforces that an agent belongs
// to at most one cluster at a time.
type Clusters struct {
	byName   map[string]*Cluster
	byMember map[ecs.Entity]*Cluster
}

func NewClusters() *Clusters {
	return &Clusters{
		byName:   make(map[string]*Cluster),
		byMember: make(map[ecs.Entity]*Cluster),
	}
}

// Ensure returns the named cluster, creating it with the given anchor and
// radius if it does not exist yet.
func (cs *Clusters) Ensure(name string, anchor cp.Vector, radius float64) *Cluster {
	if c, ok := cs.byName[name]; ok {
		return c
	}
	c := &Cluster{
		Name:   name,
		Anchor: anchor,
		Radius: radius,
		Slots:  make(map[ecs.Entity]float64),
	}
	cs.byName[name] = c
	return c
}

func (cs *Clusters) Get(name string) (*Cluster, bool) {
	c, ok := cs.byName[name]
	return c, ok
}

// Join adds an agent to the named cluster, leaving any previous cluster
// first.
func (cs *Clusters) Join(name string, e ecs.Entity) *Cluster {
	if prev, ok := cs.byMember[e]; ok {
		if prev.Name == name {
			return prev
		}
		cs.Leave(e)
	}
	c, ok := cs.byName[name]
	if !ok {
		c = cs.Ensure(name, cp.Vector{}, 0)
	}
	c.members = append(c.members, e)
	cs.byMember[e] = c
	return c
}

// Leave removes an agent from whatever cluster it belongs to.
func (cs *Clusters) Leave(e ecs.Entity) {
	c, ok := cs.byMember[e]
	if !ok {
		return
	}
	for i, m := range c.members {
		if m == e {
			c.members = append(c.members[:i], c.members[i+1:]...)
			break
		}
	}
	delete(c.Slots, e)
	delete(cs.byMember, e)
}

// Of returns the cluster an agent belongs to, if any.
func (cs *Clusters) Of(e ecs.Entity) (*Cluster, bool) {
	c, ok := cs.byMember[e]
	return c, ok
}

// All returns every known cluster. Iteration order is unspecified; callers
// needing determinism sort by name.
func (cs *Clusters) All() map[string]*Cluster {
	return cs.byName
}
