package arena

import (
	"sort"

	"github.com/milk9111/skirmish/ecs"
)

// Registry tracks live agents grouped by archetype name. Spawn and death
// mutations go through ecs.World.Defer so the registry never changes while
// systems are iterating it.
type Registry struct {
	byType map[string][]ecs.Entity
	typeOf map[ecs.Entity]string
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[string][]ecs.Entity),
		typeOf: make(map[ecs.Entity]string),
	}
}

// Add registers an agent under an archetype. An agent already registered is
// moved, not duplicated.
func (r *Registry) Add(archetype string, e ecs.Entity) {
	if prev, ok := r.typeOf[e]; ok {
		if prev == archetype {
			return
		}
		r.removeFrom(prev, e)
	}
	r.byType[archetype] = append(r.byType[archetype], e)
	r.typeOf[e] = archetype
}

// Remove drops an agent from the registry. Unknown agents are a no-op.
func (r *Registry) Remove(e ecs.Entity) {
	archetype, ok := r.typeOf[e]
	if !ok {
		return
	}
	r.removeFrom(archetype, e)
	delete(r.typeOf, e)
}

func (r *Registry) removeFrom(archetype string, e ecs.Entity) {
	list := r.byType[archetype]
	for i, have := range list {
		if have == e {
			r.byType[archetype] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// ArchetypeOf returns the archetype an agent was registered under.
func (r *Registry) ArchetypeOf(e ecs.Entity) (string, bool) {
	archetype, ok := r.typeOf[e]
	return archetype, ok
}

// OfType returns a copy of the live agents of one archetype, in spawn order.
func (r *Registry) OfType(archetype string) []ecs.Entity {
	list := r.byType[archetype]
	if len(list) == 0 {
		return nil
	}
	out := make([]ecs.Entity, len(list))
	copy(out, list)
	return out
}

// Count returns the number of live agents of one archetype.
func (r *Registry) Count(archetype string) int {
	return len(r.byType[archetype])
}

// Total returns the number of live agents across all archetypes.
func (r *Registry) Total() int {
	return len(r.typeOf)
}

// Archetypes returns the registered archetype names, sorted for stable
// iteration.
func (r *Registry) Archetypes() []string {
	names := make([]string, 0, len(r.byType))
	for name, list := range r.byType {
		if len(list) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
