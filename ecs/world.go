package ecs

// System updates a world each frame.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, component storage, system order, and the frame clock.
// Entity destruction sweeps component stores at the end of the frame so
// systems never iterate a store that is being mutated under them.
type World struct {
	entities entityStore
	stores   map[ComponentID]*sparseSet
	systems  []System
	events   EventQueue
	deferred []func()

	tick uint64
	now  float64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity handle.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity invalidates the handle immediately and sweeps its components
// at the next frame boundary. Returns false for an already-dead handle.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	w.Defer(func() {
		for _, s := range w.stores {
			s.remove(e)
		}
	})
	return true
}

// IsAlive reports whether an entity handle is still valid.
func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Defer schedules fn to run at the end of the current frame. Registries and
// membership lists are mutated here, never mid-iteration.
func (w *World) Defer(fn func()) {
	if fn == nil {
		return
	}
	w.deferred = append(w.deferred, fn)
}

// Update advances the clock, runs all systems once, then runs deferred work.
func (w *World) Update(dt float64) {
	w.tick++
	w.now += dt
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.flushDeferred()
}

func (w *World) flushDeferred() {
	// Deferred work may defer more work (death handlers spawning corpse
	// cleanup); drain until stable.
	for len(w.deferred) > 0 {
		pending := w.deferred
		w.deferred = nil
		for _, fn := range pending {
			fn()
		}
	}
}

// Tick returns the current frame number.
func (w *World) Tick() uint64 {
	return w.tick
}

// Now returns the simulation clock in seconds.
func (w *World) Now() float64 {
	return w.now
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

func (w *World) store(id ComponentID) *sparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}
