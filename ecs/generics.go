package ecs

// Add attaches a component to an entity. Adding to a dead entity is an error.
func Add[T any](w *World, e Entity, h Handle[T], v *T) error {
	if !w.entities.isAlive(e) {
		return ErrEntityNotAlive
	}
	if v == nil {
		return ErrNilComponent
	}
	if !h.Valid() {
		return ErrInvalidComponent
	}
	w.store(h.ID()).set(e, v)
	return nil
}

// Remove detaches a component. Returns false if the entity did not have it.
func Remove[T any](w *World, e Entity, h Handle[T]) bool {
	s, ok := w.stores[h.ID()]
	if !ok {
		return false
	}
	return s.remove(e)
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, h Handle[T]) bool {
	s, ok := w.stores[h.ID()]
	if !ok {
		return false
	}
	return w.entities.isAlive(e) && s.has(e)
}

// Get returns the component pointer for an entity.
func Get[T any](w *World, e Entity, h Handle[T]) (*T, bool) {
	s, ok := w.stores[h.ID()]
	if !ok || !w.entities.isAlive(e) {
		return nil, false
	}
	v, ok := s.get(e).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// First returns an arbitrary entity carrying the component.
func First[T any](w *World, h Handle[T]) (Entity, *T, bool) {
	s, ok := w.stores[h.ID()]
	if !ok {
		return 0, nil, false
	}
	for _, e := range s.entities() {
		if v, ok := Get(w, e, h); ok {
			return e, v, true
		}
	}
	return 0, nil, false
}

// Count returns the number of live entities carrying the component.
func Count[T any](w *World, h Handle[T]) int {
	s, ok := w.stores[h.ID()]
	if !ok {
		return 0
	}
	n := 0
	for _, e := range s.entities() {
		if w.entities.isAlive(e) {
			n++
		}
	}
	return n
}

// ForEach visits every live entity carrying the component. The visit order is
// the dense storage order; callers must not rely on it. Iteration works over a
// snapshot so callbacks may add or defer-remove components safely.
func ForEach[T any](w *World, h Handle[T], fn func(Entity, *T)) {
	s, ok := w.stores[h.ID()]
	if !ok {
		return
	}
	ents := append([]Entity(nil), s.entities()...)
	for _, e := range ents {
		if v, ok := Get(w, e, h); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities carrying both components.
func ForEach2[A, B any](w *World, ha Handle[A], hb Handle[B], fn func(Entity, *A, *B)) {
	ForEach(w, ha, func(e Entity, a *A) {
		if b, ok := Get(w, e, hb); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits entities carrying all three components.
func ForEach3[A, B, C any](w *World, ha Handle[A], hb Handle[B], hc Handle[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ha, hb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, hc); ok {
			fn(e, a, b, c)
		}
	})
}
