package ecs

import "testing"

type health struct {
	hp float64
}

type tag struct {
	name string
}

var healths = NewComponent[health]()
var tags = NewComponent[tag]()

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			for _, e := range ents {
				if !IsAlive(w, e) {
					t.Fatalf("created entity %v not alive", e)
				}
			}
			if c.destroyIndex >= 0 {
				victim := ents[c.destroyIndex]
				if !DestroyEntity(w, victim) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, victim) {
					t.Fatalf("entity alive after destruction")
				}
				if DestroyEntity(w, victim) {
					t.Fatalf("double destroy should return false")
				}
			}
		})
	}
}

func TestGenerationInvalidatesStaleHandles(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	DestroyEntity(w, a)
	w.Update(0)

	b := CreateEntity(w)
	if a == b {
		t.Fatalf("recycled slot must carry a new generation")
	}
	if IsAlive(w, a) {
		t.Fatalf("stale handle reports alive")
	}
	if !IsAlive(w, b) {
		t.Fatalf("fresh handle reports dead")
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, healths, &health{hp: 10}); err != nil {
		t.Fatalf("add: %v", err)
	}
	h, ok := Get(w, e, healths)
	if !ok || h.hp != 10 {
		t.Fatalf("get after add: ok=%v h=%v", ok, h)
	}
	h.hp = 5
	if h2, _ := Get(w, e, healths); h2.hp != 5 {
		t.Fatalf("component pointer not stable")
	}
	if !Remove(w, e, healths) {
		t.Fatalf("remove should report true")
	}
	if Has(w, e, healths) {
		t.Fatalf("component present after remove")
	}

	dead := CreateEntity(w)
	DestroyEntity(w, dead)
	if err := Add(w, dead, healths, &health{}); err != ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if err := Add(w, e, healths, nil); err != ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestDestroySweepsComponentsAtFrameBoundary(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if err := Add(w, e, healths, &health{hp: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, e)

	// handle is dead immediately, store is swept on the next update
	if _, ok := Get(w, e, healths); ok {
		t.Fatalf("dead entity still readable")
	}
	w.Update(0)
	if Has(w, e, healths) {
		t.Fatalf("store not swept after frame boundary")
	}
}

func TestForEachTolerateDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, tags, &tag{name: "a"}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	visited := 0
	ForEach(w, tags, func(e Entity, _ *tag) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
}

func TestDeferredWorkRunsAfterSystems(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(systemFunc(func(world *World, dt float64) {
		order = append(order, "system")
		world.Defer(func() { order = append(order, "deferred") })
	}))
	w.Update(1.0 / 60.0)

	if len(order) != 2 || order[0] != "system" || order[1] != "deferred" {
		t.Fatalf("expected system then deferred, got %v", order)
	}
	if w.Tick() != 1 {
		t.Fatalf("tick not advanced")
	}
}

type systemFunc func(*World, float64)

func (f systemFunc) Update(w *World, dt float64) { f(w, dt) }
