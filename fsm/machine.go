// Package fsm provides a small typed state machine: a transition table per
// state with guarded entries, entry/exit callbacks, and ignore semantics for
// triggers that have no matching entry in the current state.
package fsm

import (
	"github.com/sirupsen/logrus"
)

// Guard is a transition predicate evaluated at fire time.
type Guard func() bool

// Callback runs on state entry or exit.
type Callback func()

type transition[S, T comparable] struct {
	trigger T
	dest    S
	guard   Guard
}

type stateConfig[S, T comparable] struct {
	enter       []Callback
	exit        []Callback
	transitions []transition[S, T]
}

// Machine tracks exactly one active state and a per-state transition table.
// Firing a trigger with no matching guarded entry is a logged no-op, so
// callers may fire speculative triggers freely. A Fire issued from inside a
// transition callback is queued and processed after the in-flight transition
// completes; a single machine never runs overlapping transitions.
type Machine[S, T comparable] struct {
	current S
	started bool
	states  map[S]*stateConfig[S, T]

	firing  bool
	pending []T

	log logrus.FieldLogger
}

// New creates a machine with the given initial state. Entry callbacks for the
// initial state run on Start, not here.
func New[S, T comparable](initial S) *Machine[S, T] {
	return &Machine[S, T]{
		current: initial,
		states:  make(map[S]*stateConfig[S, T]),
	}
}

// SetLogger attaches a logger for ignored-trigger diagnostics.
func (m *Machine[S, T]) SetLogger(log logrus.FieldLogger) {
	m.log = log
}

// StateBuilder configures a single state's callbacks and transitions.
type StateBuilder[S, T comparable] struct {
	m   *Machine[S, T]
	cfg *stateConfig[S, T]
}

// Configure returns a builder for a state, creating its table on first use.
func (m *Machine[S, T]) Configure(s S) *StateBuilder[S, T] {
	cfg, ok := m.states[s]
	if !ok {
		cfg = &stateConfig[S, T]{}
		m.states[s] = cfg
	}
	return &StateBuilder[S, T]{m: m, cfg: cfg}
}

// OnEnter appends an entry callback.
func (b *StateBuilder[S, T]) OnEnter(fn Callback) *StateBuilder[S, T] {
	if fn != nil {
		b.cfg.enter = append(b.cfg.enter, fn)
	}
	return b
}

// OnExit appends an exit callback.
func (b *StateBuilder[S, T]) OnExit(fn Callback) *StateBuilder[S, T] {
	if fn != nil {
		b.cfg.exit = append(b.cfg.exit, fn)
	}
	return b
}

// Permit registers an unguarded transition.
func (b *StateBuilder[S, T]) Permit(trigger T, dest S) *StateBuilder[S, T] {
	return b.PermitIf(trigger, dest, nil)
}

// PermitIf registers a guarded transition. Guards are evaluated in
// declaration order at fire time; the first satisfied entry wins.
func (b *StateBuilder[S, T]) PermitIf(trigger T, dest S, guard Guard) *StateBuilder[S, T] {
	b.cfg.transitions = append(b.cfg.transitions, transition[S, T]{
		trigger: trigger,
		dest:    dest,
		guard:   guard,
	})
	return b
}

// Current returns the active state.
func (m *Machine[S, T]) Current() S {
	return m.current
}

// Is reports whether s is the active state.
func (m *Machine[S, T]) Is(s S) bool {
	return m.current == s
}

// Start runs the initial state's entry callbacks. Calling Start twice is a
// no-op.
func (m *Machine[S, T]) Start() {
	if m.started {
		return
	}
	m.started = true
	m.runEnter(m.current)
	m.drain()
}

// CanFire reports whether the trigger has a guard-satisfied entry in the
// current state without performing a transition.
func (m *Machine[S, T]) CanFire(trigger T) bool {
	cfg, ok := m.states[m.current]
	if !ok {
		return false
	}
	for _, tr := range cfg.transitions {
		if tr.trigger != trigger {
			continue
		}
		if tr.guard == nil || tr.guard() {
			return true
		}
	}
	return false
}

// Fire looks up the current state's table and performs at most one
// transition: exit callbacks, state mutation, then entry callbacks. Returns
// true if a transition ran immediately. Unmatched triggers are ignored.
func (m *Machine[S, T]) Fire(trigger T) bool {
	if m.firing {
		m.pending = append(m.pending, trigger)
		return false
	}
	fired := m.fire(trigger)
	m.drain()
	return fired
}

func (m *Machine[S, T]) drain() {
	for len(m.pending) > 0 {
		next := m.pending[0]
		m.pending = m.pending[1:]
		m.fire(next)
	}
}

func (m *Machine[S, T]) fire(trigger T) bool {
	cfg, ok := m.states[m.current]
	if !ok {
		m.logIgnored(trigger)
		return false
	}
	for _, tr := range cfg.transitions {
		if tr.trigger != trigger {
			continue
		}
		if tr.guard != nil && !tr.guard() {
			continue
		}
		m.firing = true
		for _, fn := range cfg.exit {
			fn()
		}
		m.current = tr.dest
		m.runEnter(tr.dest)
		m.firing = false
		return true
	}
	m.logIgnored(trigger)
	return false
}

func (m *Machine[S, T]) runEnter(s S) {
	cfg, ok := m.states[s]
	if !ok {
		return
	}
	m.firing = true
	for _, fn := range cfg.enter {
		fn()
	}
	m.firing = false
}

func (m *Machine[S, T]) logIgnored(trigger T) {
	if m.log == nil {
		return
	}
	m.log.WithFields(logrus.Fields{
		"state":   m.current,
		"trigger": trigger,
	}).Debug("fsm: trigger ignored")
}
