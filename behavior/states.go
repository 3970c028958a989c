package behavior

import "fmt"

// State identifies an agent's current mode.
type State uint8

const (
	StateIdle State = iota
	StateRelocate
	StateChase
	StateAttack
	StateFlee
	StateSwarm
	StateAmbush
	StateDeath
)

var stateNames = map[State]string{
	StateIdle:     "idle",
	StateRelocate: "relocate",
	StateChase:    "chase",
	StateAttack:   "attack",
	StateFlee:     "flee",
	StateSwarm:    "swarm",
	StateAmbush:   "ambush",
	StateDeath:    "death",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Trigger is an event requesting a state transition. A trigger not permitted
// from the current state is ignored, never fatal.
type Trigger uint8

const (
	TriggerSpotted Trigger = iota
	TriggerLostTarget
	TriggerInRange
	TriggerOutOfRange
	TriggerDamaged
	TriggerLowHealth
	TriggerDied
	TriggerArrived
	TriggerRecovered
	TriggerEmerge
	TriggerRally
)

var triggerNames = map[Trigger]string{
	TriggerSpotted:    "spotted",
	TriggerLostTarget: "lost_target",
	TriggerInRange:    "in_range",
	TriggerOutOfRange: "out_of_range",
	TriggerDamaged:    "damaged",
	TriggerLowHealth:  "low_health",
	TriggerDied:       "died",
	TriggerArrived:    "arrived",
	TriggerRecovered:  "recovered",
	TriggerEmerge:     "emerge",
	TriggerRally:      "rally",
}

func (t Trigger) String() string {
	if n, ok := triggerNames[t]; ok {
		return n
	}
	return fmt.Sprintf("trigger(%d)", uint8(t))
}

// ParseTrigger resolves a trigger by name. This is the only name-keyed entry
// point; it backs the designer console and rejects unknown names.
func ParseTrigger(name string) (Trigger, error) {
	for t, n := range triggerNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("behavior: unknown trigger %q", name)
}

// ParseState resolves a state by name.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("behavior: unknown state %q", name)
}
