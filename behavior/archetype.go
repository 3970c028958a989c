package behavior

import "github.com/milk9111/skirmish/fsm"

// permitDeath routes the died trigger to the death state from every listed
// state.
func permitDeath(m *fsm.Machine[State, Trigger], states ...State) {
	for _, s := range states {
		m.Configure(s).Permit(TriggerDied, StateDeath)
	}
}

// DroneStrategies builds the strategy set for an orbiting shooter.
func DroneStrategies() map[State]Strategy {
	return map[State]Strategy{
		StateIdle:     NewIdle(),
		StateRelocate: NewRelocate(),
		StateSwarm:    NewSwarm(),
		StateAttack:   NewAttack(),
		StateDeath:    NewDeath(),
	}
}

// DroneTable: idle until a target is seen, orbit it as a squad, fire while
// the engagement gate holds, fall back to relocating when the target is lost.
func DroneTable(m *fsm.Machine[State, Trigger]) {
	m.Configure(StateIdle).
		Permit(TriggerSpotted, StateSwarm).
		Permit(TriggerDamaged, StateSwarm)
	m.Configure(StateRelocate).
		Permit(TriggerArrived, StateIdle).
		Permit(TriggerSpotted, StateSwarm).
		Permit(TriggerDamaged, StateSwarm)
	m.Configure(StateSwarm).
		Permit(TriggerInRange, StateAttack).
		Permit(TriggerLostTarget, StateRelocate)
	m.Configure(StateAttack).
		Permit(TriggerOutOfRange, StateSwarm).
		Permit(TriggerLostTarget, StateRelocate)
	permitDeath(m, StateIdle, StateRelocate, StateSwarm, StateAttack)
}

// CrawlerStrategies builds the strategy set for a pocket ambusher.
func CrawlerStrategies() map[State]Strategy {
	return map[State]Strategy{
		StateAmbush:   NewAmbush(),
		StateChase:    NewChase(),
		StateAttack:   NewAttack(),
		StateFlee:     NewFlee(),
		StateRelocate: NewRelocate(),
		StateDeath:    NewDeath(),
	}
}

// CrawlerTable: hide in the pocket, pop up after the ambush delay, chase and
// melee, flee at low health, crawl back to the pocket when the target is
// lost or a rally is called.
func CrawlerTable(m *fsm.Machine[State, Trigger]) {
	m.Configure(StateAmbush).
		Permit(TriggerEmerge, StateChase).
		Permit(TriggerDamaged, StateChase)
	m.Configure(StateChase).
		Permit(TriggerInRange, StateAttack).
		Permit(TriggerLostTarget, StateRelocate).
		Permit(TriggerLowHealth, StateFlee).
		Permit(TriggerRally, StateRelocate)
	m.Configure(StateAttack).
		Permit(TriggerOutOfRange, StateChase).
		Permit(TriggerLostTarget, StateRelocate).
		Permit(TriggerLowHealth, StateFlee).
		Permit(TriggerRally, StateRelocate)
	m.Configure(StateFlee).
		Permit(TriggerRecovered, StateRelocate)
	m.Configure(StateRelocate).
		Permit(TriggerArrived, StateAmbush).
		Permit(TriggerSpotted, StateChase)
	permitDeath(m, StateAmbush, StateChase, StateAttack, StateFlee, StateRelocate)
}

// BomberStrategies builds the strategy set for a walking bomb.
func BomberStrategies() map[State]Strategy {
	return map[State]Strategy{
		StateIdle:  NewIdle(),
		StateChase: NewChase(),
		StateDeath: NewDeath(),
	}
}

// BomberTable: amble until a target is seen, close in, detonate in range.
// Detonation is modelled as the death transition; the combat layer turns an
// armed bomber's death into area damage.
func BomberTable(m *fsm.Machine[State, Trigger]) {
	m.Configure(StateIdle).
		Permit(TriggerSpotted, StateChase).
		Permit(TriggerDamaged, StateChase)
	m.Configure(StateChase).
		Permit(TriggerInRange, StateDeath).
		Permit(TriggerLostTarget, StateIdle)
	permitDeath(m, StateIdle, StateChase)
}

// TableFor resolves an archetype's table and strategy set by role name.
func TableFor(role string) (State, map[State]Strategy, Table, bool) {
	switch role {
	case "drone":
		return StateIdle, DroneStrategies(), DroneTable, true
	case "crawler":
		return StateAmbush, CrawlerStrategies(), CrawlerTable, true
	case "bomber":
		return StateIdle, BomberStrategies(), BomberTable, true
	}
	return 0, nil, nil, false
}
