package behavior

import (
	"strings"
	"testing"
)

func TestParseTriggerRoundTrip(t *testing.T) {
	for trig, name := range triggerNames {
		got, err := ParseTrigger(name)
		if err != nil {
			t.Fatalf("ParseTrigger(%q): %v", name, err)
		}
		if got != trig {
			t.Fatalf("ParseTrigger(%q) = %v, want %v", name, got, trig)
		}
	}
}

func TestParseTriggerRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "SPOTTED", "spotted ", "explode"} {
		if _, err := ParseTrigger(name); err == nil {
			t.Fatalf("ParseTrigger(%q) accepted", name)
		}
	}
}

func TestParseStateRoundTrip(t *testing.T) {
	for state, name := range stateNames {
		got, err := ParseState(name)
		if err != nil {
			t.Fatalf("ParseState(%q): %v", name, err)
		}
		if got != state {
			t.Fatalf("ParseState(%q) = %v, want %v", name, got, state)
		}
	}
}

func TestFireTriggerNameRejectsUnknown(t *testing.T) {
	a := NewAgent(&Context{}, StateIdle, nil, DroneTable)
	a.Start()

	err := a.FireTriggerName("detonate")
	if err == nil {
		t.Fatalf("unknown trigger name accepted")
	}
	if !strings.Contains(err.Error(), "detonate") {
		t.Fatalf("error does not name the bad trigger: %v", err)
	}
	if got := a.Current(); got != StateIdle {
		t.Fatalf("state changed on rejected trigger: %v", got)
	}
}

func TestFireTriggerNameDrivesMachine(t *testing.T) {
	a := NewAgent(&Context{}, StateIdle, nil, DroneTable)
	a.Start()

	if err := a.FireTriggerName("spotted"); err != nil {
		t.Fatalf("fire by name: %v", err)
	}
	if got := a.Current(); got != StateSwarm {
		t.Fatalf("state = %v after spotted", got)
	}

	// not permitted from swarm, silently ignored
	if err := a.FireTriggerName("emerge"); err != nil {
		t.Fatalf("permitted-name check failed: %v", err)
	}
	if got := a.Current(); got != StateSwarm {
		t.Fatalf("ignored trigger moved the machine: %v", got)
	}
}
