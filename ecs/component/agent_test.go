package component

import "testing"

func TestApplyDamageTriggerSequence(t *testing.T) {
	cases := []struct {
		name    string
		amounts []float64
		want    float64
		alive   bool
	}{
		{"simple_hit", []float64{10}, 90, true},
		{"to_low_health", []float64{80}, 20, true},
		{"lethal", []float64{100}, 0, false},
		{"overkill_clamps", []float64{60, 60}, 0, false},
		{"ignored_after_death", []float64{100, 10}, 0, false},
		{"non_positive_ignored", []float64{0, -5}, 100, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := &Agent{Health: 100, MaxHealth: 100, LowHealthFrac: 0.25}
			for _, amt := range c.amounts {
				a.ApplyDamage(amt)
			}
			if a.Health != c.want {
				t.Fatalf("health = %v, want %v", a.Health, c.want)
			}
			if a.Alive() != c.alive {
				t.Fatalf("alive = %v, want %v", a.Alive(), c.alive)
			}
		})
	}
}

func TestApplyHealClampsAndRearmsLowHealth(t *testing.T) {
	a := &Agent{Health: 100, MaxHealth: 100, LowHealthFrac: 0.3}
	a.ApplyDamage(80) // 20, below low threshold
	if !a.lowFired {
		t.Fatalf("low health latch should be set")
	}
	a.ApplyHeal(200)
	if a.Health != 100 {
		t.Fatalf("heal must clamp to max, got %v", a.Health)
	}
	if a.lowFired {
		t.Fatalf("heal above threshold must re-arm the low health latch")
	}
	a.ApplyDamage(100)
	a.ApplyHeal(50)
	if a.Health != 0 {
		t.Fatalf("dead agents do not heal, got %v", a.Health)
	}
}

func TestHealthFrac(t *testing.T) {
	a := &Agent{Health: 25, MaxHealth: 100}
	if got := a.HealthFrac(); got != 0.25 {
		t.Fatalf("frac = %v, want 0.25", got)
	}
	zero := &Agent{}
	if got := zero.HealthFrac(); got != 0 {
		t.Fatalf("zero max health frac = %v, want 0", got)
	}
}
