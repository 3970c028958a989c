package system

import "testing"

func TestSpawnIntervalLinearRamp(t *testing.T) {
	const (
		base     = 4.0
		lo       = 1.5
		hi       = 12.0
		ramp     = 10
		logScale = 1.1
	)

	prev := 0.0
	for n := 0; n <= ramp; n++ {
		v := SpawnInterval(n, base, lo, hi, ramp, logScale)
		if v < prev {
			t.Fatalf("interval decreased at n=%d: %v < %v", n, v, prev)
		}
		prev = v
	}

	if got := SpawnInterval(0, base, lo, hi, ramp, logScale); got != 0.6*base {
		t.Fatalf("n=0 interval = %v, want %v", got, 0.6*base)
	}
	if got := SpawnInterval(ramp, base, lo, hi, ramp, logScale); got != base {
		t.Fatalf("n=ramp interval = %v, want baseline %v", got, base)
	}
}

func TestSpawnIntervalLogRegimeBoundedAndNonDecreasing(t *testing.T) {
	const (
		base     = 4.0
		lo       = 1.5
		hi       = 12.0
		ramp     = 10
		logScale = 1.1
	)

	prev := SpawnInterval(ramp, base, lo, hi, ramp, logScale)
	for n := ramp + 1; n <= 500; n++ {
		v := SpawnInterval(n, base, lo, hi, ramp, logScale)
		if v < lo || v > hi {
			t.Fatalf("n=%d interval %v outside [%v, %v]", n, v, lo, hi)
		}
		if v < prev {
			t.Fatalf("interval decreased at n=%d: %v < %v", n, v, prev)
		}
		prev = v
	}
}

func TestSpawnIntervalClampsHostileConfig(t *testing.T) {
	cases := []struct {
		name string
		n    int
		ramp int
	}{
		{"negative_n", -3, 10},
		{"zero_ramp", 5, 0},
		{"negative_ramp", 5, -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := SpawnInterval(c.n, 4, 1.5, 12, c.ramp, 1.1)
			if v < 1.5 || v > 12 {
				t.Fatalf("interval %v escaped clamp bounds", v)
			}
		})
	}
}
