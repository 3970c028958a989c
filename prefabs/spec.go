// Package prefabs loads archetype tuning from yaml, with embedded defaults
// and optional on-disk overrides for live tuning.
package prefabs

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type DetectionSpec struct {
	BaseRange   float64 `yaml:"base_range"`
	EnterBuffer float64 `yaml:"enter_buffer"`
	ExitBuffer  float64 `yaml:"exit_buffer"`
	MinGap      float64 `yaml:"min_gap"`
	AttackRange float64 `yaml:"attack_range"`
	MaxAngle    float64 `yaml:"max_angle"`
	Interval    float64 `yaml:"interval"`
	Sustain     float64 `yaml:"sustain"`
}

type WeaponSpec struct {
	Interval        float64 `yaml:"interval"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	ProjectileSize  float64 `yaml:"projectile_size"`
	Lifetime        float64 `yaml:"lifetime"`
	Damage          float64 `yaml:"damage"`
	MissChance      float64 `yaml:"miss_chance"`
	MissYawMin      float64 `yaml:"miss_yaw_min"`
	MissYawMax      float64 `yaml:"miss_yaw_max"`
	AimHeight       float64 `yaml:"aim_height"`
	PitchGain       float64 `yaml:"pitch_gain"`
}

type HazardSpec struct {
	EffectiveRadius float64 `yaml:"effective_radius"`
	PanicRadius     float64 `yaml:"panic_radius"`
	Damage          float64 `yaml:"damage"`
}

type AvoidSpec struct {
	Policy       string  `yaml:"policy"` // flee, lerp, random
	SafeDistance float64 `yaml:"safe_distance"`
	LerpRate     float64 `yaml:"lerp_rate"`
	ArcDuration  float64 `yaml:"arc_duration"`
}

type SeparationSpec struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxPush     float64 `yaml:"max_push"`
}

type ClusterSpec struct {
	Name            string  `yaml:"name"`
	OrbitRadius     float64 `yaml:"orbit_radius"`
	MinCenterDelta  float64 `yaml:"min_center_delta"`
	CrossSwapChance float64 `yaml:"cross_swap_chance"`
}

type BehaviorSpec struct {
	IdlePause      float64 `yaml:"idle_pause"`
	WanderRadius   float64 `yaml:"wander_radius"`
	RelocateRadius float64 `yaml:"relocate_radius"`
	HoldRange      float64 `yaml:"hold_range"`
	FireInterval   float64 `yaml:"fire_interval"`
	FleeDistance   float64 `yaml:"flee_distance"`
	FleeDuration   float64 `yaml:"flee_duration"`
	PopupDelay     float64 `yaml:"popup_delay"`
	PeekInterval   float64 `yaml:"peek_interval"`
	CorpseTime     float64 `yaml:"corpse_time"`
}

// ArchetypeSpec is one agent archetype's full tuning sheet.
type ArchetypeSpec struct {
	Name          string  `yaml:"name"`
	Role          string  `yaml:"role"`
	Health        float64 `yaml:"health"`
	LowHealthFrac float64 `yaml:"low_health_frac"`
	Radius        float64 `yaml:"radius"`
	MoveSpeed     float64 `yaml:"move_speed"`
	ArriveRadius  float64 `yaml:"arrive_radius"`

	Behavior   BehaviorSpec   `yaml:"behavior"`
	Detection  DetectionSpec  `yaml:"detection"`
	Separation SeparationSpec `yaml:"separation"`

	Weapon  *WeaponSpec  `yaml:"weapon"`
	Hazard  *HazardSpec  `yaml:"hazard"`
	Avoid   *AvoidSpec   `yaml:"avoid"`
	Cluster *ClusterSpec `yaml:"cluster"`
}

// Clamp pushes non-positive tunables up to safe minimums so a bad config
// degrades instead of dividing by zero. Each adjusted field is logged once.
func (a *ArchetypeSpec) Clamp(log logrus.FieldLogger) {
	at := func(name string, v *float64, min float64) {
		if *v > 0 {
			return
		}
		if log != nil {
			log.WithFields(logrus.Fields{
				"archetype": a.Name,
				"field":     name,
				"value":     *v,
				"clamped":   min,
			}).Warn("non-positive tunable clamped")
		}
		*v = min
	}

	at("health", &a.Health, 1)
	at("radius", &a.Radius, 0.25)
	at("move_speed", &a.MoveSpeed, 0.5)
	at("arrive_radius", &a.ArriveRadius, 0.25)
	at("behavior.idle_pause", &a.Behavior.IdlePause, 0.5)
	at("behavior.wander_radius", &a.Behavior.WanderRadius, 1)
	at("behavior.relocate_radius", &a.Behavior.RelocateRadius, 1)
	at("behavior.fire_interval", &a.Behavior.FireInterval, 0.1)
	at("behavior.flee_distance", &a.Behavior.FleeDistance, 1)
	at("behavior.flee_duration", &a.Behavior.FleeDuration, 0.5)
	at("behavior.peek_interval", &a.Behavior.PeekInterval, 0.1)
	at("detection.base_range", &a.Detection.BaseRange, 1)
	at("detection.attack_range", &a.Detection.AttackRange, 1)
	at("detection.interval", &a.Detection.Interval, 0.05)
	at("separation.min_distance", &a.Separation.MinDistance, 0.5)
	at("separation.max_push", &a.Separation.MaxPush, 0.1)

	if a.Weapon != nil {
		at("weapon.interval", &a.Weapon.Interval, 0.1)
		at("weapon.projectile_speed", &a.Weapon.ProjectileSpeed, 1)
		at("weapon.projectile_size", &a.Weapon.ProjectileSize, 0.1)
		at("weapon.lifetime", &a.Weapon.Lifetime, 0.5)
		at("weapon.damage", &a.Weapon.Damage, 1)
	}
	if a.Hazard != nil {
		at("hazard.effective_radius", &a.Hazard.EffectiveRadius, 1)
		at("hazard.panic_radius", &a.Hazard.PanicRadius, 1)
		at("hazard.damage", &a.Hazard.Damage, 1)
	}
	if a.Avoid != nil {
		at("avoid.safe_distance", &a.Avoid.SafeDistance, 1)
		at("avoid.lerp_rate", &a.Avoid.LerpRate, 0.5)
		at("avoid.arc_duration", &a.Avoid.ArcDuration, 0.25)
	}
	if a.Cluster != nil {
		at("cluster.orbit_radius", &a.Cluster.OrbitRadius, 1)
		at("cluster.min_center_delta", &a.Cluster.MinCenterDelta, 0.25)
	}
}

// LoadArchetype loads and clamps one archetype file.
func LoadArchetype(filename string, log logrus.FieldLogger) (ArchetypeSpec, error) {
	spec, err := LoadSpec[ArchetypeSpec](filename)
	if err != nil {
		return ArchetypeSpec{}, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(strings.TrimPrefix(cleanPath(filename), "archetypes/"), ".yaml")
	}
	if spec.Role == "" {
		return ArchetypeSpec{}, fmt.Errorf("prefabs: archetype %s: missing role", spec.Name)
	}
	spec.Clamp(log)
	return spec, nil
}

// LoadAll loads every embedded archetype, keyed by name.
func LoadAll(log logrus.FieldLogger) (map[string]ArchetypeSpec, error) {
	entries, err := fs.ReadDir(ArchetypesFS, "archetypes")
	if err != nil {
		return nil, fmt.Errorf("prefabs: read archetypes: %w", err)
	}
	out := make(map[string]ArchetypeSpec, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		spec, err := LoadArchetype(entry.Name(), log)
		if err != nil {
			return nil, err
		}
		out[spec.Name] = spec
	}
	return out, nil
}
