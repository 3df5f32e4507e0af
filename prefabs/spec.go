package prefabs

import (
	"fmt"

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

// WorldSpec holds the simulation tuning shared by every level.
type WorldSpec struct {
	Physics   PhysicsSpec   `yaml:"physics"`
	Field     FieldSpec     `yaml:"field"`
	Pickups   PickupSpec    `yaml:"pickups"`
	Enemies   EnemySpec     `yaml:"enemies"`
	Boss      BossSpec      `yaml:"boss"`
	Lifecycle LifecycleSpec `yaml:"lifecycle"`
	Timestep  TimestepSpec  `yaml:"timestep"`
}

type PhysicsSpec struct {
	Gravity float64 `yaml:"gravity"`
}

type FieldSpec struct {
	GroundY    float64 `yaml:"ground_y"`
	FallMargin float64 `yaml:"fall_margin"`
	EdgeSlack  float64 `yaml:"edge_slack"`
}

type PickupSpec struct {
	CrystalSize float64 `yaml:"crystal_size"`
	AllyWidth   float64 `yaml:"ally_width"`
	AllyHeight  float64 `yaml:"ally_height"`
}

type EnemySpec struct {
	Speeds map[string]float64 `yaml:"speeds"`
}

// Speed returns the patrol speed of kind, or 0 for unknown kinds.
func (s EnemySpec) Speed(kind string) float64 {
	return s.Speeds[kind]
}

type BossSpec struct {
	MeleeRange       float64 `yaml:"melee_range"`
	FireballSize     float64 `yaml:"fireball_size"`
	FireballGravity  float64 `yaml:"fireball_gravity"`
	FireballLifetime float64 `yaml:"fireball_lifetime"`
	FireballMargin   float64 `yaml:"fireball_margin"`
}

type LifecycleSpec struct {
	AdvanceDelay        float64 `yaml:"advance_delay"`
	InvulnerableSeconds float64 `yaml:"invulnerable_seconds"`
}

type TimestepMode string

const (
	TimestepVariable TimestepMode = "variable"
	TimestepFixed    TimestepMode = "fixed"
)

type TimestepSpec struct {
	Mode        TimestepMode `yaml:"mode"`
	FixedHz     int          `yaml:"fixed_hz"`
	MaxSubsteps int          `yaml:"max_substeps"`
}

// FixedDT returns the fixed step length in seconds.
func (s TimestepSpec) FixedDT() float64 {
	if s.FixedHz <= 0 {
		return 1.0 / 120
	}
	return 1.0 / float64(s.FixedHz)
}

func LoadWorldSpec() (WorldSpec, error) {
	return LoadSpec[WorldSpec]("world.yaml")
}

type PlayerSpec struct {
	Name       string  `yaml:"name"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	MoveSpeed  float64 `yaml:"move_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	StartLives int     `yaml:"start_lives"`
	MaxLives   int     `yaml:"max_lives"`
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return LoadSpec[PlayerSpec]("player.yaml")
}
