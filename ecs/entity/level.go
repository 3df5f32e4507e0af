package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/levels"
	"github.com/milk9111/dragonlair/prefabs"
)

// Carry is the player state that survives a level change.
type Carry struct {
	Lives    int
	Lifetime int
}

// LevelConfig describes one level attempt.
type LevelConfig struct {
	Index  int
	Final  bool
	Level  *levels.Level
	World  prefabs.WorldSpec
	Player prefabs.PlayerSpec
	Carry  Carry
}

// LoadLevelToWorld populates w with the singletons, the level geometry and
// the player for cfg. Entities are created in authored order so queries visit
// platforms, crystals and enemies the way the level file lists them.
func LoadLevelToWorld(w *ecs.World, cfg LevelConfig) (ecs.Entity, error) {
	if w == nil {
		return ecs.Entity{}, fmt.Errorf("level: nil world")
	}
	lvl := cfg.Level
	if lvl == nil {
		return ecs.Entity{}, fmt.Errorf("level: nil definition for index %d", cfg.Index)
	}

	if err := addSingletons(w, cfg); err != nil {
		return ecs.Entity{}, err
	}

	for i, p := range lvl.Platforms {
		if err := addPlatform(w, p); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: platform %d: %w", i, err)
		}
	}

	for i, p := range lvl.Pits {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.PitComponent.Kind(), &component.Pit{X: p.X, Width: p.Width}); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: pit %d: %w", i, err)
		}
	}

	size := cfg.World.Pickups.CrystalSize
	for i, c := range lvl.Crystals {
		e := ecs.CreateEntity(w)
		if err := addBox(w, e, c.X, c.Y, size, size); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: crystal %d: %w", i, err)
		}
		if err := ecs.Add(w, e, component.CrystalComponent.Kind(), &component.Crystal{}); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: crystal %d: %w", i, err)
		}
	}

	for i, a := range lvl.Allies {
		e := ecs.CreateEntity(w)
		if err := addBox(w, e, a.X, a.Y, cfg.World.Pickups.AllyWidth, cfg.World.Pickups.AllyHeight); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: ally %d: %w", i, err)
		}
		if err := ecs.Add(w, e, component.AllyComponent.Kind(), &component.Ally{Message: a.Message}); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: ally %d: %w", i, err)
		}
	}

	for i, en := range lvl.Enemies {
		if err := addEnemy(w, en, cfg.World.Enemies); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: enemy %d: %w", i, err)
		}
	}

	if lvl.Exit != nil {
		e := ecs.CreateEntity(w)
		if err := addBox(w, e, lvl.Exit.X, lvl.Exit.Y, lvl.Exit.Width, lvl.Exit.Height); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: exit: %w", err)
		}
		if err := ecs.Add(w, e, component.ExitTagComponent.Kind(), &component.ExitTag{}); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: exit: %w", err)
		}
	}

	if lvl.Boss != nil {
		if err := addBoss(w, lvl.Boss, cfg.World.Boss); err != nil {
			return ecs.Entity{}, fmt.Errorf("level: boss: %w", err)
		}
	}

	player, err := NewPlayer(w, cfg)
	if err != nil {
		return ecs.Entity{}, err
	}
	return player, nil
}

// NewPlayer spawns the player at the level start with the carried lives and
// lifetime crystal total. A zero carry starts a fresh run.
func NewPlayer(w *ecs.World, cfg LevelConfig) (ecs.Entity, error) {
	spec := cfg.Player
	lives := cfg.Carry.Lives
	if lives <= 0 {
		lives = spec.StartLives
	}
	if spec.MaxLives > 0 && lives > spec.MaxLives {
		lives = spec.MaxLives
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return ecs.Entity{}, fmt.Errorf("player: add tag: %w", err)
	}
	if err := addBox(w, e, cfg.Level.PlayerStart.X, cfg.Level.PlayerStart.Y, spec.Width, spec.Height); err != nil {
		return ecs.Entity{}, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return ecs.Entity{}, fmt.Errorf("player: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	}); err != nil {
		return ecs.Entity{}, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.LivesComponent.Kind(), &component.Lives{Count: lives, Max: spec.MaxLives}); err != nil {
		return ecs.Entity{}, fmt.Errorf("player: add lives: %w", err)
	}
	if err := ecs.Add(w, e, component.CrystalTallyComponent.Kind(), &component.CrystalTally{Lifetime: cfg.Carry.Lifetime}); err != nil {
		return ecs.Entity{}, fmt.Errorf("player: add tally: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return ecs.Entity{}, fmt.Errorf("player: add input: %w", err)
	}
	return e, nil
}

func addSingletons(w *ecs.World, cfg LevelConfig) error {
	lvl := cfg.Level
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{}); err != nil {
		return fmt.Errorf("level: add clock: %w", err)
	}

	state := &component.LevelState{
		Index:         cfg.Index,
		Name:          lvl.Name,
		CompleteText:  lvl.StoryComplete,
		StartX:        lvl.PlayerStart.X,
		StartY:        lvl.PlayerStart.Y,
		Required:      lvl.RequiredCrystals,
		TotalCrystals: len(lvl.Crystals),
		Allies:        len(lvl.Allies),
		AllyBonusLife: lvl.AllyBonusLife,
		HasExit:       lvl.Exit != nil,
		Final:         cfg.Final,
		AdvanceDelay:  cfg.World.Lifecycle.AdvanceDelay,
		Immunity:      cfg.World.Lifecycle.InvulnerableSeconds,
	}
	if err := ecs.Add(w, e, component.LevelStateComponent.Kind(), state); err != nil {
		return fmt.Errorf("level: add state: %w", err)
	}
	if err := ecs.Add(w, e, component.HUDComponent.Kind(), &component.HUD{Message: lvl.StoryStart}); err != nil {
		return fmt.Errorf("level: add hud: %w", err)
	}
	return nil
}

func addBox(w *ecs.World, e ecs.Entity, x, y, width, height float64) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: width, Height: height}); err != nil {
		return fmt.Errorf("add body: %w", err)
	}
	return nil
}

func addPlatform(w *ecs.World, p levels.Platform) error {
	e := ecs.CreateEntity(w)
	if err := addBox(w, e, p.X, p.Y, p.Width, p.Height); err != nil {
		return err
	}
	axis := component.AxisX
	if p.Axis == string(component.AxisY) {
		axis = component.AxisY
	}
	return ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{
		Moving: p.Moving,
		Axis:   axis,
		Range:  p.Range,
		Speed:  p.Speed,
		Dir:    1,
	})
}

func addEnemy(w *ecs.World, en levels.Enemy, speeds prefabs.EnemySpec) error {
	e := ecs.CreateEntity(w)
	enemy := &component.Enemy{
		Kind:  component.EnemyKind(en.Kind),
		Dir:   en.Dir,
		Speed: speeds.Speed(en.Kind),
	}
	if enemy.Dir == 0 {
		enemy.Dir = 1
	}
	x := en.X
	if en.Range != nil {
		enemy.Patrol = true
		enemy.Min = en.Range[0]
		enemy.Max = en.Range[1]
		x = cp.Clamp(x, enemy.Min, enemy.Max)
	}
	if err := addBox(w, e, x, en.Y, en.Width, en.Height); err != nil {
		return err
	}
	return ecs.Add(w, e, component.EnemyComponent.Kind(), enemy)
}

func addBoss(w *ecs.World, b *levels.Boss, spec prefabs.BossSpec) error {
	e := ecs.CreateEntity(w)
	if err := addBox(w, e, b.X, b.Y, b.Width, b.Height); err != nil {
		return err
	}
	return ecs.Add(w, e, component.BossComponent.Kind(), &component.Boss{
		Health:     b.Health,
		FireRate:   b.FireRate,
		MeleeRange: spec.MeleeRange,
		Script:     b.Script,
	})
}
