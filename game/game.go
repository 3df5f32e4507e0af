package game

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/ecs/entity"
	"github.com/milk9111/dragonlair/ecs/system"
	"github.com/milk9111/dragonlair/input"
	"github.com/milk9111/dragonlair/levels"
	"github.com/milk9111/dragonlair/prefabs"
	"github.com/milk9111/dragonlair/progress"
)

// Options are the collaborators of a Game. A nil Store keeps progress in
// memory.
type Options struct {
	Catalog levels.Catalog
	World   prefabs.WorldSpec
	Player  prefabs.PlayerSpec
	Store   progress.Store
}

// LoadOptions reads the level catalog and tuning specs, preferring on-disk
// copies over the embedded ones.
func LoadOptions() (Options, error) {
	catalog, err := levels.LoadCatalog()
	if err != nil {
		return Options{}, fmt.Errorf("game: %w", err)
	}
	ws, err := prefabs.LoadWorldSpec()
	if err != nil {
		return Options{}, fmt.Errorf("game: %w", err)
	}
	ps, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return Options{}, fmt.Errorf("game: %w", err)
	}
	return Options{Catalog: catalog, World: ws, Player: ps}, nil
}

// Game owns the world of the level attempt in progress and drives the
// lifecycle between attempts: life loss, level completion, advancing and game
// over.
type Game struct {
	catalog levels.Catalog
	world   prefabs.WorldSpec
	player  prefabs.PlayerSpec
	store   progress.Store

	pipeline *system.Pipeline
	w        *ecs.World
	hero     ecs.Entity
	index    int

	accumulator float64
	loads       int

	observer StepObserver
}

// StepObserver sees the dt and held input of every simulated step, before
// the step runs.
type StepObserver interface {
	ObserveStep(dt float64, flags input.Flags)
}

// StartObserver is told about levels started from outside a step, such as a
// menu restart. Observers that implement it see these alongside the steps.
type StartObserver interface {
	ObserveStart(index int)
}

// New creates a game positioned on the highest unlocked level with a fresh
// player, the way the title screen opens.
func New(opts Options) (*Game, error) {
	if len(opts.Catalog) == 0 {
		return nil, fmt.Errorf("game: empty level catalog")
	}
	if opts.Store == nil {
		opts.Store = progress.NewMemoryStore()
	}
	g := &Game{
		catalog:  opts.Catalog,
		world:    opts.World,
		player:   opts.Player,
		store:    opts.Store,
		pipeline: system.NewPipeline(opts.World),
	}
	if err := g.Start(g.store.Load().Level); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGame wipes saved progress and starts level 0 with a fresh player.
func (g *Game) NewGame() error {
	g.save(progress.Record{})
	return g.Start(0)
}

// Continue starts the highest unlocked level with a fresh player.
func (g *Game) Continue() error {
	return g.Start(g.store.Load().Level)
}

// CanContinue reports whether any progress has been saved.
func (g *Game) CanContinue() bool {
	return !g.store.Load().Fresh()
}

// Start loads the level at index, clamped into the catalog, with a fresh
// player.
func (g *Game) Start(index int) error {
	if err := g.load(g.catalog.Clamp(index), entity.Carry{}); err != nil {
		return err
	}
	if so, ok := g.observer.(StartObserver); ok {
		so.ObserveStart(g.index)
	}
	return nil
}

func (g *Game) load(index int, carry entity.Carry) error {
	w := ecs.NewWorld()
	hero, err := entity.LoadLevelToWorld(w, entity.LevelConfig{
		Index:  index,
		Final:  index == g.catalog.LastIndex(),
		Level:  g.catalog[index],
		World:  g.world,
		Player: g.player,
		Carry:  carry,
	})
	if err != nil {
		return fmt.Errorf("game: load level %d: %w", index, err)
	}
	g.w = w
	g.hero = hero
	g.index = index
	g.accumulator = 0
	g.loads++
	return nil
}

// Reload swaps in new specs and levels, then restarts the current level
// keeping the player's lives and crystal total.
func (g *Game) Reload(opts Options) error {
	if len(opts.Catalog) == 0 {
		return fmt.Errorf("game: empty level catalog")
	}
	carry := g.carry()
	g.catalog = opts.Catalog
	g.world = opts.World
	g.player = opts.Player
	g.pipeline = system.NewPipeline(opts.World)
	return g.load(g.catalog.Clamp(g.index), carry)
}

// ReloadScripts drops the compiled volley scripts so the next volley reads
// them again. The level in progress is left alone.
func (g *Game) ReloadScripts() {
	g.pipeline.Boss.ResetScripts()
}

// Advance feeds one frame of elapsed wall time into the simulation. In
// variable mode it is a single step; in fixed mode the time is accumulated and
// consumed in fixed steps, at most MaxSubsteps per call. When the cap is hit
// the whole steps still owed are dropped and only the fraction is carried.
func (g *Game) Advance(elapsed float64, state *input.State) []ecs.Event {
	ts := g.world.Timestep
	if ts.Mode != prefabs.TimestepFixed {
		return g.Step(elapsed, state)
	}

	step := ts.FixedDT()
	limit := ts.MaxSubsteps
	if limit <= 0 {
		limit = 8
	}

	g.accumulator += elapsed
	var events []ecs.Event
	n := 0
	for g.accumulator >= step && n < limit {
		loads := g.loads
		events = append(events, g.Step(step, state)...)
		if g.loads != loads {
			// A new level starts with an empty accumulator.
			return events
		}
		g.accumulator -= step
		n++
	}
	if n == limit && g.accumulator >= step {
		g.accumulator = math.Mod(g.accumulator, step)
	}
	return events
}

// Step simulates dt seconds and applies the lifecycle events raised by it.
// The returned events are for presentation (sound, effects).
func (g *Game) Step(dt float64, state *input.State) []ecs.Event {
	if g.observer != nil {
		g.observer.ObserveStep(dt, state.Flags())
	}
	events := g.pipeline.Step(g.w, dt, state)
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventLevelCompleted:
			g.onCompleted()
		case ecs.EventLevelAdvance:
			next, _ := evt.Data.(ecs.LevelAdvance)
			if err := g.load(g.catalog.Clamp(next.Next), g.carry()); err != nil {
				log.Printf("game: advance: %v", err)
			}
			return events
		case ecs.EventGameOver:
			g.onGameOver()
			return events
		}
	}
	return events
}

func (g *Game) onCompleted() {
	rec := g.store.Load().Complete(g.index, g.catalog.LastIndex(), g.carry().Lifetime)
	g.save(rec)
}

func (g *Game) onGameOver() {
	status, tone := "", component.ToneNone
	if h, ok := g.hud(); ok {
		status, tone = h.Status, h.Tone
	}

	g.save(progress.Record{})
	if err := g.load(0, entity.Carry{}); err != nil {
		log.Printf("game: restart: %v", err)
		return
	}
	if h, ok := g.hud(); ok {
		h.Status = status
		h.Tone = tone
	}
}

func (g *Game) save(rec progress.Record) {
	if err := g.store.Save(rec); err != nil {
		log.Printf("game: %v", err)
	}
}

func (g *Game) carry() entity.Carry {
	var c entity.Carry
	if lives, ok := ecs.Get(g.w, g.hero, component.LivesComponent.Kind()); ok {
		c.Lives = lives.Count
	}
	if tally, ok := ecs.Get(g.w, g.hero, component.CrystalTallyComponent.Kind()); ok {
		c.Lifetime = tally.Lifetime
	}
	return c
}

func (g *Game) hud() (*component.HUD, bool) {
	e, ok := ecs.First(g.w, component.HUDComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(g.w, e, component.HUDComponent.Kind())
}

// Observe installs o to see every following step. Nil removes the observer.
func (g *Game) Observe(o StepObserver) {
	g.observer = o
}

// World exposes the live world, mainly for tests and debug tooling.
func (g *Game) World() *ecs.World {
	return g.w
}

// Player is the player entity of the current world.
func (g *Game) Player() ecs.Entity {
	return g.hero
}

func (g *Game) LevelIndex() int {
	return g.index
}

func (g *Game) LevelCount() int {
	return len(g.catalog)
}

func (g *Game) Progress() progress.Record {
	return g.store.Load()
}

// Timestep reports the configured step strategy.
func (g *Game) Timestep() prefabs.TimestepSpec {
	return g.world.Timestep
}

// SetTimestepMode overrides the step strategy from world.yaml.
func (g *Game) SetTimestepMode(mode prefabs.TimestepMode) {
	g.world.Timestep.Mode = mode
	g.accumulator = 0
}
