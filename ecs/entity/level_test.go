package entity

import (
	"testing"

	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/levels"
	"github.com/milk9111/dragonlair/prefabs"
)

func loadConfig(t *testing.T, index int, carry Carry) LevelConfig {
	t.Helper()
	catalog, err := levels.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	ws, err := prefabs.LoadWorldSpec()
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	ps, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	return LevelConfig{
		Index:  index,
		Final:  index == catalog.LastIndex(),
		Level:  catalog[index],
		World:  ws,
		Player: ps,
		Carry:  carry,
	}
}

func count[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(ecs.Entity, *T) { n++ })
	return n
}

func TestLoadLevelToWorld(t *testing.T) {
	cfg := loadConfig(t, 1, Carry{Lives: 2, Lifetime: 4})
	w := ecs.NewWorld()
	player, err := LoadLevelToWorld(w, cfg)
	if err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}

	if got := count(w, component.CrystalComponent.Kind()); got != 11 {
		t.Fatalf("expected 11 crystals, got %d", got)
	}
	if got := count(w, component.PlatformComponent.Kind()); got != len(cfg.Level.Platforms) {
		t.Fatalf("expected %d platforms, got %d", len(cfg.Level.Platforms), got)
	}
	if got := count(w, component.ExitTagComponent.Kind()); got != 1 {
		t.Fatalf("expected one exit, got %d", got)
	}
	if got := count(w, component.BossComponent.Kind()); got != 0 {
		t.Fatalf("expected no boss, got %d", got)
	}

	e, ok := ecs.First(w, component.LevelStateComponent.Kind())
	if !ok {
		t.Fatalf("missing level state")
	}
	st, _ := ecs.Get(w, e, component.LevelStateComponent.Kind())
	if st.Index != 1 || st.Required != 10 || st.TotalCrystals != 11 || !st.HasExit || !st.AllyBonusLife || st.Final {
		t.Fatalf("unexpected level state %+v", *st)
	}
	h, _ := ecs.Get(w, e, component.HUDComponent.Kind())
	if h.Message != cfg.Level.StoryStart {
		t.Fatalf("expected start story, got %q", h.Message)
	}

	lives, _ := ecs.Get(w, player, component.LivesComponent.Kind())
	tally, _ := ecs.Get(w, player, component.CrystalTallyComponent.Kind())
	if lives.Count != 2 || lives.Max != 5 || tally.Lifetime != 4 || tally.Collected != 0 {
		t.Fatalf("carry not applied: lives=%+v tally=%+v", *lives, *tally)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.X != cfg.Level.PlayerStart.X || tr.Y != cfg.Level.PlayerStart.Y {
		t.Fatalf("player not at start: %+v", *tr)
	}
}

func TestNewPlayerLives(t *testing.T) {
	cases := []struct {
		name  string
		carry int
		want  int
	}{
		{"fresh run", 0, 3},
		{"carried", 4, 4},
		{"capped", 9, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player, err := NewPlayer(w, loadConfig(t, 0, Carry{Lives: tc.carry}))
			if err != nil {
				t.Fatalf("NewPlayer: %v", err)
			}
			lives, _ := ecs.Get(w, player, component.LivesComponent.Kind())
			if lives.Count != tc.want {
				t.Fatalf("expected %d lives, got %d", tc.want, lives.Count)
			}
		})
	}
}

func TestEnemySpawn(t *testing.T) {
	cfg := loadConfig(t, 2, Carry{})
	w := ecs.NewWorld()
	if _, err := LoadLevelToWorld(w, cfg); err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}

	var speeds []float64
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(_ ecs.Entity, en *component.Enemy) {
		if !en.Patrol {
			t.Fatalf("authored enemies patrol")
		}
		speeds = append(speeds, en.Speed)
	})
	want := []float64{110, 50, 50}
	if len(speeds) != len(want) {
		t.Fatalf("expected %d enemies, got %d", len(want), len(speeds))
	}
	for i := range want {
		if speeds[i] != want[i] {
			t.Fatalf("enemy %d: expected speed %v, got %v", i, want[i], speeds[i])
		}
	}
}

func TestLoadLevelToWorldNil(t *testing.T) {
	cases := []struct {
		name string
		w    *ecs.World
		cfg  LevelConfig
	}{
		{"missing_level", ecs.NewWorld(), LevelConfig{}},
		{"nil_world", nil, loadConfig(t, 0, Carry{})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := LoadLevelToWorld(tc.w, tc.cfg)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if e.Valid() {
				t.Fatalf("failed load should return the zero entity, got %v", e)
			}
		})
	}
}
