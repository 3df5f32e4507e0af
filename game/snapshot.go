package game

import (
	"fmt"
	"strings"

	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// Snapshot is the renderable view of one instant. It holds copies, so
// presentation code can keep it across steps.
type Snapshot struct {
	Level     int            `json:"level"`
	Player    common.Rect    `json:"player"`
	Platforms []PlatformView `json:"platforms"`
	Crystals  []common.Rect  `json:"crystals"`
	Allies    []common.Rect  `json:"allies"`
	Enemies   []EnemyView    `json:"enemies"`
	Pits      []PitView      `json:"pits"`
	Exit      *common.Rect   `json:"exit,omitempty"`
	Boss      *BossView      `json:"boss,omitempty"`
	Fireballs []common.Rect  `json:"fireballs"`
	HUD       HUDView        `json:"hud"`
}

type PlatformView struct {
	Rect   common.Rect `json:"rect"`
	Moving bool        `json:"moving"`
}

type EnemyView struct {
	Rect common.Rect `json:"rect"`
	Kind string      `json:"kind"`
}

type PitView struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

type BossView struct {
	Rect     common.Rect `json:"rect"`
	Health   int         `json:"health"`
	Defeated bool        `json:"defeated"`
}

// HUDView is the text shown around the field.
type HUDView struct {
	Level    string               `json:"level"`
	Crystals string               `json:"crystals"`
	Lives    int                  `json:"lives"`
	Hearts   string               `json:"hearts"`
	Message  string               `json:"message"`
	Status   string               `json:"status"`
	Tone     component.StatusTone `json:"tone"`
	Progress string               `json:"progress"`
}

const heart = "♥"

// Snapshot captures the current world for drawing.
func (g *Game) Snapshot() Snapshot {
	w := g.w
	s := Snapshot{Level: g.index}

	if t, ok := ecs.Get(w, g.hero, component.TransformComponent.Kind()); ok {
		if b, ok := ecs.Get(w, g.hero, component.BodyComponent.Kind()); ok {
			s.Player = rectOf(t, b)
		}
	}

	ecs.ForEach3(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, p *component.Platform, t *component.Transform, b *component.Body) {
		s.Platforms = append(s.Platforms, PlatformView{Rect: rectOf(t, b), Moving: p.Moving})
	})
	ecs.ForEach3(w, component.CrystalComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, c *component.Crystal, t *component.Transform, b *component.Body) {
		if !c.Collected {
			s.Crystals = append(s.Crystals, rectOf(t, b))
		}
	})
	ecs.ForEach3(w, component.AllyComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, a *component.Ally, t *component.Transform, b *component.Body) {
		if !a.Rescued {
			s.Allies = append(s.Allies, rectOf(t, b))
		}
	})
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, en *component.Enemy, t *component.Transform, b *component.Body) {
		s.Enemies = append(s.Enemies, EnemyView{Rect: rectOf(t, b), Kind: string(en.Kind)})
	})
	ecs.ForEach(w, component.PitComponent.Kind(), func(_ ecs.Entity, p *component.Pit) {
		s.Pits = append(s.Pits, PitView{X: p.X, Width: p.Width})
	})
	ecs.ForEach3(w, component.ExitTagComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, _ *component.ExitTag, t *component.Transform, b *component.Body) {
		r := rectOf(t, b)
		s.Exit = &r
	})
	ecs.ForEach3(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, boss *component.Boss, t *component.Transform, b *component.Body) {
		s.Boss = &BossView{Rect: rectOf(t, b), Health: boss.Health, Defeated: boss.Defeated}
	})
	ecs.ForEach3(w, component.FireballComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, _ *component.Fireball, t *component.Transform, b *component.Body) {
		s.Fireballs = append(s.Fireballs, rectOf(t, b))
	})

	s.HUD = g.hudView()
	return s
}

func (g *Game) hudView() HUDView {
	var v HUDView
	w := g.w

	if e, ok := ecs.First(w, component.LevelStateComponent.Kind()); ok {
		if st, ok := ecs.Get(w, e, component.LevelStateComponent.Kind()); ok {
			v.Level = fmt.Sprintf("%d. %s", st.Index+1, st.Name)
			collected := 0
			if tally, ok := ecs.Get(w, g.hero, component.CrystalTallyComponent.Kind()); ok {
				collected = tally.Collected
			}
			v.Crystals = fmt.Sprintf("%d/%d", collected, st.TotalCrystals)
		}
	}
	if lives, ok := ecs.Get(w, g.hero, component.LivesComponent.Kind()); ok {
		v.Lives = lives.Count
		v.Hearts = strings.Repeat(heart, max(lives.Count, 0))
	}
	if h, ok := g.hud(); ok {
		v.Message = h.Message
		v.Status = h.Status
		v.Tone = h.Tone
	}
	v.Progress = g.ProgressText()
	return v
}

// ProgressText is the title screen summary of the saved record.
func (g *Game) ProgressText() string {
	rec := g.store.Load()
	unlocked := min(rec.Level+1, len(g.catalog))
	return fmt.Sprintf("Unlocked level: %d/%d, best crystals: %d", unlocked, len(g.catalog), rec.BestCrystals)
}

func rectOf(t *component.Transform, b *component.Body) common.Rect {
	return common.Rect{X: t.X, Y: t.Y, Width: b.Width, Height: b.Height}
}
