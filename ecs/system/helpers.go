package system

import (
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// stepDT returns the duration of the step being simulated.
func stepDT(w *ecs.World) float64 {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	clock, ok := ecs.Get(w, e, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	return clock.DT
}

func tickClock(w *ecs.World, dt float64) {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return
	}
	if clock, ok := ecs.Get(w, e, component.ClockComponent.Kind()); ok {
		clock.DT = dt
		clock.Elapsed += dt
		clock.Tick++
	}
}

func levelState(w *ecs.World) (*component.LevelState, bool) {
	e, ok := ecs.First(w, component.LevelStateComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelStateComponent.Kind())
}

func hud(w *ecs.World) (*component.HUD, bool) {
	e, ok := ecs.First(w, component.HUDComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.HUDComponent.Kind())
}

type playerRef struct {
	entity    ecs.Entity
	transform *component.Transform
	body      *component.Body
}

// rect reads the live transform, so it reflects resets made by earlier
// callers in the same system.
func (p playerRef) rect() common.Rect {
	return boxRect(p.transform, p.body)
}

func findPlayer(w *ecs.World) (playerRef, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return playerRef{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return playerRef{}, false
	}
	b, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return playerRef{}, false
	}
	return playerRef{entity: e, transform: t, body: b}, true
}

func boxRect(t *component.Transform, b *component.Body) common.Rect {
	return common.Rect{X: t.X, Y: t.Y, Width: b.Width, Height: b.Height}
}

// liveBoss reports whether the level still has an undefeated boss.
func liveBoss(w *ecs.World) bool {
	alive := false
	ecs.ForEach(w, component.BossComponent.Kind(), func(_ ecs.Entity, b *component.Boss) {
		if !b.Defeated {
			alive = true
		}
	})
	return alive
}
