package system

import (
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

type CrystalSystem struct{}

func NewCrystalSystem() *CrystalSystem {
	return &CrystalSystem{}
}

func (s *CrystalSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	p, ok := findPlayer(w)
	if !ok {
		return
	}
	tally, ok := ecs.Get(w, p.entity, component.CrystalTallyComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach3(w, component.CrystalComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, c *component.Crystal, t *component.Transform, b *component.Body) {
		if c.Collected || !p.rect().Intersects(boxRect(t, b)) {
			return
		}
		c.Collected = true
		tally.Collected++
		tally.Lifetime++
		w.Events().Push(ecs.Event{Type: ecs.EventCrystalCollected})
	})
}
