package system

import (
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// AllySystem rescues allies on first contact. On levels flagged for it a
// rescue also grants a life, never beyond the cap.
type AllySystem struct{}

func NewAllySystem() *AllySystem {
	return &AllySystem{}
}

func (s *AllySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	p, ok := findPlayer(w)
	if !ok {
		return
	}
	lvl, _ := levelState(w)

	ecs.ForEach3(w, component.AllyComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, a *component.Ally, t *component.Transform, b *component.Body) {
		if a.Rescued || !p.rect().Intersects(boxRect(t, b)) {
			return
		}
		a.Rescued = true

		if lvl != nil && lvl.AllyBonusLife {
			if lives, ok := ecs.Get(w, p.entity, component.LivesComponent.Kind()); ok && lives.Count < lives.Max {
				lives.Count++
			}
		}
		if h, ok := hud(w); ok {
			h.Message = a.Message
		}
		w.Events().Push(ecs.Event{Type: ecs.EventAllyRescued})
	})
}
