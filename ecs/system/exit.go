package system

import (
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// ExitSystem completes levels without a live boss. With an exit the player
// must reach it holding the required crystals; without one every ally must
// be rescued.
type ExitSystem struct{}

func NewExitSystem() *ExitSystem {
	return &ExitSystem{}
}

func (s *ExitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	lvl, ok := levelState(w)
	if !ok || lvl.Completed || liveBoss(w) {
		return
	}

	p, ok := findPlayer(w)
	if !ok {
		return
	}

	if lvl.HasExit {
		tally, ok := ecs.Get(w, p.entity, component.CrystalTallyComponent.Kind())
		if !ok || tally.Collected < lvl.Required {
			return
		}
		reached := false
		ecs.ForEach3(w, component.ExitTagComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, _ *component.ExitTag, t *component.Transform, b *component.Body) {
			if p.rect().Intersects(boxRect(t, b)) {
				reached = true
			}
		})
		if reached {
			completeLevel(w)
		}
		return
	}

	if lvl.Allies == 0 {
		return
	}
	rescued := 0
	ecs.ForEach(w, component.AllyComponent.Kind(), func(_ ecs.Entity, a *component.Ally) {
		if a.Rescued {
			rescued++
		}
	})
	if rescued == lvl.Allies {
		completeLevel(w)
	}
}
