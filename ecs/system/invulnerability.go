package system

import (
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// InvulnerabilitySystem counts immunity timers down and removes them once
// they run out.
type InvulnerabilitySystem struct{}

func NewInvulnerabilitySystem() *InvulnerabilitySystem {
	return &InvulnerabilitySystem{}
}

func (s *InvulnerabilitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := stepDT(w)
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Seconds -= dt
		if inv.Seconds <= 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})
}
