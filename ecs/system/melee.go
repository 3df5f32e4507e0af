package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// MeleeSystem lets a held attack strike the boss when the player's corner is
// within melee range of the boss corner. A landed strike consumes the attack,
// so each hit needs a fresh press.
type MeleeSystem struct{}

func NewMeleeSystem() *MeleeSystem {
	return &MeleeSystem{}
}

func (s *MeleeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	p, ok := findPlayer(w)
	if !ok {
		return
	}
	in, ok := ecs.Get(w, p.entity, component.InputComponent.Kind())
	if !ok || !in.Attack || in.AttackConsumed {
		return
	}
	at := cp.Vector{X: p.transform.X, Y: p.transform.Y}

	ecs.ForEach2(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Boss, t *component.Transform) {
		if b.Defeated || in.AttackConsumed {
			return
		}
		if at.Distance(cp.Vector{X: t.X, Y: t.Y}) >= b.MeleeRange {
			return
		}

		b.Health--
		in.Attack = false
		in.AttackConsumed = true
		if h, ok := hud(w); ok {
			h.Message = fmt.Sprintf("Dragon hit! Health left: %d", b.Health)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventBossHit, Data: ecs.BossHit{Health: b.Health}})

		if b.Health <= 0 {
			b.Defeated = true
			completeLevel(w)
		}
	})
}
