package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/prefabs"
)

// FireballSystem moves every fireball first and then tests all of them
// against the player. Fireballs that leave the field by more than the margin
// or outlive their lifetime are destroyed.
type FireballSystem struct {
	margin float64
}

func NewFireballSystem(spec prefabs.WorldSpec) *FireballSystem {
	return &FireballSystem{margin: spec.Boss.FireballMargin}
}

func (s *FireballSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := stepDT(w)
	ecs.ForEach3(w, component.FireballComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, fb *component.Fireball, t *component.Transform, v *component.Velocity) {
		pos := cp.Vector{X: t.X, Y: t.Y}.Add(cp.Vector{X: v.X, Y: v.Y}.Mult(dt))
		t.X, t.Y = pos.X, pos.Y
		v.Y += fb.Gravity * dt
		fb.Age += dt

		if s.expired(fb, t) {
			ecs.DestroyEntity(w, e)
		}
	})

	p, ok := findPlayer(w)
	if !ok {
		return
	}
	ecs.ForEach3(w, component.FireballComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, _ *component.Fireball, t *component.Transform, b *component.Body) {
		if p.rect().Intersects(boxRect(t, b)) {
			loseLife(w, common.ReasonDragon)
		}
	})
}

func (s *FireballSystem) expired(fb *component.Fireball, t *component.Transform) bool {
	if fb.Lifetime > 0 && fb.Age >= fb.Lifetime {
		return true
	}
	return t.X < -s.margin ||
		t.X > common.FieldWidth+s.margin ||
		t.Y < -s.margin ||
		t.Y > common.FieldHeight+s.margin
}
