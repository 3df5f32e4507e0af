package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// EnemySystem moves patrolling enemies and applies contact damage. Contact
// costs a life on every step the overlap persists.
type EnemySystem struct{}

func NewEnemySystem() *EnemySystem {
	return &EnemySystem{}
}

func (s *EnemySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := stepDT(w)
	p, hasPlayer := findPlayer(w)

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, en *component.Enemy, t *component.Transform, b *component.Body) {
		if en.Patrol {
			t.X += en.Dir * en.Speed * dt
			if t.X < en.Min || t.X > en.Max {
				en.Dir = -en.Dir
				t.X = cp.Clamp(t.X, en.Min, en.Max)
			}
		}

		if hasPlayer && p.rect().Intersects(boxRect(t, b)) {
			loseLife(w, common.ReasonEnemy)
		}
	})
}
