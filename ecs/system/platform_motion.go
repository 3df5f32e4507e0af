package system

import (
	"math"

	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// PlatformMotionSystem oscillates moving platforms around their authored
// origin. The direction flips once the accumulated offset passes the range,
// and the move of that same step already uses the new direction, so a
// platform overshoots by at most one step.
type PlatformMotionSystem struct{}

func NewPlatformMotionSystem() *PlatformMotionSystem {
	return &PlatformMotionSystem{}
}

func (s *PlatformMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := stepDT(w)
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Platform, t *component.Transform) {
		if !p.Moving {
			return
		}
		if p.Dir == 0 {
			p.Dir = 1
		}

		p.Offset += p.Speed * dt * p.Dir
		if math.Abs(p.Offset) > p.Range {
			p.Dir = -p.Dir
		}

		step := p.Speed * dt * p.Dir
		if p.Axis == component.AxisY {
			t.Y += step
		} else {
			t.X += step
		}
	})
}
