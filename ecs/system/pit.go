package system

import (
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/prefabs"
)

// PitSystem costs a life when the player stands over a pit at ground level.
// Only the first matching pit counts in a step.
type PitSystem struct {
	groundY float64
}

func NewPitSystem(spec prefabs.WorldSpec) *PitSystem {
	return &PitSystem{groundY: spec.Field.GroundY}
}

func (s *PitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	p, ok := findPlayer(w)
	if !ok {
		return
	}

	hit := false
	ecs.ForEach(w, component.PitComponent.Kind(), func(_ ecs.Entity, pit *component.Pit) {
		if hit {
			return
		}
		r := p.rect()
		if r.Right() > pit.X && r.X < pit.X+pit.Width && r.Bottom() >= s.groundY {
			hit = true
		}
	})
	if hit {
		loseLife(w, common.ReasonPit)
	}
}
