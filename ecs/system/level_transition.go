package system

import (
	"github.com/milk9111/dragonlair/ecs"
)

// LevelTransitionSystem counts the completion banner down and then asks the
// owner of the world to load the next level. The final level never advances.
type LevelTransitionSystem struct{}

func NewLevelTransitionSystem() *LevelTransitionSystem {
	return &LevelTransitionSystem{}
}

func (s *LevelTransitionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	lvl, ok := levelState(w)
	if !ok || !lvl.Completed || lvl.Final || lvl.Advanced {
		return
	}

	lvl.AdvanceTimer -= stepDT(w)
	if lvl.AdvanceTimer > 0 {
		return
	}
	lvl.Advanced = true
	w.Events().Push(ecs.Event{Type: ecs.EventLevelAdvance, Data: ecs.LevelAdvance{Next: lvl.Index + 1}})
}
