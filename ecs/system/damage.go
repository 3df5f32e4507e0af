package system

import (
	"fmt"
	"log"

	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
)

// GameOverText is the status banner shown when the last life is lost.
const GameOverText = "Game over. Start again!"

// loseLife costs the player one life and returns it to the level start. When
// the last life goes it raises EventGameOver instead; the owner of the world
// restarts the run. Damage is ignored while the player is invulnerable or
// already out of lives.
func loseLife(w *ecs.World, reason string) bool {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}
	lives, ok := ecs.Get(w, player, component.LivesComponent.Kind())
	if !ok || lives.Count <= 0 {
		return false
	}
	if ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		return false
	}

	lives.Count--
	h, hasHUD := hud(w)
	if hasHUD {
		h.Message = fmt.Sprintf("%s. Lives left: %d", reason, lives.Count)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventLifeLost, Data: ecs.LifeLost{Reason: reason, Lives: lives.Count}})

	if lives.Count <= 0 {
		if hasHUD {
			h.Status = GameOverText
			h.Tone = component.ToneBad
		}
		w.Events().Push(ecs.Event{Type: ecs.EventGameOver})
		return true
	}

	lvl, ok := levelState(w)
	if ok {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			t.X = lvl.StartX
			t.Y = lvl.StartY
		}
		if lvl.Immunity > 0 {
			if err := ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Seconds: lvl.Immunity}); err != nil {
				log.Printf("damage: %v", err)
			}
		}
	}
	if v, ok := ecs.Get(w, player, component.VelocityComponent.Kind()); ok {
		v.X = 0
		v.Y = 0
	}
	return true
}

// completeLevel marks the level attempt completed once and starts the
// advance timer.
func completeLevel(w *ecs.World) bool {
	lvl, ok := levelState(w)
	if !ok || lvl.Completed {
		return false
	}
	lvl.Completed = true
	lvl.AdvanceTimer = lvl.AdvanceDelay

	if h, ok := hud(w); ok {
		h.Status = lvl.CompleteText
		h.Tone = component.ToneGood
	}
	w.Events().Push(ecs.Event{Type: ecs.EventLevelCompleted, Data: ecs.LevelCompleted{Index: lvl.Index}})
	return true
}
