package system

import (
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/input"
	"github.com/milk9111/dragonlair/prefabs"
)

// Pipeline is the simulation step: input capture followed by every gameplay
// system in resolution order.
type Pipeline struct {
	Input *InputSystem
	Boss  *BossSystem

	scheduler *ecs.Scheduler
}

func NewPipeline(spec prefabs.WorldSpec) *Pipeline {
	p := &Pipeline{
		Input: NewInputSystem(),
		Boss:  NewBossSystem(spec),
	}
	p.scheduler = ecs.NewScheduler(
		p.Input,
		NewInvulnerabilitySystem(),
		NewPlatformMotionSystem(),
		NewPhysicsSystem(spec),
		NewPitSystem(spec),
		NewEnemySystem(),
		NewCrystalSystem(),
		NewAllySystem(),
		NewExitSystem(),
		p.Boss,
		NewFireballSystem(spec),
		NewMeleeSystem(),
		NewLevelTransitionSystem(),
	)
	return p
}

// Step advances the clock by dt, runs one simulation step with state as the
// held input and returns the events it raised.
func (p *Pipeline) Step(w *ecs.World, dt float64, state *input.State) []ecs.Event {
	if p == nil || w == nil {
		return nil
	}
	tickClock(w, dt)
	p.Input.Bind(state)
	p.scheduler.Update(w)
	p.Input.Commit(w)
	p.Input.Bind(nil)
	return w.Events().Drain()
}

func (p *Pipeline) Systems() []ecs.System {
	return p.scheduler.Systems()
}
