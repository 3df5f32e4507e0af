package system

import (
	"math"
	"testing"

	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/ecs/entity"
	"github.com/milk9111/dragonlair/input"
	"github.com/milk9111/dragonlair/levels"
	"github.com/milk9111/dragonlair/prefabs"
)

const eps = 1e-9

func testWorldSpec(t *testing.T) prefabs.WorldSpec {
	t.Helper()
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	return spec
}

func buildWorld(t *testing.T, lvl *levels.Level, final bool, carry entity.Carry) (*ecs.World, ecs.Entity) {
	t.Helper()
	ps, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	w := ecs.NewWorld()
	player, err := entity.LoadLevelToWorld(w, entity.LevelConfig{
		Level:  lvl,
		Final:  final,
		World:  testWorldSpec(t),
		Player: ps,
		Carry:  carry,
	})
	if err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}
	return w, player
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v missing component", e)
	}
	return v
}

func ground() levels.Platform {
	return levels.Platform{X: 0, Y: 560, Width: 900, Height: 40}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func countEvents(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func TestPhysicsGravityAndLanding(t *testing.T) {
	spec := testWorldSpec(t)
	phys := NewPhysicsSystem(spec)

	t.Run("free fall", func(t *testing.T) {
		w, player := buildWorld(t, &levels.Level{PlayerStart: levels.Point{X: 100, Y: 100}}, false, entity.Carry{})
		tickClock(w, 0.01)
		phys.Update(w)

		vel := mustGet(t, w, player, component.VelocityComponent.Kind())
		tr := mustGet(t, w, player, component.TransformComponent.Kind())
		if !near(vel.Y, 14) {
			t.Fatalf("expected vy 14, got %v", vel.Y)
		}
		if !near(tr.Y, 100.14) {
			t.Fatalf("expected y 100.14, got %v", tr.Y)
		}
	})

	t.Run("lands on ground", func(t *testing.T) {
		lvl := &levels.Level{PlayerStart: levels.Point{X: 100, Y: 518}, Platforms: []levels.Platform{ground()}}
		w, player := buildWorld(t, lvl, false, entity.Carry{})
		tickClock(w, 0.016)
		phys.Update(w)

		tr := mustGet(t, w, player, component.TransformComponent.Kind())
		vel := mustGet(t, w, player, component.VelocityComponent.Kind())
		ctrl := mustGet(t, w, player, component.PlayerComponent.Kind())
		if tr.Y != 518 || vel.Y != 0 || !ctrl.Grounded {
			t.Fatalf("expected snap to 518 grounded, got y=%v vy=%v grounded=%v", tr.Y, vel.Y, ctrl.Grounded)
		}
	})

	t.Run("passes up through platform", func(t *testing.T) {
		lvl := &levels.Level{
			PlayerStart: levels.Point{X: 100, Y: 480},
			Platforms:   []levels.Platform{{X: 50, Y: 470, Width: 200, Height: 16}},
		}
		w, player := buildWorld(t, lvl, false, entity.Carry{})
		mustGet(t, w, player, component.VelocityComponent.Kind()).Y = -500
		tickClock(w, 0.016)
		phys.Update(w)

		if mustGet(t, w, player, component.PlayerComponent.Kind()).Grounded {
			t.Fatalf("rising player must not land")
		}
	})

	t.Run("jump and cancelled movement", func(t *testing.T) {
		lvl := &levels.Level{PlayerStart: levels.Point{X: 100, Y: 518}, Platforms: []levels.Platform{ground()}}
		w, player := buildWorld(t, lvl, false, entity.Carry{})
		in := mustGet(t, w, player, component.InputComponent.Kind())
		in.Jump = true
		in.Left = true
		in.Right = true
		tickClock(w, 0.016)
		phys.Update(w)

		vel := mustGet(t, w, player, component.VelocityComponent.Kind())
		if vel.Y != -560 {
			t.Fatalf("expected jump velocity -560, got %v", vel.Y)
		}
		if vel.X != 0 {
			t.Fatalf("left and right should cancel, got vx %v", vel.X)
		}
		if mustGet(t, w, player, component.PlayerComponent.Kind()).Grounded {
			t.Fatalf("jump should clear grounded")
		}
	})

	t.Run("jump while airborne is ignored", func(t *testing.T) {
		w, player := buildWorld(t, &levels.Level{PlayerStart: levels.Point{X: 100, Y: 100}}, false, entity.Carry{})
		vel := mustGet(t, w, player, component.VelocityComponent.Kind())
		vel.Y = 100
		mustGet(t, w, player, component.InputComponent.Kind()).Jump = true
		tickClock(w, 0.01)
		phys.Update(w)

		if !near(vel.Y, 114) {
			t.Fatalf("expected gravity only (vy 114), got %v", vel.Y)
		}
		if mustGet(t, w, player, component.PlayerComponent.Kind()).Grounded {
			t.Fatalf("airborne player must stay ungrounded")
		}
	})

	t.Run("edge clamp", func(t *testing.T) {
		w, player := buildWorld(t, &levels.Level{PlayerStart: levels.Point{X: -15, Y: 100}}, false, entity.Carry{})
		mustGet(t, w, player, component.InputComponent.Kind()).Left = true
		tickClock(w, 0.1)
		phys.Update(w)

		if x := mustGet(t, w, player, component.TransformComponent.Kind()).X; x != -20 {
			t.Fatalf("expected x clamped to -20, got %v", x)
		}

		tr := mustGet(t, w, player, component.TransformComponent.Kind())
		tr.X = 880
		in := mustGet(t, w, player, component.InputComponent.Kind())
		in.Left = false
		in.Right = true
		tickClock(w, 0.1)
		phys.Update(w)
		if tr.X != common.FieldWidth-32+20 {
			t.Fatalf("expected x clamped to %v, got %v", common.FieldWidth-32+20, tr.X)
		}
	})
}

func TestChasmCostsLifeAndResets(t *testing.T) {
	w, player := buildWorld(t, &levels.Level{PlayerStart: levels.Point{X: 100, Y: 100}}, false, entity.Carry{})
	tr := mustGet(t, w, player, component.TransformComponent.Kind())
	tr.Y = 730
	mustGet(t, w, player, component.VelocityComponent.Kind()).X = 50

	tickClock(w, 0.016)
	NewPhysicsSystem(testWorldSpec(t)).Update(w)

	lives := mustGet(t, w, player, component.LivesComponent.Kind())
	if lives.Count != 2 {
		t.Fatalf("expected 2 lives, got %d", lives.Count)
	}
	vel := mustGet(t, w, player, component.VelocityComponent.Kind())
	if tr.X != 100 || tr.Y != 100 || vel.X != 0 || vel.Y != 0 {
		t.Fatalf("expected reset to start at rest, got pos=(%v,%v) vel=(%v,%v)", tr.X, tr.Y, vel.X, vel.Y)
	}
	h, _ := hud(w)
	if h.Message != "Fell into a chasm. Lives left: 2" {
		t.Fatalf("unexpected message %q", h.Message)
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventLifeLost {
		t.Fatalf("expected one life lost event, got %+v", events)
	}
	if got := events[0].Data.(ecs.LifeLost); got.Reason != common.ReasonChasm || got.Lives != 2 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestContactDamageUntilGameOver(t *testing.T) {
	lvl := &levels.Level{
		PlayerStart: levels.Point{X: 300, Y: 518},
		Enemies:     []levels.Enemy{{Kind: "cyclops", X: 300, Y: 516, Width: 36, Height: 28, Dir: 1}},
	}
	w, player := buildWorld(t, lvl, false, entity.Carry{})
	enemies := NewEnemySystem()

	want := []int{2, 1, 0, 0}
	for step, lives := range want {
		tickClock(w, 0.016)
		enemies.Update(w)
		got := mustGet(t, w, player, component.LivesComponent.Kind()).Count
		if got != lives {
			t.Fatalf("step %d: expected %d lives, got %d", step, lives, got)
		}
		events := w.Events().Drain()
		switch step {
		case 2:
			if countEvents(events, ecs.EventGameOver) != 1 {
				t.Fatalf("expected game over on step %d, got %+v", step, events)
			}
		case 3:
			if len(events) != 0 {
				t.Fatalf("no damage after game over, got %+v", events)
			}
		}
	}

	h, _ := hud(w)
	if h.Status != GameOverText || h.Tone != component.ToneBad {
		t.Fatalf("unexpected status %q tone %v", h.Status, h.Tone)
	}
}

func TestEnemyPatrolFlipsAndClamps(t *testing.T) {
	lvl := &levels.Level{
		PlayerStart: levels.Point{X: 700, Y: 100},
		Enemies: []levels.Enemy{
			{Kind: "wolf", X: 195, Y: 516, Width: 36, Height: 28, Dir: 1, Range: &[2]float64{100, 200}},
			{Kind: "wolf", X: 500, Y: 516, Width: 36, Height: 28, Dir: 1},
			{Kind: "cyclops", X: 900, Y: 516, Width: 60, Height: 60, Dir: 1, Range: &[2]float64{300, 400}},
		},
	}
	w, _ := buildWorld(t, lvl, false, entity.Carry{})

	var enemies []ecs.Entity
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, _ *component.Enemy) {
		enemies = append(enemies, e)
	})
	if len(enemies) != 3 {
		t.Fatalf("expected 3 enemies, got %d", len(enemies))
	}
	if x := mustGet(t, w, enemies[2], component.TransformComponent.Kind()).X; x != 400 {
		t.Fatalf("spawn should clamp into range, got x %v", x)
	}

	tickClock(w, 0.1)
	NewEnemySystem().Update(w)

	patrol := mustGet(t, w, enemies[0], component.EnemyComponent.Kind())
	if x := mustGet(t, w, enemies[0], component.TransformComponent.Kind()).X; x != 200 || patrol.Dir != -1 {
		t.Fatalf("expected clamp to 200 and flip, got x=%v dir=%v", x, patrol.Dir)
	}
	if x := mustGet(t, w, enemies[1], component.TransformComponent.Kind()).X; x != 500 {
		t.Fatalf("enemy without range should stand still, got x %v", x)
	}
	cyclops := mustGet(t, w, enemies[2], component.EnemyComponent.Kind())
	if x := mustGet(t, w, enemies[2], component.TransformComponent.Kind()).X; x != 400 || cyclops.Dir != -1 {
		t.Fatalf("expected cyclops to turn back at 400, got x=%v dir=%v", x, cyclops.Dir)
	}

	tickClock(w, 0.1)
	NewEnemySystem().Update(w)
	if x := mustGet(t, w, enemies[2], component.TransformComponent.Kind()).X; !near(x, 395) {
		t.Fatalf("cyclops should walk at 50 px/s, got x %v", x)
	}
}

func TestPitFirstMatchOnly(t *testing.T) {
	lvl := &levels.Level{
		PlayerStart: levels.Point{X: 120, Y: 519},
		Pits:        []levels.Pit{{X: 100, Width: 100}, {X: 110, Width: 100}},
	}
	w, player := buildWorld(t, lvl, false, entity.Carry{})
	tickClock(w, 0.016)
	NewPitSystem(testWorldSpec(t)).Update(w)

	if lives := mustGet(t, w, player, component.LivesComponent.Kind()).Count; lives != 2 {
		t.Fatalf("expected exactly one life lost, got %d lives", lives)
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Data.(ecs.LifeLost).Reason != common.ReasonPit {
		t.Fatalf("expected one pit event, got %+v", events)
	}
}

func TestCrystalCollectedOnce(t *testing.T) {
	lvl := &levels.Level{
		PlayerStart: levels.Point{X: 195, Y: 190},
		Crystals:    []levels.Point{{X: 200, Y: 200}, {X: 600, Y: 200}},
	}
	w, player := buildWorld(t, lvl, false, entity.Carry{Lifetime: 7})
	crystals := NewCrystalSystem()

	for i := 0; i < 3; i++ {
		tickClock(w, 0.016)
		crystals.Update(w)
	}

	tally := mustGet(t, w, player, component.CrystalTallyComponent.Kind())
	if tally.Collected != 1 || tally.Lifetime != 8 {
		t.Fatalf("expected collected=1 lifetime=8, got %+v", *tally)
	}
	if n := countEvents(w.Events().Drain(), ecs.EventCrystalCollected); n != 1 {
		t.Fatalf("expected one collect event, got %d", n)
	}
}

func TestAllyRescueAndBonusLife(t *testing.T) {
	cases := []struct {
		name  string
		bonus bool
		lives int
		want  int
	}{
		{"bonus below cap", true, 3, 4},
		{"bonus at cap", true, 5, 5},
		{"no bonus", false, 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl := &levels.Level{
				PlayerStart:   levels.Point{X: 195, Y: 190},
				Allies:        []levels.Ally{{X: 200, Y: 200, Message: "thanks"}},
				AllyBonusLife: tc.bonus,
			}
			w, player := buildWorld(t, lvl, false, entity.Carry{Lives: tc.lives})
			allies := NewAllySystem()
			allies.Update(w)
			allies.Update(w)

			if got := mustGet(t, w, player, component.LivesComponent.Kind()).Count; got != tc.want {
				t.Fatalf("expected %d lives, got %d", tc.want, got)
			}
			h, _ := hud(w)
			if h.Message != "thanks" {
				t.Fatalf("expected ally message, got %q", h.Message)
			}
			if n := countEvents(w.Events().Drain(), ecs.EventAllyRescued); n != 1 {
				t.Fatalf("expected one rescue event, got %d", n)
			}
		})
	}
}

func TestExitRequiresCrystals(t *testing.T) {
	lvl := &levels.Level{
		StoryComplete:    "done",
		PlayerStart:      levels.Point{X: 800, Y: 500},
		Exit:             &levels.Rect{X: 780, Y: 480, Width: 60, Height: 80},
		RequiredCrystals: 2,
	}
	w, player := buildWorld(t, lvl, false, entity.Carry{})
	exit := NewExitSystem()
	tally := mustGet(t, w, player, component.CrystalTallyComponent.Kind())

	tally.Collected = 1
	exit.Update(w)
	if st, _ := levelState(w); st.Completed {
		t.Fatalf("completed with too few crystals")
	}

	tally.Collected = 2
	exit.Update(w)
	exit.Update(w)
	st, _ := levelState(w)
	if !st.Completed || st.AdvanceTimer != st.AdvanceDelay {
		t.Fatalf("expected completion with advance timer armed, got %+v", *st)
	}
	if n := countEvents(w.Events().Drain(), ecs.EventLevelCompleted); n != 1 {
		t.Fatalf("expected one completion event, got %d", n)
	}
	h, _ := hud(w)
	if h.Status != "done" || h.Tone != component.ToneGood {
		t.Fatalf("unexpected status %q tone %v", h.Status, h.Tone)
	}
}

func TestNoExitNeedsEveryAlly(t *testing.T) {
	lvl := &levels.Level{
		PlayerStart: levels.Point{X: 100, Y: 100},
		Allies: []levels.Ally{
			{X: 200, Y: 200, Message: "one"},
			{X: 600, Y: 200, Message: "two"},
		},
	}
	w, _ := buildWorld(t, lvl, false, entity.Carry{})

	var allies []*component.Ally
	ecs.ForEach(w, component.AllyComponent.Kind(), func(_ ecs.Entity, a *component.Ally) {
		allies = append(allies, a)
	})

	allies[0].Rescued = true
	NewExitSystem().Update(w)
	if st, _ := levelState(w); st.Completed {
		t.Fatalf("completed with an ally left")
	}

	allies[1].Rescued = true
	NewExitSystem().Update(w)
	if st, _ := levelState(w); !st.Completed {
		t.Fatalf("expected completion once every ally is rescued")
	}
}

func bossLevel(script string) *levels.Level {
	return &levels.Level{
		StoryComplete: "dragon down",
		PlayerStart:   levels.Point{X: 620, Y: 470},
		Platforms:     []levels.Platform{ground()},
		Boss:          &levels.Boss{X: 680, Y: 480, Width: 100, Height: 80, Health: 4, FireRate: 1.4, Script: script},
	}
}

func fireballs(w *ecs.World) []*component.Transform {
	var out []*component.Transform
	ecs.ForEach2(w, component.FireballComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Fireball, t *component.Transform) {
		out = append(out, t)
	})
	return out
}

func TestBossVolley(t *testing.T) {
	for _, script := range []string{"dragon_volley.tengo", "", "missing.tengo"} {
		t.Run("script="+script, func(t *testing.T) {
			w, _ := buildWorld(t, bossLevel(script), true, entity.Carry{})
			boss := NewBossSystem(testWorldSpec(t))

			tickClock(w, 0.1)
			boss.Update(w)
			shots := fireballs(w)
			if len(shots) != 2 {
				t.Fatalf("expected 2 fireballs, got %d", len(shots))
			}
			if shots[0].X != 680 || shots[0].Y != 490 || shots[1].X != 680 || shots[1].Y != 510 {
				t.Fatalf("unexpected spawn points (%v,%v) (%v,%v)", shots[0].X, shots[0].Y, shots[1].X, shots[1].Y)
			}

			tickClock(w, 0.1)
			boss.Update(w)
			if n := len(fireballs(w)); n != 2 {
				t.Fatalf("cooldown should hold fire, got %d fireballs", n)
			}
		})
	}
}

func TestResetScriptsRetriesFailedScript(t *testing.T) {
	w, _ := buildWorld(t, bossLevel("missing.tengo"), true, entity.Carry{})
	boss := NewBossSystem(testWorldSpec(t))

	tickClock(w, 0.1)
	boss.Update(w)
	if !boss.failed["missing.tengo"] {
		t.Fatalf("missing script should be remembered as failed")
	}

	boss.ResetScripts()
	if len(boss.failed) != 0 || len(boss.scripts) != 0 {
		t.Fatalf("reset should forget compiled and failed scripts")
	}
}

func TestVolleyScriptShots(t *testing.T) {
	vs, err := compileVolleyScript("dragon_volley.tengo")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	shots, err := vs.shots(680, 480, 4, 0)
	if err != nil {
		t.Fatalf("shots: %v", err)
	}
	if len(shots) != len(DefaultVolley) {
		t.Fatalf("expected %d shots, got %d", len(DefaultVolley), len(shots))
	}
	for i := range shots {
		if shots[i] != DefaultVolley[i] {
			t.Fatalf("shot %d: expected %+v, got %+v", i, DefaultVolley[i], shots[i])
		}
	}
}

func TestFireballFlightAndExpiry(t *testing.T) {
	w, player := buildWorld(t, &levels.Level{PlayerStart: levels.Point{X: 100, Y: 100}}, false, entity.Carry{})
	spec := testWorldSpec(t)
	boss := NewBossSystem(spec)

	spawn := func(x, y, vx, vy, age float64) ecs.Entity {
		last, err := boss.spawnFireball(w, x, y, vx, vy)
		if err != nil {
			t.Fatalf("spawnFireball: %v", err)
		}
		mustGet(t, w, last, component.FireballComponent.Kind()).Age = age
		return last
	}

	flying := spawn(400, 300, -240, -40, 0)
	offField := spawn(-30, 300, -240, 0, 0)
	old := spawn(500, 300, 0, 0, 5.95)
	hit := spawn(105, 110, 0, 0, 0)

	tickClock(w, 0.5)
	NewFireballSystem(spec).Update(w)

	tr := mustGet(t, w, flying, component.TransformComponent.Kind())
	vel := mustGet(t, w, flying, component.VelocityComponent.Kind())
	if tr.X != 280 || tr.Y != 280 || vel.Y != -25 {
		t.Fatalf("unexpected flight pos=(%v,%v) vy=%v", tr.X, tr.Y, vel.Y)
	}
	if ecs.IsAlive(w, offField) {
		t.Fatalf("fireball past the margin should be destroyed")
	}
	if ecs.IsAlive(w, old) {
		t.Fatalf("fireball past its lifetime should be destroyed")
	}
	if !ecs.IsAlive(w, hit) {
		t.Fatalf("hit does not consume the fireball")
	}
	if lives := mustGet(t, w, player, component.LivesComponent.Kind()).Count; lives != 2 {
		t.Fatalf("expected fire to cost a life, got %d lives", lives)
	}
}

func TestMeleeHitsAndDefeatsBoss(t *testing.T) {
	w, player := buildWorld(t, bossLevel(""), true, entity.Carry{})
	melee := NewMeleeSystem()
	in := mustGet(t, w, player, component.InputComponent.Kind())

	var boss *component.Boss
	ecs.ForEach(w, component.BossComponent.Kind(), func(_ ecs.Entity, b *component.Boss) { boss = b })

	*in = component.Input{Attack: true}
	melee.Update(w)
	if boss.Health != 3 || in.Attack || !in.AttackConsumed {
		t.Fatalf("expected hit consuming attack, got health=%d input=%+v", boss.Health, *in)
	}
	h, _ := hud(w)
	if h.Message != "Dragon hit! Health left: 3" {
		t.Fatalf("unexpected message %q", h.Message)
	}

	melee.Update(w)
	if boss.Health != 3 {
		t.Fatalf("consumed attack must not hit again")
	}

	for i := 0; i < 3; i++ {
		*in = component.Input{Attack: true}
		melee.Update(w)
	}
	if boss.Health != 0 || !boss.Defeated {
		t.Fatalf("expected defeated boss, got %+v", *boss)
	}

	*in = component.Input{Attack: true}
	melee.Update(w)
	if boss.Health != 0 {
		t.Fatalf("defeated boss ignores attacks, got health %d", boss.Health)
	}

	events := w.Events().Drain()
	if n := countEvents(events, ecs.EventBossHit); n != 4 {
		t.Fatalf("expected 4 hits, got %d", n)
	}
	if n := countEvents(events, ecs.EventLevelCompleted); n != 1 {
		t.Fatalf("expected completion once, got %d", n)
	}

	tickClock(w, 5)
	NewBossSystem(testWorldSpec(t)).Update(w)
	if n := len(fireballs(w)); n != 0 {
		t.Fatalf("defeated boss should not fire, got %d fireballs", n)
	}
}

func TestMeleeOutOfRange(t *testing.T) {
	w, player := buildWorld(t, bossLevel(""), true, entity.Carry{})
	mustGet(t, w, player, component.TransformComponent.Kind()).X = 500
	in := mustGet(t, w, player, component.InputComponent.Kind())
	*in = component.Input{Attack: true}

	NewMeleeSystem().Update(w)
	if !in.Attack || in.AttackConsumed {
		t.Fatalf("missed attack must stay held")
	}
}

func TestLevelTransitionTimer(t *testing.T) {
	cases := []struct {
		name  string
		final bool
		want  int
	}{
		{"advances", false, 1},
		{"final stays", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := buildWorld(t, &levels.Level{PlayerStart: levels.Point{X: 100, Y: 100}}, tc.final, entity.Carry{})
			completeLevel(w)
			w.Events().Drain()

			transition := NewLevelTransitionSystem()
			tickClock(w, 0.5)
			transition.Update(w)
			if n := len(w.Events().Drain()); n != 0 {
				t.Fatalf("advanced before the delay")
			}

			var events []ecs.Event
			for i := 0; i < 4; i++ {
				tickClock(w, 0.5)
				transition.Update(w)
				events = append(events, w.Events().Drain()...)
			}
			if n := countEvents(events, ecs.EventLevelAdvance); n != tc.want {
				t.Fatalf("expected %d advance events, got %d", tc.want, n)
			}
			if tc.want == 1 && events[0].Data.(ecs.LevelAdvance).Next != 1 {
				t.Fatalf("unexpected payload %+v", events[0].Data)
			}
		})
	}
}

func TestMovingPlatformStaysNearOrigin(t *testing.T) {
	lvl := &levels.Level{
		PlayerStart: levels.Point{X: 100, Y: 100},
		Platforms: []levels.Platform{
			{X: 520, Y: 520, Width: 80, Height: 16, Moving: true, Axis: "x", Range: 60, Speed: 80},
			{X: 300, Y: 400, Width: 80, Height: 16, Moving: true, Axis: "y", Range: 80, Speed: 60},
		},
	}
	w, _ := buildWorld(t, lvl, false, entity.Carry{})
	motion := NewPlatformMotionSystem()
	dt := 1.0 / 60

	type tracked struct {
		tr     *component.Transform
		p      *component.Platform
		origin float64
		peak   float64
	}
	var platforms []*tracked
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Platform, tr *component.Transform) {
		origin := tr.X
		if p.Axis == component.AxisY {
			origin = tr.Y
		}
		platforms = append(platforms, &tracked{tr: tr, p: p, origin: origin})
	})

	for i := 0; i < 3000; i++ {
		tickClock(w, dt)
		motion.Update(w)
		for _, pr := range platforms {
			pos := pr.tr.X
			if pr.p.Axis == component.AxisY {
				pos = pr.tr.Y
			}
			off := math.Abs(pos - pr.origin)
			if off > pr.p.Range+2*pr.p.Speed*dt+eps {
				t.Fatalf("step %d: platform drifted %v past range %v", i, off, pr.p.Range)
			}
			if off > pr.peak {
				pr.peak = off
			}
		}
	}
	for _, pr := range platforms {
		if pr.peak < pr.p.Range-pr.p.Speed*dt {
			t.Fatalf("platform never reached its range, peak %v", pr.peak)
		}
	}
}

func TestInvulnerabilityWindow(t *testing.T) {
	w, player := buildWorld(t, &levels.Level{PlayerStart: levels.Point{X: 100, Y: 100}}, false, entity.Carry{})
	st, _ := levelState(w)
	st.Immunity = 1

	if !loseLife(w, common.ReasonEnemy) {
		t.Fatalf("first hit should land")
	}
	if loseLife(w, common.ReasonEnemy) {
		t.Fatalf("hit during immunity should be ignored")
	}

	inv := NewInvulnerabilitySystem()
	tickClock(w, 0.6)
	inv.Update(w)
	if !ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		t.Fatalf("immunity ended early")
	}
	tickClock(w, 0.6)
	inv.Update(w)
	if ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		t.Fatalf("immunity should have expired")
	}
	if !loseLife(w, common.ReasonEnemy) {
		t.Fatalf("hit after immunity should land")
	}
	if lives := mustGet(t, w, player, component.LivesComponent.Kind()).Count; lives != 1 {
		t.Fatalf("expected 1 life, got %d", lives)
	}
}

func TestPipelineConsumesAttack(t *testing.T) {
	w, _ := buildWorld(t, bossLevel(""), true, entity.Carry{})
	p := NewPipeline(testWorldSpec(t))
	if n := len(p.Systems()); n != 13 {
		t.Fatalf("expected 13 systems, got %d", n)
	}

	state := &input.State{}
	state.KeyDown("x")
	events := p.Step(w, 1.0/60, state)
	if countEvents(events, ecs.EventBossHit) != 1 {
		t.Fatalf("expected a boss hit, got %+v", events)
	}
	if state.Held(input.Attack) {
		t.Fatalf("landed attack should be consumed in the input state")
	}

	events = p.Step(w, 1.0/60, state)
	if countEvents(events, ecs.EventBossHit) != 0 {
		t.Fatalf("held key must be pressed again")
	}

	e, _ := ecs.First(w, component.ClockComponent.Kind())
	clock := mustGet(t, w, e, component.ClockComponent.Kind())
	if clock.Tick != 2 || !near(clock.Elapsed, 2.0/60) {
		t.Fatalf("unexpected clock %+v", *clock)
	}
}
