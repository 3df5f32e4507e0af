package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/game"
	"github.com/milk9111/dragonlair/input"
	"github.com/milk9111/dragonlair/progress"
)

const frame = 16 * time.Millisecond

var runeKeys = map[rune]string{
	'a': "a",
	'A': "A",
	'd': "d",
	'D': "D",
	' ': " ",
	'x': "x",
	'X': "X",
}

type term struct {
	screen tcell.Screen
	game   *game.Game
	state  input.State
	latch  *keyLatch
	title  bool
	audio  bool
}

func main() {
	saveDir := flag.String("save-dir", ".dragonlair", "directory holding the progress record")
	logPath := flag.String("log", "termlair.log", "log file (the terminal is taken by the game)")
	flag.Parse()

	if f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}
	log.SetPrefix("termlair: ")

	opts, err := game.LoadOptions()
	if err != nil {
		log.Fatal(err)
	}
	opts.Store = progress.NewFileStore(*saveDir)
	g, err := game.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	t := &term{screen: screen, game: g, title: true}
	t.latch = newKeyLatch(&t.state)

	sr := beep.SampleRate(44100)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		log.Printf("audio disabled: %v", err)
	} else {
		t.audio = true
	}

	t.run()

	if t.audio {
		speaker.Close()
	}
	screen.Fini()
}

func (t *term) run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if !t.title {
				t.latch.Expire(now)
				t.sound(t.game.Advance(elapsed, &t.state))
			}
			t.draw()
		}
	}
}

func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if t.title {
			return t.handleTitle(ev)
		}
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyEscape:
			t.latch.Reset()
			t.title = true
		case tcell.KeyLeft:
			t.latch.Press("ArrowLeft", now)
		case tcell.KeyRight:
			t.latch.Press("ArrowRight", now)
		case tcell.KeyRune:
			if name, ok := runeKeys[ev.Rune()]; ok {
				t.latch.Press(name, now)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *term) handleTitle(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'n', 'N':
		if err := t.game.NewGame(); err != nil {
			log.Printf("new game: %v", err)
			return true
		}
		t.title = false
	case 'c', 'C':
		if !t.game.CanContinue() {
			return true
		}
		if err := t.game.Continue(); err != nil {
			log.Printf("continue: %v", err)
			return true
		}
		t.title = false
	}
	return true
}

var tones = map[ecs.EventType]struct {
	freq float64
	dur  time.Duration
}{
	ecs.EventCrystalCollected: {1320, 50 * time.Millisecond},
	ecs.EventAllyRescued:      {880, 120 * time.Millisecond},
	ecs.EventLifeLost:         {220, 200 * time.Millisecond},
	ecs.EventBossHit:          {520, 80 * time.Millisecond},
	ecs.EventLevelCompleted:   {660, 250 * time.Millisecond},
	ecs.EventGameOver:         {110, 400 * time.Millisecond},
}

func (t *term) sound(events []ecs.Event) {
	if !t.audio {
		return
	}
	sr := beep.SampleRate(44100)
	for _, evt := range events {
		tone, ok := tones[evt.Type]
		if !ok {
			continue
		}
		sine, err := generators.SineTone(sr, tone.freq)
		if err != nil {
			continue
		}
		speaker.Play(beep.Take(sr.N(tone.dur), sine))
	}
}
