package main

import (
	"bytes"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/dragonlair/ecs"
)

const sampleRate = 44100

// sfx plays a synthesized blip per presentation event.
type sfx struct {
	ctx     *audio.Context
	players map[ecs.EventType]*audio.Player
}

type tone struct {
	freq float64
	dur  float64
}

var eventTones = map[ecs.EventType]tone{
	ecs.EventCrystalCollected: {freq: 1320, dur: 0.06},
	ecs.EventAllyRescued:      {freq: 880, dur: 0.15},
	ecs.EventLifeLost:         {freq: 220, dur: 0.2},
	ecs.EventBossHit:          {freq: 520, dur: 0.1},
	ecs.EventLevelCompleted:   {freq: 660, dur: 0.3},
	ecs.EventGameOver:         {freq: 110, dur: 0.5},
}

func newSFX() *sfx {
	s := &sfx{
		ctx:     audio.NewContext(sampleRate),
		players: make(map[ecs.EventType]*audio.Player, len(eventTones)),
	}
	for evt, t := range eventTones {
		p, err := s.ctx.NewPlayer(bytes.NewReader(sinePCM(t.freq, t.dur)))
		if err != nil {
			log.Printf("sfx: %s: %v", evt, err)
			continue
		}
		s.players[evt] = p
	}
	return s
}

func (s *sfx) play(events []ecs.Event) {
	for _, evt := range events {
		p := s.players[evt.Type]
		if p == nil {
			continue
		}
		_ = p.Rewind()
		p.Play()
	}
}

// sinePCM renders a faded sine as 16-bit little-endian stereo.
func sinePCM(freq, dur float64) []byte {
	n := int(sampleRate * dur)
	pcm := make([]byte, n*4)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * 0.3 * fade
		smp := int16(v * math.MaxInt16)
		pcm[4*i] = byte(smp)
		pcm[4*i+1] = byte(smp >> 8)
		pcm[4*i+2] = byte(smp)
		pcm[4*i+3] = byte(smp >> 8)
	}
	return pcm
}
