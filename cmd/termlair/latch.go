package main

import (
	"time"

	"github.com/milk9111/dragonlair/input"
)

// Terminals report presses and auto-repeats but never releases, so a key
// counts as held until holdWindow passes without a repeat.
const holdWindow = 300 * time.Millisecond

type keyLatch struct {
	state   *input.State
	expires map[string]time.Time
}

func newKeyLatch(state *input.State) *keyLatch {
	return &keyLatch{state: state, expires: make(map[string]time.Time)}
}

// Press holds key until now+holdWindow. Unmapped keys are ignored. Attack
// only arms on a fresh press: repeats while it is latched extend the hold
// without arming another swing.
func (l *keyLatch) Press(key string, now time.Time) bool {
	a, ok := input.ActionForKey(key)
	if !ok {
		return false
	}
	if a != input.Attack || !l.latched(a, now) {
		l.state.KeyDown(key)
	}
	l.expires[key] = now.Add(holdWindow)
	return true
}

func (l *keyLatch) latched(a input.Action, now time.Time) bool {
	for key, at := range l.expires {
		if ka, _ := input.ActionForKey(key); ka == a && now.Before(at) {
			return true
		}
	}
	return false
}

// Expire releases every key whose window has passed.
// A movement key still latched keeps its action held when an alias of it
// expires. Attack is never re-armed this way.
func (l *keyLatch) Expire(now time.Time) {
	released := make(map[input.Action]bool)
	for key, at := range l.expires {
		if !now.Before(at) {
			l.state.KeyUp(key)
			delete(l.expires, key)
			if a, ok := input.ActionForKey(key); ok {
				released[a] = true
			}
		}
	}
	for key := range l.expires {
		if a, ok := input.ActionForKey(key); ok && a != input.Attack && released[a] {
			l.state.Set(a, true)
		}
	}
}

func (l *keyLatch) Reset() {
	l.state.Reset()
	clear(l.expires)
}
