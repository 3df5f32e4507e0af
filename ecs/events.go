package ecs

// EventType names a gameplay event emitted during a step.
type EventType string

const (
	EventLifeLost         EventType = "life_lost"
	EventGameOver         EventType = "game_over"
	EventCrystalCollected EventType = "crystal_collected"
	EventAllyRescued      EventType = "ally_rescued"
	EventBossHit          EventType = "boss_hit"
	EventLevelCompleted   EventType = "level_completed"
	EventLevelAdvance     EventType = "level_advance"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// LifeLost is the payload of EventLifeLost.
type LifeLost struct {
	Reason string
	Lives  int
}

// LevelCompleted is the payload of EventLevelCompleted.
type LevelCompleted struct {
	Index int
}

// LevelAdvance is the payload of EventLevelAdvance.
type LevelAdvance struct {
	Next int
}

// BossHit is the payload of EventBossHit.
type BossHit struct {
	Health int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Has reports whether an event of type t is queued.
func (q *EventQueue) Has(t EventType) bool {
	if q == nil {
		return false
	}
	for _, evt := range q.items {
		if evt.Type == t {
			return true
		}
	}
	return false
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
