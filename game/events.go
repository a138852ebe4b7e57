package game

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened during a transition.
type EventType uint8

const (
	EventSpawned EventType = iota + 1
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventPaused
	EventResumed
	EventGameOver
	EventReset
)

var eventNames = [...]string{
	EventSpawned:      "spawned",
	EventLocked:       "locked",
	EventLinesCleared: "lines-cleared",
	EventLevelUp:      "level-up",
	EventPaused:       "paused",
	EventResumed:      "resumed",
	EventGameOver:     "game-over",
	EventReset:        "reset",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) && eventNames[t] != "" {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a record of a state change. Score, Lines and Level are the
// session totals after the change.
type Event struct {
	Type    EventType
	Session uuid.UUID
	At      time.Time
	Piece   Piece
	// Cleared and Points are set for EventLinesCleared.
	Cleared int
	Points  int
	Score   int
	Lines   int
	Level   int
}

// Listener observes session events. Listeners must not mutate the session.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}

// Events buffers events raised while a transition runs and hands them to
// listeners only once the transition has finished.
type Events struct {
	pending   []Event
	listeners []Listener
}

func newEvents() *Events {
	return &Events{}
}

// Subscribe registers a listener for all future flushes.
func (e *Events) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Record queues an event.
func (e *Events) Record(ev Event) {
	e.pending = append(e.pending, ev)
}

// Pending returns the number of queued events.
func (e *Events) Pending() int {
	return len(e.pending)
}

// Flush delivers queued events in order and resets the buffer.
func (e *Events) Flush() {
	if len(e.pending) == 0 {
		return
	}

	// Listeners may trigger another flush indirectly; detach first.
	pending := e.pending
	e.pending = nil

	for _, ev := range pending {
		for _, l := range e.listeners {
			l.OnEvent(ev)
		}
	}
}
