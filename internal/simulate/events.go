package simulate

import "github.com/robalobadob/wordle-buddy/internal/game"

// EventKind names a progress event.
type EventKind string

const (
	EventMessage EventKind = "message" // status line changed
	EventAttempt EventKind = "attempt" // a new row was started with Word
	EventReveal  EventKind = "reveal"  // tile Index of Row was revealed as Mark
	EventKey     EventKind = "key"     // keyboard Letter moved to Mark
)

// Event is one progress update from a Runner.
type Event struct {
	Kind    EventKind `json:"kind"`
	Row     int       `json:"row,omitempty"`
	Index   int       `json:"index,omitempty"`
	Word    string    `json:"word,omitempty"`
	Letter  string    `json:"letter,omitempty"`
	Mark    game.Mark `json:"mark,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Observer receives events synchronously from the running goroutine.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Discard drops every event.
var Discard Observer = ObserverFunc(func(Event) {})

// Recorder collects events in order. Not safe for concurrent use.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Observe(e Event) { r.Events = append(r.Events, e) }

// Messages returns the message events in order.
func (r *Recorder) Messages() []string {
	var out []string
	for _, e := range r.Events {
		if e.Kind == EventMessage {
			out = append(out, e.Message)
		}
	}
	return out
}

// Of returns the events of one kind.
func (r *Recorder) Of(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
