// Package events carries the in-process application events the
// notifier coordinator reacts to. The event set is a closed tagged
// union; adding a variant means updating every exhaustive switch over
// Type, which is enforced by Valid.
package events

import (
	"sync"

	"github.com/google/uuid"
)

type Type string

const (
	GoalStarted       Type = "goal-started"
	GoalTimeUp        Type = "goal-timeup"
	GoalModified      Type = "goal-modified"
	GoalFinished      Type = "goal-finished"
	GoalCancelled     Type = "goal-cancelled"
	SettingsUpdated   Type = "settings-updated"
	StartDistraction  Type = "start-distraction"
	StopDistraction   Type = "stop-distraction"
	DistractionClosed Type = "distraction-window-closed"
	NoDisturbChange   Type = "no-disturb-change"
)

// Valid reports whether t names a known event variant.
func Valid(t Type) bool {
	switch t {
	case GoalStarted, GoalTimeUp, GoalModified, GoalFinished,
		GoalCancelled, SettingsUpdated, StartDistraction,
		StopDistraction, DistractionClosed, NoDisturbChange:
		return true
	default:
		return false
	}
}

// Event is one application event. Only the fields relevant to the
// variant are set: GoalID for goal-* events, Size/Seconds for
// start-distraction, IsOn for no-disturb-change.
type Event struct {
	Type    Type  `json:"type"`
	GoalID  int64 `json:"goalId,omitempty"`
	Size    int   `json:"size,omitempty"`
	Seconds int   `json:"seconds,omitempty"`
	IsOn    bool  `json:"isOn,omitempty"`
}

// Handler receives published events. Handlers run synchronously on
// the publishing goroutine.
type Handler func(Event)

// Bus is a minimal typed pub/sub channel. Safe for concurrent use.
type Bus struct {
	mu       sync.Mutex
	handlers map[string]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]Handler)}
}

// Subscribe registers a handler and returns its subscription id.
func (b *Bus) Subscribe(h Handler) string {
	id := uuid.NewString()
	b.mu.Lock()
	b.handlers[id] = h
	b.mu.Unlock()
	return id
}

// Unsubscribe detaches the handler with the given id; unknown ids are
// ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	delete(b.handlers, id)
	b.mu.Unlock()
}

// Publish dispatches the event to every current subscriber. The
// handler snapshot is taken under the lock so a handler may
// unsubscribe itself without deadlocking.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	snapshot := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		snapshot = append(snapshot, h)
	}
	b.mu.Unlock()

	for _, h := range snapshot {
		h(e)
	}
}
