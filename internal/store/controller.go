package store

import (
	"sync"

	"github.com/google/uuid"
)

// Controller serializes all state mutation. Updates run
// read-then-copy-then-replace: the update function receives a private
// deep copy, and the copy becomes the new current state when the
// function returns. Snapshots returned by GetState are never mutated
// afterwards and are safe to read without locking.
type Controller struct {
	mu    sync.Mutex
	state *State
	subs  map[string]func(*State)
}

// NewController wraps the initial state. The controller takes
// ownership of it.
func NewController(initial *State) *Controller {
	if initial == nil {
		initial = DefaultState()
	}
	return &Controller{state: initial, subs: make(map[string]func(*State))}
}

// GetState returns the current immutable snapshot.
func (c *Controller) GetState() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ApplyUpdate runs fn against a copy of the current state, installs
// the result as the new current state with a bumped version, and
// notifies subscribers. Returns the new snapshot.
func (c *Controller) ApplyUpdate(fn func(*State)) *State {
	c.mu.Lock()
	next := c.state.Clone()
	fn(next)
	next.Version = c.state.Version + 1
	c.state = next

	subs := make([]func(*State), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(next)
	}
	return next
}

// Subscribe registers fn to run after every applied update.
func (c *Controller) Subscribe(fn func(*State)) string {
	id := uuid.NewString()
	c.mu.Lock()
	c.subs[id] = fn
	c.mu.Unlock()
	return id
}

// Unsubscribe removes a subscriber; unknown ids are ignored.
func (c *Controller) Unsubscribe(id string) {
	c.mu.Lock()
	delete(c.subs, id)
	c.mu.Unlock()
}
