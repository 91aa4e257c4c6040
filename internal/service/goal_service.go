// Package service implements the application operations over the
// store: goal lifecycle and training sessions. Services publish bus
// events so the notifier re-evaluates immediately instead of waiting
// for the next poll tick.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/events"
	"github.com/catchsup/catchsup/internal/store"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalService owns goal lifecycle operations.
type GoalService struct {
	store *store.Controller
	bus   *events.Bus
}

func NewGoalService(st *store.Controller, bus *events.Bus) *GoalService {
	return &GoalService{store: st, bus: bus}
}

// Create adds a goal with defaulted values (daily, interval 1,
// 15 minutes, any time) under the next monotonic ID.
func (s *GoalService) Create(title, description string, now time.Time) *domain.Goal {
	var created *domain.Goal
	s.store.ApplyUpdate(func(st *store.State) {
		g := domain.NewGoal(st.NextGoalID, title, now)
		g.Description = description
		st.NextGoalID++
		st.Goals = append(st.Goals, g)
		created = g
	})
	s.bus.Publish(events.Event{Type: events.GoalModified, GoalID: created.ID})
	return created
}

// Insert adds a fully specified goal under the next monotonic ID.
// The importer builds goals elsewhere and hands them over here.
func (s *GoalService) Insert(g *domain.Goal) *domain.Goal {
	s.store.ApplyUpdate(func(st *store.State) {
		g.ID = st.NextGoalID
		st.NextGoalID++
		st.Goals = append(st.Goals, g)
	})
	s.bus.Publish(events.Event{Type: events.GoalModified, GoalID: g.ID})
	return g
}

// Update mutates the goal with the given id in place.
func (s *GoalService) Update(id int64, mutate func(*domain.Goal)) error {
	found := false
	s.store.ApplyUpdate(func(st *store.State) {
		if g := st.GoalByID(id); g != nil {
			mutate(g)
			found = true
		}
	})
	if !found {
		return fmt.Errorf("updating goal %d: %w", id, ErrGoalNotFound)
	}
	s.bus.Publish(events.Event{Type: events.GoalModified, GoalID: id})
	return nil
}

// Delete removes the goal from the collection. An in-flight training
// session referencing it is orphaned and cleared, as is a scheduler
// selection pointing at it. Training logs are retained.
func (s *GoalService) Delete(id int64) error {
	found := false
	s.store.ApplyUpdate(func(st *store.State) {
		for i, g := range st.Goals {
			if g.ID == id {
				st.Goals = append(st.Goals[:i], st.Goals[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return
		}
		if st.ActiveTraining != nil && st.ActiveTraining.GoalID == id {
			st.ActiveTraining = nil
		}
		if st.Scheduler.Goal != nil && st.Scheduler.Goal.ID == id {
			st.Scheduler.Goal = nil
		}
	})
	if !found {
		return fmt.Errorf("deleting goal %d: %w", id, ErrGoalNotFound)
	}
	s.bus.Publish(events.Event{Type: events.GoalModified, GoalID: id})
	return nil
}

// Reschedule sets the one-shot training-time override for the current
// calendar day. It expires by itself once the day changes.
func (s *GoalService) Reschedule(id int64, tt domain.TrainingTime, now time.Time) error {
	return s.Update(id, func(g *domain.Goal) {
		g.Resched = &domain.Resched{Date: domain.DateOf(now), TrainingTime: tt}
	})
}

// SetNoDisturb opens a do-not-disturb window of the given length;
// zero or negative minutes closes it.
func (s *GoalService) SetNoDisturb(minutes int, now time.Time) {
	on := minutes > 0
	s.store.ApplyUpdate(func(st *store.State) {
		if on {
			st.Scheduler.NoDisturbUntil = domain.Timestamp(now.Add(time.Duration(minutes) * time.Minute))
		} else {
			st.Scheduler.NoDisturbUntil = 0
		}
	})
	s.bus.Publish(events.Event{Type: events.NoDisturbChange, IsOn: on})
}

// CatchUpSkips applies skip deduction to every goal through
// yesterday. Run once per day boundary (and on startup).
func (s *GoalService) CatchUpSkips(now time.Time) {
	today := domain.DateOf(now)
	s.store.ApplyUpdate(func(st *store.State) {
		for _, g := range st.Goals {
			g.DeductSkippedTrainingDays(today)
		}
	})
}
