// Package store owns the process-wide application state: the goal
// collection, the active training session, the training log, and the
// scheduler state. All mutation goes through a Controller so there is
// a single serialized writer; readers get immutable snapshots.
package store

import (
	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/scheduler"
)

// Settings are the user-facing preferences persisted with the state.
type Settings struct {
	SoundVolume float64 `json:"soundVolume"`
	MuteSounds  bool    `json:"muteSounds"`
}

// State is the full serializable application state.
type State struct {
	Version int `json:"version"`

	// NextGoalID is the monotonic goal ID counter. IDs are never
	// reused within a session, even after deletion.
	NextGoalID int64 `json:"nextGoalId"`

	Goals          []*domain.Goal         `json:"goals"`
	TrainingLogs   []*domain.TrainingLog  `json:"trainingLogs"`
	ActiveTraining *domain.ActiveTraining `json:"activeTraining,omitempty"`

	Scheduler scheduler.State `json:"scheduler"`
	Settings  Settings        `json:"settings"`
}

// DefaultState returns the state used for a fresh install or as the
// fallback after rejecting a corrupt persisted blob.
func DefaultState() *State {
	return &State{
		NextGoalID:   1,
		Goals:        []*domain.Goal{},
		TrainingLogs: []*domain.TrainingLog{},
		Scheduler:    scheduler.DefaultState(),
		Settings:     Settings{SoundVolume: 0.5},
	}
}

// Clone returns a deep copy. Snapshots handed out by the controller
// share nothing with the live state.
func (s *State) Clone() *State {
	c := *s

	c.Goals = make([]*domain.Goal, len(s.Goals))
	for i, g := range s.Goals {
		gc := *g
		if g.Resched != nil {
			r := *g.Resched
			gc.Resched = &r
		}
		if g.Scheduling.Monthly.Days != nil {
			gc.Scheduling.Monthly.Days = append([]int(nil), g.Scheduling.Monthly.Days...)
		}
		c.Goals[i] = &gc
	}

	c.TrainingLogs = make([]*domain.TrainingLog, len(s.TrainingLogs))
	for i, l := range s.TrainingLogs {
		lc := *l
		c.TrainingLogs[i] = &lc
	}

	if s.ActiveTraining != nil {
		at := *s.ActiveTraining
		c.ActiveTraining = &at
	}
	if s.Scheduler.Goal != nil {
		sg := *s.Scheduler.Goal
		c.Scheduler.Goal = &sg
	}
	if s.Scheduler.NoDisturbChoices != nil {
		c.Scheduler.NoDisturbChoices = append([]int(nil), s.Scheduler.NoDisturbChoices...)
	}

	return &c
}

// GoalByID returns the goal with the given id, or nil.
func (s *State) GoalByID(id int64) *domain.Goal {
	for _, g := range s.Goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}
