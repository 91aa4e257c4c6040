package scheduler

import (
	"time"

	"github.com/catchsup/catchsup/internal/domain"
)

// SelectedGoal references the goal currently promoted to the user and
// the instant it was selected. A selection from a previous calendar
// day is stale.
type SelectedGoal struct {
	ID          int64                `json:"id"`
	ScheduledOn domain.UnixTimestamp `json:"scheduledOn"`
}

// State is the persisted scheduler state. It is owned by the scheduler
// operations in this package; other components read it but never
// mutate it directly.
type State struct {
	Goal *SelectedGoal `json:"goal,omitempty"`

	NotificationCount int                  `json:"notificationCount"`
	LastComplete      domain.UnixTimestamp `json:"lastComplete"`
	LastNotify        domain.UnixTimestamp `json:"lastNotify"`
	LastGoalID        int64                `json:"lastGoalId"`

	// NoDisturbUntil suppresses notification escalation while in the
	// future. NoDisturbChoices are the preset window lengths, in
	// minutes, offered to the user.
	NoDisturbUntil   domain.UnixTimestamp `json:"noDisturbUntil"`
	NoDisturbChoices []int                `json:"noDisturbChoices"`

	// Tunables.
	ScheduleIntervalMin int `json:"scheduleInterval"`
	DailyLimitMin       int `json:"dailyLimit"`
}

// DefaultState returns the scheduler state used for a fresh install.
func DefaultState() State {
	return State{
		NoDisturbChoices:    []int{20, 45, 90},
		ScheduleIntervalMin: 20,
		DailyLimitMin:       120,
	}
}

// CanScheduleNext reports whether enough time has passed since the
// last completion to promote a new goal. An unset LastComplete counts
// as the epoch, so a fresh state can always schedule.
func CanScheduleNext(s State, now time.Time) bool {
	elapsed := now.Sub(s.LastComplete.Time())
	return elapsed > time.Duration(s.ScheduleIntervalMin)*time.Minute
}

// HasScheduledGoal reports whether a goal is selected and the
// selection was made on the current calendar day.
func HasScheduledGoal(s State, now time.Time) bool {
	return s.Goal != nil && domain.DateOf(s.Goal.ScheduledOn.Time()) == domain.DateOf(now)
}

// InNoDisturbMode reports whether the do-not-disturb window is active.
func InNoDisturbMode(s State, now time.Time) bool {
	return now.Before(s.NoDisturbUntil.Time())
}
