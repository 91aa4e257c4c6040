package testutil

import (
	"time"

	"github.com/catchsup/catchsup/internal/domain"
)

// GoalOption mutates a goal fixture.
type GoalOption func(*domain.Goal)

func WithTrainingTime(tt domain.TrainingTime) GoalOption {
	return func(g *domain.Goal) { g.TrainingTime = tt }
}

func WithDailyInterval(days float64) GoalOption {
	return func(g *domain.Goal) { g.Scheduling.Daily.Interval = days }
}

func WithDuration(minutes float64) GoalOption {
	return func(g *domain.Goal) { g.TrainingDuration = minutes }
}

func WithWeekly(weekdays ...time.Weekday) GoalOption {
	return func(g *domain.Goal) {
		g.Scheduling.Type = domain.SchedulingWeekly
		for _, d := range weekdays {
			g.Scheduling.Weekly.Weekdays[int(d)] = true
		}
	}
}

func WithMonthly(days ...int) GoalOption {
	return func(g *domain.Goal) {
		g.Scheduling.Type = domain.SchedulingMonthly
		g.Scheduling.Monthly.Days = days
	}
}

func WithLastDone(t time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.UpdatedTime = domain.Timestamp(t)
		g.LastSkipCheck = domain.DateOf(t)
	}
}

// NewTestGoal builds a goal with catchsup defaults created at the
// given instant.
func NewTestGoal(id int64, title string, createdAt time.Time, opts ...GoalOption) *domain.Goal {
	g := domain.NewGoal(id, title, createdAt)
	for _, opt := range opts {
		opt(g)
	}
	return g
}
