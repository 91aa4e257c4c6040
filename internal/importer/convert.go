package importer

import (
	"fmt"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
)

// Convert transforms a validated import entry into a goal with the
// given id. Call ValidateImportSchema first; Convert assumes the
// entry is valid.
func Convert(entry GoalImport, id int64, now time.Time) (*domain.Goal, error) {
	g := domain.NewGoal(id, entry.Title, now)
	g.Description = entry.Description

	tt, err := domain.ParseTrainingTime(entry.At)
	if err != nil {
		return nil, fmt.Errorf("goal %q: %w", entry.Title, err)
	}
	g.TrainingTime = tt

	switch {
	case entry.Cadence != "":
		g.Scheduling.Type = domain.SchedulingType(entry.Cadence)
	case len(entry.Weekdays) > 0:
		g.Scheduling.Type = domain.SchedulingWeekly
	case len(entry.Days) > 0:
		g.Scheduling.Type = domain.SchedulingMonthly
	}

	if len(entry.Weekdays) > 0 {
		mask, err := domain.ParseWeekdays(entry.Weekdays)
		if err != nil {
			return nil, fmt.Errorf("goal %q: %w", entry.Title, err)
		}
		g.Scheduling.Weekly.Weekdays = mask
	}
	if len(entry.Days) > 0 {
		days, err := domain.ParseMonthDays(entry.Days)
		if err != nil {
			return nil, fmt.Errorf("goal %q: %w", entry.Title, err)
		}
		g.Scheduling.Monthly.Days = days
	}
	if entry.Interval > 0 {
		g.Scheduling.Daily.Interval = entry.Interval
	}
	if entry.DurationMin > 0 {
		g.TrainingDuration = entry.DurationMin
	}

	return g, nil
}

// Export renders goals back into the import schema, the inverse of
// Convert for backup and sharing.
func Export(goals []*domain.Goal) *ImportSchema {
	schema := &ImportSchema{Goals: make([]GoalImport, 0, len(goals))}
	for _, g := range goals {
		entry := GoalImport{
			Title:       g.Title,
			Description: g.Description,
			At:          domain.TrainingTimeSyntax(g.TrainingTime),
			DurationMin: g.TrainingDuration,
		}
		switch g.Scheduling.Type {
		case domain.SchedulingDaily:
			if g.Scheduling.Daily.Interval != 1 {
				entry.Interval = g.Scheduling.Daily.Interval
			}
		case domain.SchedulingWeekly:
			for i, on := range g.Scheduling.Weekly.Weekdays {
				if on {
					name := time.Weekday(i).String()[:3]
					entry.Weekdays = append(entry.Weekdays, name)
				}
			}
		case domain.SchedulingMonthly:
			entry.Days = g.Scheduling.Monthly.Days
		case domain.SchedulingDisabled:
			entry.Cadence = string(domain.SchedulingDisabled)
		}
		schema.Goals = append(schema.Goals, entry)
	}
	return schema
}
