package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
)

// endOfDayCutoff is the wall-clock time after which no further
// sessions are planned for the day.
const endOfDayCutoff = 22 // 22:00

// FindNextSchedule picks at most one goal to promote. Priority:
//
//  1. due-now goals with a concrete time window, shortest window
//     first (finish quick obligations before long ones);
//  2. was-due goals, earliest missed window start first;
//  3. any-time ("auto") goals, least recently done first.
//
// Every ordering uses goal ID ascending as an explicit secondary key;
// selection never depends on sort stability. Returns nil when
// throttled by CanScheduleNext or when nothing is due.
func FindNextSchedule(s State, goals []*domain.Goal, now time.Time) *SelectedGoal {
	if !CanScheduleNext(s, now) {
		return nil
	}

	var dueNow, wasDue, auto []*domain.Goal
	for _, g := range goals {
		state := g.CheckDue(now)
		if state != domain.DueNow && state != domain.WasDue {
			continue
		}
		switch {
		case g.ActiveTrainingTime(now).IsAuto():
			auto = append(auto, g)
		case state == domain.DueNow:
			dueNow = append(dueNow, g)
		default:
			wasDue = append(wasDue, g)
		}
	}

	var pick *domain.Goal
	switch {
	case len(dueNow) > 0:
		sort.Slice(dueNow, func(i, j int) bool {
			a, b := dueNow[i], dueNow[j]
			da, db := a.ActiveTrainingTime(now).DurationMin(), b.ActiveTrainingTime(now).DurationMin()
			if da != db {
				return da < db
			}
			return a.ID < b.ID
		})
		pick = dueNow[0]
	case len(wasDue) > 0:
		sort.Slice(wasDue, func(i, j int) bool {
			a, b := wasDue[i], wasDue[j]
			sa, sb := a.ActiveTrainingTime(now).StartMinutes(), b.ActiveTrainingTime(now).StartMinutes()
			if sa != sb {
				return sa < sb
			}
			return a.ID < b.ID
		})
		pick = wasDue[0]
	case len(auto) > 0:
		sort.Slice(auto, func(i, j int) bool {
			a, b := auto[i], auto[j]
			if a.UpdatedTime != b.UpdatedTime {
				return a.UpdatedTime < b.UpdatedTime
			}
			return a.ID < b.ID
		})
		pick = auto[0]
	default:
		return nil
	}

	return &SelectedGoal{ID: pick.ID, ScheduledOn: domain.Timestamp(now)}
}

// NextScheduleInterval computes the delay in minutes before the next
// selection attempt after a completion: the time remaining until the
// end-of-day cutoff spread over the sessions that still fit in the
// daily time budget. ok is false when no goal is due today (callers
// treat that as "no rescheduling needed") or the cutoff has passed.
func NextScheduleInterval(s State, goals []*domain.Goal, now time.Time) (minutes int, ok bool) {
	var totalDuration float64
	var due int
	for _, g := range goals {
		if g.IsDueOnDay(now) {
			due++
			totalDuration += g.TrainingDuration
		}
	}
	if due == 0 || totalDuration <= 0 {
		return 0, false
	}

	cutoff := domain.DateOf(now).Time().Add(endOfDayCutoff * time.Hour)
	remaining := cutoff.Sub(now).Minutes()
	if remaining <= 0 {
		return 0, false
	}

	avg := totalDuration / float64(due)
	sessions := float64(s.DailyLimitMin) / avg
	if sessions < 1 {
		sessions = 1
	}
	return int(math.Ceil(remaining / sessions)), true
}
