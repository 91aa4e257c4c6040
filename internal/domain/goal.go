package domain

import (
	"fmt"
	"math"
	"time"
)

// AdjustPolicy describes linear auto-adjustment of a numeric goal
// parameter: value += reps*Scale, clamped to [Min, Max].
type AdjustPolicy struct {
	Enabled bool    `json:"enabled"`
	Scale   float64 `json:"scale"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Apply adjusts value by reps repetitions. Disabled policies return
// the value unchanged; the result never leaves [Min, Max].
func (p AdjustPolicy) Apply(value float64, reps int) float64 {
	if !p.Enabled {
		return value
	}
	v := value + float64(reps)*p.Scale
	return math.Min(math.Max(v, p.Min), p.Max)
}

// DailySched configures the daily recurrence branch.
type DailySched struct {
	// Interval is the minimum number of days between sessions.
	// Fractional values accumulate from auto-adjustment.
	Interval       float64      `json:"interval"`
	IntervalAdjust AdjustPolicy `json:"intervalAdjust"`
}

// WeeklySched flags the weekdays a weekly goal is due (Sunday = 0).
type WeeklySched struct {
	Weekdays [7]bool `json:"weekdays"`
}

// MonthlySched flags the days of month a monthly goal is due.
type MonthlySched struct {
	Days []int `json:"days"`
}

// On reports whether the given day of month is flagged.
func (m MonthlySched) On(day int) bool {
	for _, d := range m.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Scheduling holds the recurrence type plus the data for every branch.
// Only the branch named by Type is authoritative; the others are inert
// but retained, so switching type back and forth loses nothing.
type Scheduling struct {
	Type    SchedulingType `json:"type"`
	Daily   DailySched     `json:"daily"`
	Weekly  WeeklySched    `json:"weekly"`
	Monthly MonthlySched   `json:"monthly"`
}

// Resched is a one-shot training-time override valid only while Date
// is the current day. It is never cleared; it simply goes inert once
// the date no longer matches.
type Resched struct {
	Date         DateNumber   `json:"date"`
	TrainingTime TrainingTime `json:"trainingTime"`
}

// Goal is a recurring activity definition. Plain data; mutated in
// place by the owning store, serialized as-is.
type Goal struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	CreatedTime UnixTimestamp `json:"createdTime"`
	// UpdatedTime is the timestamp of the last recorded session;
	// zero if the goal has never been performed.
	UpdatedTime UnixTimestamp `json:"updatedTime"`
	// LastSkipCheck is the date through which skip deduction has
	// been applied.
	LastSkipCheck DateNumber `json:"lastSkipCheck"`

	TrainingTime TrainingTime `json:"trainingTime"`
	Resched      *Resched     `json:"resched,omitempty"`

	// TrainingDuration is the nominal session length in minutes.
	TrainingDuration float64      `json:"trainingDuration"`
	DurationAdjust   AdjustPolicy `json:"durationAdjust"`

	Scheduling Scheduling `json:"scheduling"`
}

// Defaults for freshly created goals.
const (
	DefaultTrainingDurationMin = 15
	DefaultDailyInterval       = 1
)

// NewGoal returns a goal with defaulted values: daily every day,
// 15 minutes, any time of day. UpdatedTime stays zero until the first
// session is recorded.
func NewGoal(id int64, title string, now time.Time) *Goal {
	return &Goal{
		ID:               id,
		Title:            title,
		CreatedTime:      Timestamp(now),
		LastSkipCheck:    DateOf(now),
		TrainingTime:     AutoTime(),
		TrainingDuration: DefaultTrainingDurationMin,
		DurationAdjust:   AdjustPolicy{Enabled: true, Scale: 1, Min: 5, Max: 90},
		Scheduling: Scheduling{
			Type:  SchedulingDaily,
			Daily: DailySched{Interval: DefaultDailyInterval, IntervalAdjust: AdjustPolicy{Enabled: true, Scale: 0.1, Min: 1, Max: 30}},
		},
	}
}

// IsDueOnDay reports whether the goal is due on the calendar day of t.
// A goal is never due on the day it was last completed, regardless of
// recurrence type.
func (g *Goal) IsDueOnDay(t time.Time) bool {
	if DateOf(g.UpdatedTime.Time()) == DateOf(t) {
		return false
	}
	switch g.Scheduling.Type {
	case SchedulingWeekly:
		return g.Scheduling.Weekly.Weekdays[weekdayIndex(t.Weekday())]
	case SchedulingMonthly:
		return g.Scheduling.Monthly.On(t.Day())
	case SchedulingDaily:
		elapsed := DaysBetween(DateOf(g.UpdatedTime.Time()), DateOf(t))
		return float64(elapsed) >= g.Scheduling.Daily.Interval
	case SchedulingDisabled:
		return false
	default:
		panic(fmt.Sprintf("invariant violation: unknown scheduling type %q", g.Scheduling.Type))
	}
}

// ActiveTrainingTime resolves the effective training time at t: the
// reschedule override when its date is today, the configured training
// time otherwise.
func (g *Goal) ActiveTrainingTime(t time.Time) TrainingTime {
	if g.Resched != nil && g.Resched.Date == DateOf(t) {
		return g.Resched.TrainingTime
	}
	return g.TrainingTime
}

// IsDueNow reports whether the goal is due on the day of t and t is
// inside its training window.
func (g *Goal) IsDueNow(t time.Time) bool {
	return g.IsDueOnDay(t) && g.ActiveTrainingTime(t).InRange(t)
}

// CheckDue classifies the goal at instant t.
func (g *Goal) CheckDue(t time.Time) DueState {
	if !g.IsDueOnDay(t) {
		return DueFree
	}
	tt := g.ActiveTrainingTime(t)
	if tt.InRange(t) {
		return DueNow
	}
	// With a wrapped range the end boundary lands on the next day,
	// so being numerically "past" the start time alone does not
	// mean the window is over.
	start, end := tt.WindowFor(t)
	if t.Before(start) || t.Before(end) {
		return DueLater
	}
	return WasDue
}

// CountDueDays counts the due days in [from, to] inclusive. Daily
// goals divide the elapsed days by the interval, rounding up; weekly
// and monthly goals check their flags day by day.
func (g *Goal) CountDueDays(from, to DateNumber) int {
	if from > to {
		return 0
	}
	if from == to {
		return 1
	}
	switch g.Scheduling.Type {
	case SchedulingDaily:
		interval := g.Scheduling.Daily.Interval
		if interval < 1 {
			interval = 1
		}
		return int(math.Ceil(float64(DaysBetween(from, to)) / interval))
	case SchedulingWeekly:
		n := 0
		for d := from; d <= to; d = d.AddDays(1) {
			if g.Scheduling.Weekly.Weekdays[weekdayIndex(d.Weekday())] {
				n++
			}
		}
		return n
	case SchedulingMonthly:
		n := 0
		for d := from; d <= to; d = d.AddDays(1) {
			if g.Scheduling.Monthly.On(d.Day()) {
				n++
			}
		}
		return n
	case SchedulingDisabled:
		return 0
	default:
		panic(fmt.Sprintf("invariant violation: unknown scheduling type %q", g.Scheduling.Type))
	}
}

// DeductSkippedTrainingDays catches LastSkipCheck up to the day before
// until, regressing duration (and the daily interval) by one
// repetition per due day that was missed in between. No-op when the
// goal has already been checked through until.
func (g *Goal) DeductSkippedTrainingDays(until DateNumber) {
	if g.LastSkipCheck >= until {
		return
	}
	missed := g.CountDueDays(g.LastSkipCheck.AddDays(1), until.AddDays(-1))
	if missed > 0 {
		g.AdjustDuration(-missed)
		if g.Scheduling.Type == SchedulingDaily {
			g.AdjustDailyInterval(-missed)
		}
	}
	g.LastSkipCheck = until.AddDays(-1)
}

// AdjustDuration applies reps repetitions of duration auto-adjustment.
func (g *Goal) AdjustDuration(reps int) {
	g.TrainingDuration = g.DurationAdjust.Apply(g.TrainingDuration, reps)
}

// AdjustDailyInterval applies reps repetitions of daily-interval
// auto-adjustment. Inert branches are adjusted too; they only matter
// once the goal is switched back to daily.
func (g *Goal) AdjustDailyInterval(reps int) {
	g.Scheduling.Daily.Interval = g.Scheduling.Daily.IntervalAdjust.Apply(g.Scheduling.Daily.Interval, reps)
}

// RecordTraining is the success feedback path: completing a session
// nudges duration and the daily interval upward within their bounds
// and stamps the goal as done today.
func (g *Goal) RecordTraining(now time.Time) {
	g.AdjustDuration(1)
	g.AdjustDailyInterval(1)
	g.UpdatedTime = Timestamp(now)
	g.LastSkipCheck = DateOf(now)
}

// DueStates maps every goal to its due state at t.
func DueStates(goals []*Goal, t time.Time) map[int64]DueState {
	states := make(map[int64]DueState, len(goals))
	for _, g := range goals {
		states[g.ID] = g.CheckDue(t)
	}
	return states
}

// AggregateDue returns the most urgent due state across all goals
// (due-now > was-due > due-later > free), stopping early once nothing
// more urgent is possible.
func AggregateDue(goals []*Goal, t time.Time) DueState {
	best := DueFree
	for _, g := range goals {
		s := g.CheckDue(t)
		if duePriority(s) < duePriority(best) {
			best = s
		}
		if best == DueNow {
			break
		}
	}
	return best
}
