package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripJSON[T any](t *testing.T, v T) T {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// at builds a timestamp on the given date at the given wall time.
func at(date DateNumber, hour, min int) time.Time {
	return time.Date(date.Year(), time.Month(date.Month()), date.Day(), hour, min, 0, 0, time.Local)
}

func dailyGoal(interval float64, doneAt time.Time) *Goal {
	g := NewGoal(1, "read", doneAt)
	g.Scheduling.Daily.Interval = interval
	g.UpdatedTime = Timestamp(doneAt)
	return g
}

func TestNewGoal_Defaults(t *testing.T) {
	now := at(20260316, 10, 0)
	g := NewGoal(7, "stretch", now)

	assert.Equal(t, int64(7), g.ID)
	assert.Equal(t, SchedulingDaily, g.Scheduling.Type)
	assert.Equal(t, float64(DefaultDailyInterval), g.Scheduling.Daily.Interval)
	assert.Equal(t, float64(DefaultTrainingDurationMin), g.TrainingDuration)
	assert.True(t, g.TrainingTime.IsAuto())
	assert.Equal(t, UnixTimestamp(0), g.UpdatedTime, "never performed yet")
	assert.Equal(t, DateNumber(20260316), g.LastSkipCheck)
}

func TestGoal_IsDueOnDay_DailyInterval(t *testing.T) {
	done := at(20260310, 9, 0)

	for _, k := range []float64{1, 2, 3, 7} {
		g := dailyGoal(k, done)
		for d := 1; d < int(k); d++ {
			assert.Falsef(t, g.IsDueOnDay(at(DateOf(done).AddDays(d), 23, 59)),
				"interval %v must not be due %d days after completion", k, d)
		}
		assert.Truef(t, g.IsDueOnDay(at(DateOf(done).AddDays(int(k)), 0, 0)),
			"interval %v must be due exactly %v days after, independent of time of day", k, k)
	}
}

func TestGoal_IsDueOnDay_SameDaySuppression(t *testing.T) {
	done := at(20260316, 8, 0)

	types := []func(g *Goal){
		func(g *Goal) { g.Scheduling.Type = SchedulingDaily },
		func(g *Goal) {
			g.Scheduling.Type = SchedulingWeekly
			for i := range g.Scheduling.Weekly.Weekdays {
				g.Scheduling.Weekly.Weekdays[i] = true
			}
		},
		func(g *Goal) {
			g.Scheduling.Type = SchedulingMonthly
			g.Scheduling.Monthly.Days = []int{16}
		},
	}
	for _, configure := range types {
		g := dailyGoal(1, done)
		configure(g)
		assert.False(t, g.IsDueOnDay(at(20260316, 23, 0)),
			"a goal completed today is not due again today, type %s", g.Scheduling.Type)
		if g.Scheduling.Type != SchedulingMonthly {
			assert.True(t, g.IsDueOnDay(at(20260317, 0, 0)))
		}
	}
}

func TestGoal_IsDueOnDay_Weekly(t *testing.T) {
	g := NewGoal(1, "gym", at(20260301, 9, 0))
	g.Scheduling.Type = SchedulingWeekly
	g.Scheduling.Weekly.Weekdays[weekdayIndex(time.Monday)] = true
	g.Scheduling.Weekly.Weekdays[weekdayIndex(time.Thursday)] = true

	assert.True(t, g.IsDueOnDay(at(20260316, 12, 0)))  // Monday
	assert.False(t, g.IsDueOnDay(at(20260317, 12, 0))) // Tuesday
	assert.True(t, g.IsDueOnDay(at(20260319, 12, 0)))  // Thursday
}

func TestGoal_IsDueOnDay_Monthly(t *testing.T) {
	g := NewGoal(1, "bills", at(20260201, 9, 0))
	g.Scheduling.Type = SchedulingMonthly
	g.Scheduling.Monthly.Days = []int{1, 15}

	assert.True(t, g.IsDueOnDay(at(20260301, 12, 0)))
	assert.True(t, g.IsDueOnDay(at(20260315, 12, 0)))
	assert.False(t, g.IsDueOnDay(at(20260316, 12, 0)))
}

func TestGoal_IsDueOnDay_Disabled(t *testing.T) {
	g := NewGoal(1, "paused", at(20260301, 9, 0))
	g.Scheduling.Type = SchedulingDisabled
	assert.False(t, g.IsDueOnDay(at(20260401, 12, 0)))
}

func TestGoal_IsDueOnDay_UnknownTypePanics(t *testing.T) {
	g := NewGoal(1, "broken", at(20260301, 9, 0))
	g.Scheduling.Type = SchedulingType("fortnightly")
	assert.Panics(t, func() { g.IsDueOnDay(at(20260302, 9, 0)) })
}

func TestGoal_NeverPerformedIsDue(t *testing.T) {
	g := NewGoal(1, "new", at(20260316, 9, 0))
	assert.True(t, g.IsDueOnDay(at(20260316, 12, 0)), "UpdatedTime zero means never done")
}

func TestGoal_ActiveTrainingTime_ReschedOverride(t *testing.T) {
	g := NewGoal(1, "read", at(20260316, 9, 0))
	g.TrainingTime = NamedTime(RangeMorning)
	g.Resched = &Resched{Date: 20260316, TrainingTime: ExactTime(2000)}

	assert.Equal(t, ExactTime(2000), g.ActiveTrainingTime(at(20260316, 12, 0)),
		"override applies on its own date")
	assert.Equal(t, NamedTime(RangeMorning), g.ActiveTrainingTime(at(20260317, 12, 0)),
		"override self-expires once the date no longer matches")
	assert.NotNil(t, g.Resched, "override is never cleared, only inert")
}

func TestGoal_CheckDue(t *testing.T) {
	newGoal := func(tt TrainingTime) *Goal {
		g := NewGoal(1, "read", at(20260310, 9, 0))
		g.TrainingTime = tt
		return g
	}

	tests := []struct {
		name string
		goal *Goal
		now  time.Time
		want DueState
	}{
		{"inside window", newGoal(RangeTime(900, 1100)), at(20260316, 10, 0), DueNow},
		{"before window", newGoal(RangeTime(900, 1100)), at(20260316, 8, 0), DueLater},
		{"after window", newGoal(RangeTime(900, 1100)), at(20260316, 12, 0), WasDue},
		{"auto always now when due", newGoal(AutoTime()), at(20260316, 3, 0), DueNow},
		{"wrapped window active", newGoal(RangeTime(2200, 200)), at(20260316, 23, 0), DueNow},
		{"wrapped window pending", newGoal(RangeTime(2200, 200)), at(20260316, 12, 0), DueLater},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.goal.CheckDue(tt.now))
		})
	}

	t.Run("free when completed today", func(t *testing.T) {
		g := newGoal(RangeTime(900, 1100))
		g.UpdatedTime = Timestamp(at(20260316, 9, 30))
		assert.Equal(t, DueFree, g.CheckDue(at(20260316, 10, 0)))
	})
}

func TestGoal_CountDueDays_Shortcuts(t *testing.T) {
	g := NewGoal(1, "read", at(20260301, 9, 0))
	assert.Equal(t, 0, g.CountDueDays(20260316, 20260315), "from > to")
	assert.Equal(t, 1, g.CountDueDays(20260316, 20260316), "from == to")
}

func TestGoal_CountDueDays_Daily(t *testing.T) {
	g := NewGoal(1, "read", at(20260301, 9, 0))
	g.Scheduling.Daily.Interval = 3

	// 9 elapsed days at interval 3, rounded up.
	assert.Equal(t, 3, g.CountDueDays(20260301, 20260310))
	// 7 elapsed days / 3 rounds up to 3.
	assert.Equal(t, 3, g.CountDueDays(20260301, 20260308))
}

func TestGoal_CountDueDays_WeeklyAdditive(t *testing.T) {
	g := NewGoal(1, "gym", at(20260201, 9, 0))
	g.Scheduling.Type = SchedulingWeekly
	g.Scheduling.Weekly.Weekdays[weekdayIndex(time.Monday)] = true
	g.Scheduling.Weekly.Weekdays[weekdayIndex(time.Friday)] = true

	d1, d2, d3 := DateNumber(20260301), DateNumber(20260314), DateNumber(20260331)
	total := g.CountDueDays(d1, d3)
	assert.Equal(t, total, g.CountDueDays(d1, d2)+g.CountDueDays(d2.AddDays(1), d3),
		"weekly counting is additive over adjacent ranges")
	assert.Equal(t, 9, total) // 5 Mondays + 4 Fridays in March 2026
}

func TestGoal_CountDueDays_MonthlyAdditive(t *testing.T) {
	g := NewGoal(1, "bills", at(20260101, 9, 0))
	g.Scheduling.Type = SchedulingMonthly
	g.Scheduling.Monthly.Days = []int{1, 15, 31}

	d1, d2, d3 := DateNumber(20260101), DateNumber(20260220), DateNumber(20260430)
	total := g.CountDueDays(d1, d3)
	assert.Equal(t, total, g.CountDueDays(d1, d2)+g.CountDueDays(d2.AddDays(1), d3))
	// Jan 1/15/31, Feb 1/15, Mar 1/15/31, Apr 1/15.
	assert.Equal(t, 10, total)
}

func TestAdjustPolicy_NeverLeavesRange(t *testing.T) {
	p := AdjustPolicy{Enabled: true, Scale: 2.5, Min: 5, Max: 60}
	v := 15.0
	reps := []int{1, 5, -3, 40, -40, 7, -1, 100, -100}
	for _, r := range reps {
		v = p.Apply(v, r)
		assert.GreaterOrEqual(t, v, p.Min)
		assert.LessOrEqual(t, v, p.Max)
	}
}

func TestAdjustPolicy_DisabledIsNoop(t *testing.T) {
	p := AdjustPolicy{Enabled: false, Scale: 2, Min: 0, Max: 10}
	assert.Equal(t, 55.0, p.Apply(55, 3), "disabled policy ignores bounds and reps")
}

func TestGoal_RecordTraining(t *testing.T) {
	now := at(20260316, 18, 0)
	g := dailyGoal(1, at(20260310, 9, 0))
	g.DurationAdjust = AdjustPolicy{Enabled: true, Scale: 1, Min: 5, Max: 90}
	g.Scheduling.Daily.IntervalAdjust = AdjustPolicy{Enabled: true, Scale: 0.5, Min: 1, Max: 30}
	g.TrainingDuration = 15

	g.RecordTraining(now)

	assert.Equal(t, 16.0, g.TrainingDuration)
	assert.Equal(t, 1.5, g.Scheduling.Daily.Interval)
	assert.Equal(t, Timestamp(now), g.UpdatedTime)
	assert.Equal(t, DateNumber(20260316), g.LastSkipCheck)
	assert.False(t, g.IsDueOnDay(now), "completed today, no longer due")
}

func TestGoal_DeductSkippedTrainingDays(t *testing.T) {
	g := dailyGoal(1, at(20260310, 9, 0))
	g.LastSkipCheck = 20260310
	g.TrainingDuration = 20
	g.DurationAdjust = AdjustPolicy{Enabled: true, Scale: 1, Min: 5, Max: 90}
	g.Scheduling.Daily.Interval = 2
	g.Scheduling.Daily.IntervalAdjust = AdjustPolicy{Enabled: true, Scale: 0.5, Min: 1, Max: 30}

	// Days 11..15 were never checked; until the 16th.
	g.DeductSkippedTrainingDays(20260316)

	// The range 11..15 spans 4 elapsed days at interval 2, so
	// ceil(4/2)=2 missed reps.
	assert.Equal(t, 18.0, g.TrainingDuration)
	assert.Equal(t, 1.0, g.Scheduling.Daily.Interval)
	assert.Equal(t, DateNumber(20260315), g.LastSkipCheck)
}

func TestGoal_DeductSkippedTrainingDays_NoopWhenCurrent(t *testing.T) {
	g := dailyGoal(1, at(20260315, 9, 0))
	g.LastSkipCheck = 20260316
	g.TrainingDuration = 20

	g.DeductSkippedTrainingDays(20260316)
	g.DeductSkippedTrainingDays(20260315)

	assert.Equal(t, 20.0, g.TrainingDuration)
	assert.Equal(t, DateNumber(20260316), g.LastSkipCheck)
}

func TestAggregateDue_Priority(t *testing.T) {
	now := at(20260316, 10, 0)
	free := NewGoal(1, "done", now)
	free.UpdatedTime = Timestamp(now)
	later := NewGoal(2, "later", at(20260310, 9, 0))
	later.TrainingTime = RangeTime(2000, 2100)
	was := NewGoal(3, "missed", at(20260310, 9, 0))
	was.TrainingTime = RangeTime(600, 700)
	due := NewGoal(4, "now", at(20260310, 9, 0))
	due.TrainingTime = RangeTime(900, 1100)

	assert.Equal(t, DueFree, AggregateDue([]*Goal{free}, now))
	assert.Equal(t, DueLater, AggregateDue([]*Goal{free, later}, now))
	assert.Equal(t, WasDue, AggregateDue([]*Goal{free, later, was}, now))
	assert.Equal(t, DueNow, AggregateDue([]*Goal{free, later, was, due}, now))
	assert.Equal(t, DueFree, AggregateDue(nil, now))
}

func TestGoal_JSONRoundTrip(t *testing.T) {
	g := NewGoal(3, "read", at(20260316, 9, 0))
	g.Description = "15 pages"
	g.TrainingTime = RangeTime(2200, 200)
	g.Resched = &Resched{Date: 20260316, TrainingTime: ExactTime(2030)}
	g.Scheduling.Weekly.Weekdays[2] = true
	g.Scheduling.Monthly.Days = []int{1, 15}
	g.UpdatedTime = Timestamp(at(20260315, 21, 0))

	got := roundTripJSON(t, g)
	assert.Equal(t, g, got)
}
