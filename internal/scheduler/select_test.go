package scheduler

import (
	"testing"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 16, hour, min, 0, 0, time.Local)
}

// freshState can always schedule (LastComplete unset).
func freshState() State {
	return DefaultState()
}

func timedGoal(id int64, start, end domain.TimeNumber) *domain.Goal {
	return testutil.NewTestGoal(id, "goal", at(9, 0).AddDate(0, 0, -7),
		testutil.WithTrainingTime(domain.RangeTime(start, end)))
}

func autoGoal(id int64) *domain.Goal {
	return testutil.NewTestGoal(id, "goal", at(9, 0).AddDate(0, 0, -7))
}

func TestFindNextSchedule_ThrottledAfterCompletion(t *testing.T) {
	s := freshState()
	s.LastComplete = domain.Timestamp(at(10, 0))

	got := FindNextSchedule(s, []*domain.Goal{autoGoal(1)}, at(10, 5))
	assert.Nil(t, got, "no new selection within the schedule interval")

	got = FindNextSchedule(s, []*domain.Goal{autoGoal(1)}, at(10, 21))
	assert.NotNil(t, got, "selection allowed once the interval has elapsed")
}

func TestFindNextSchedule_NeverPicksFreeGoals(t *testing.T) {
	now := at(10, 0)
	done := testutil.NewTestGoal(1, "goal", at(9, 0).AddDate(0, 0, -7),
		testutil.WithLastDone(now))
	disabled := autoGoal(2)
	disabled.Scheduling.Type = domain.SchedulingDisabled
	later := timedGoal(3, 2000, 2100)

	got := FindNextSchedule(freshState(), []*domain.Goal{done, disabled, later}, now)
	assert.Nil(t, got, "free and due-later goals are not selectable")
}

func TestFindNextSchedule_DueNowShortestWindowFirst(t *testing.T) {
	now := at(10, 0)
	long := timedGoal(1, 800, 1800)
	short := timedGoal(2, 945, 1015)
	medium := timedGoal(3, 900, 1200)

	got := FindNextSchedule(freshState(), []*domain.Goal{long, short, medium}, now)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID, "shortest due-now window wins")
	assert.Equal(t, domain.Timestamp(now), got.ScheduledOn)
}

func TestFindNextSchedule_DueNowEqualWindowsTieBreakByID(t *testing.T) {
	now := at(10, 0)
	b := timedGoal(5, 930, 1030)
	a := timedGoal(2, 900, 1000)

	got := FindNextSchedule(freshState(), []*domain.Goal{b, a}, now)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID, "equal durations fall back to lowest goal ID")
}

func TestFindNextSchedule_DueNowBeatsWasDueAndAuto(t *testing.T) {
	now := at(10, 0)
	missed := timedGoal(1, 600, 700)
	anytime := autoGoal(2)
	active := timedGoal(3, 900, 1100)

	got := FindNextSchedule(freshState(), []*domain.Goal{missed, anytime, active}, now)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.ID)
}

func TestFindNextSchedule_WasDueEarliestStartFirst(t *testing.T) {
	now := at(12, 0)
	lateMorning := timedGoal(1, 900, 1000)
	earlyMorning := timedGoal(2, 600, 700)

	got := FindNextSchedule(freshState(), []*domain.Goal{lateMorning, earlyMorning}, now)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID, "earliest missed window first")
}

func TestFindNextSchedule_WasDueBeatsAuto(t *testing.T) {
	now := at(12, 0)
	missed := timedGoal(1, 600, 700)
	anytime := autoGoal(2)

	got := FindNextSchedule(freshState(), []*domain.Goal{missed, anytime}, now)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestFindNextSchedule_ReschedOverrideMovesGoalToAutoBucket(t *testing.T) {
	now := at(12, 0)
	g := timedGoal(1, 600, 700)
	g.Resched = &domain.Resched{Date: domain.DateOf(now), TrainingTime: domain.AutoTime()}

	got := FindNextSchedule(freshState(), []*domain.Goal{g}, now)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID, "rescheduled-to-auto goal is still selectable")
}

// Four goals with empty defaults must be handed out in creation order,
// then exhaust to nil once every goal has been done today.
func TestFindNextSchedule_RoundRobinScenario(t *testing.T) {
	now := at(10, 0)
	goals := []*domain.Goal{
		domain.NewGoal(1, "a", now), domain.NewGoal(2, "b", now),
		domain.NewGoal(3, "c", now), domain.NewGoal(4, "d", now),
	}
	s := freshState()

	var order []int64
	for i := 0; i < 4; i++ {
		got := FindNextSchedule(s, goals, now)
		require.NotNil(t, got, "round %d", i)
		order = append(order, got.ID)
		for _, g := range goals {
			if g.ID == got.ID {
				g.UpdatedTime = domain.Timestamp(now)
			}
		}
		now = now.Add(time.Minute)
	}

	assert.Equal(t, []int64{1, 2, 3, 4}, order)
	assert.Nil(t, FindNextSchedule(s, goals, now), "auto bucket exhausted")
}

// 2026-03-16 is a Monday.
func TestFindNextSchedule_CadenceFlagsRespected(t *testing.T) {
	now := at(10, 0)
	weekly := testutil.NewTestGoal(1, "gym", now.AddDate(0, 0, -14),
		testutil.WithWeekly(time.Monday))
	monthly := testutil.NewTestGoal(2, "bills", now.AddDate(0, 0, -45),
		testutil.WithMonthly(17))
	resting := testutil.NewTestGoal(3, "run", now.AddDate(0, 0, -14),
		testutil.WithDailyInterval(3), testutil.WithLastDone(now.AddDate(0, 0, -1)))

	got := FindNextSchedule(freshState(), []*domain.Goal{weekly, monthly, resting}, now)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID, "the monthly goal waits for the 17th")
}

func TestHasScheduledGoal(t *testing.T) {
	s := freshState()
	assert.False(t, HasScheduledGoal(s, at(10, 0)), "nothing selected")

	s.Goal = &SelectedGoal{ID: 1, ScheduledOn: domain.Timestamp(at(9, 0))}
	assert.True(t, HasScheduledGoal(s, at(10, 0)))

	s.Goal.ScheduledOn = domain.Timestamp(at(9, 0).AddDate(0, 0, -1))
	assert.False(t, HasScheduledGoal(s, at(10, 0)), "yesterday's selection is stale")
}

func TestInNoDisturbMode(t *testing.T) {
	s := freshState()
	assert.False(t, InNoDisturbMode(s, at(10, 0)))

	s.NoDisturbUntil = domain.Timestamp(at(11, 0))
	assert.True(t, InNoDisturbMode(s, at(10, 59)))
	assert.False(t, InNoDisturbMode(s, at(11, 0)))
}

func TestNextScheduleInterval(t *testing.T) {
	s := freshState()
	s.DailyLimitMin = 120

	g1 := testutil.NewTestGoal(1, "goal", at(9, 0).AddDate(0, 0, -7), testutil.WithDuration(30))
	g2 := testutil.NewTestGoal(2, "goal", at(9, 0).AddDate(0, 0, -7), testutil.WithDuration(30))

	// 12:00 → 600 minutes to the 22:00 cutoff; 120/30 = 4 sessions.
	min, ok := NextScheduleInterval(s, []*domain.Goal{g1, g2}, at(12, 0))
	require.True(t, ok)
	assert.Equal(t, 150, min)
}

func TestNextScheduleInterval_GuardsWhenNothingDue(t *testing.T) {
	s := freshState()
	now := at(12, 0)

	_, ok := NextScheduleInterval(s, nil, now)
	assert.False(t, ok, "no goals at all")

	done := testutil.NewTestGoal(1, "goal", at(9, 0).AddDate(0, 0, -7),
		testutil.WithLastDone(now))
	_, ok = NextScheduleInterval(s, []*domain.Goal{done}, now)
	assert.False(t, ok, "everything completed today")

	late := autoGoal(2)
	_, ok = NextScheduleInterval(s, []*domain.Goal{late}, at(23, 0))
	assert.False(t, ok, "past the end-of-day cutoff")
}

func TestNextScheduleInterval_AtLeastOneSession(t *testing.T) {
	s := freshState()
	s.DailyLimitMin = 10
	g := testutil.NewTestGoal(1, "goal", at(9, 0).AddDate(0, 0, -7), testutil.WithDuration(60))

	// Budget fits less than one average session; clamp to one.
	min, ok := NextScheduleInterval(s, []*domain.Goal{g}, at(21, 0))
	require.True(t, ok)
	assert.Equal(t, 60, min)
}
