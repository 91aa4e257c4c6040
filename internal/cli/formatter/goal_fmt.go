package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/repository"
	"github.com/catchsup/catchsup/internal/store"
)

// ClockLabel renders an HHMM time number as "18:30".
func ClockLabel(n domain.TimeNumber) string {
	return fmt.Sprintf("%02d:%02d", int(n)/100, int(n)%100)
}

// TrainingTimeLabel renders a training time the way the goal list
// shows it.
func TrainingTimeLabel(tt domain.TrainingTime) string {
	switch tt.Kind {
	case domain.TimeAuto, "":
		return "any time"
	case domain.TimeExact:
		return ClockLabel(tt.At)
	case domain.TimeNamed:
		start, end := domain.NamedRangeBounds(tt.Name)
		return fmt.Sprintf("%s (%s to %s)", tt.Name, ClockLabel(start), ClockLabel(end))
	case domain.TimeRange:
		return fmt.Sprintf("%s to %s", ClockLabel(tt.Start), ClockLabel(tt.End))
	default:
		panic("invariant violation: unhandled training time kind")
	}
}

// ScheduleLabel renders the cadence column of the goal list.
func ScheduleLabel(s domain.Scheduling) string {
	switch s.Type {
	case domain.SchedulingDaily:
		if s.Daily.Interval <= 1 {
			return "daily"
		}
		return fmt.Sprintf("every %.1f days", s.Daily.Interval)
	case domain.SchedulingWeekly:
		var days []string
		for i, on := range s.Weekly.Weekdays {
			if on {
				days = append(days, time.Weekday(i).String()[:3])
			}
		}
		return "weekly " + strings.Join(days, ",")
	case domain.SchedulingMonthly:
		parts := make([]string, len(s.Monthly.Days))
		for i, d := range s.Monthly.Days {
			parts[i] = fmt.Sprintf("%d", d)
		}
		return "monthly " + strings.Join(parts, ",")
	case domain.SchedulingDisabled:
		return "disabled"
	default:
		panic("invariant violation: unhandled scheduling type")
	}
}

// FormatGoalList renders the goal table with per-goal due state.
func FormatGoalList(goals []*domain.Goal, now time.Time) string {
	if len(goals) == 0 {
		return Dim("No goals yet. Add one with: catchsup goal add") + "\n"
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		label := TrainingTimeLabel(g.ActiveTrainingTime(now))
		if g.Resched != nil && g.Resched.Date == domain.DateOf(now) {
			label += Dim(" (today only)")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", g.ID),
			g.Title,
			ScheduleLabel(g.Scheduling),
			label,
			fmt.Sprintf("%.0f min", g.TrainingDuration),
			DueIndicator(g.CheckDue(now)),
		})
	}
	return RenderTable(
		[]string{"ID", "Goal", "Cadence", "When", "Duration", "Due"},
		rows,
	)
}

// FormatGoal renders the detail view of a single goal.
func FormatGoal(g *domain.Goal, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header(fmt.Sprintf("Goal %d: %s", g.ID, g.Title)))
	if g.Description != "" {
		fmt.Fprintf(&b, "%s\n", g.Description)
	}
	fmt.Fprintf(&b, "Cadence:   %s\n", ScheduleLabel(g.Scheduling))
	fmt.Fprintf(&b, "When:      %s\n", TrainingTimeLabel(g.ActiveTrainingTime(now)))
	fmt.Fprintf(&b, "Duration:  %.1f min (bounds %.0f to %.0f)\n",
		g.TrainingDuration, g.DurationAdjust.Min, g.DurationAdjust.Max)
	if g.UpdatedTime == 0 {
		fmt.Fprintf(&b, "Last done: %s\n", Dim("never"))
	} else {
		fmt.Fprintf(&b, "Last done: %s\n", g.UpdatedTime.Time().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "State:     %s\n", DueIndicator(g.CheckDue(now)))
	return b.String()
}

// FormatStatus renders the overview shown by "catchsup status".
func FormatStatus(st *store.State, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header("Catchsup status"))
	fmt.Fprintf(&b, "Overall: %s\n", DueIndicator(domain.AggregateDue(st.Goals, now)))

	if at := st.ActiveTraining; at != nil {
		g := st.GoalByID(at.GoalID)
		title := fmt.Sprintf("goal %d", at.GoalID)
		if g != nil {
			title = g.Title
		}
		elapsed := now.Sub(at.StartTime.Time()).Minutes()
		fmt.Fprintf(&b, "Training: %s (%s, %.0f min elapsed)\n",
			Bold(title), at.StartTime.Time().Format("15:04"), elapsed)
	}
	if sel := st.Scheduler.Goal; sel != nil {
		if g := st.GoalByID(sel.ID); g != nil {
			fmt.Fprintf(&b, "Up next:  %s\n", Bold(g.Title))
		}
	}
	if until := st.Scheduler.NoDisturbUntil; until > 0 && now.Before(until.Time()) {
		fmt.Fprintf(&b, "Quiet:    until %s\n", until.Time().Format("15:04"))
	}

	b.WriteString("\n")
	b.WriteString(FormatGoalList(st.Goals, now))
	return b.String()
}

// FormatHistory renders archived training logs, newest first.
func FormatHistory(logs []*domain.TrainingLog, goals []*domain.Goal) string {
	if len(logs) == 0 {
		return Dim("No training sessions recorded.") + "\n"
	}
	titles := make(map[int64]string, len(goals))
	for _, g := range goals {
		titles[g.ID] = g.Title
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		title := titles[l.GoalID]
		if title == "" {
			title = Dim(fmt.Sprintf("goal %d (deleted)", l.GoalID))
		}
		notes := l.Notes
		if len(notes) > 40 {
			notes = notes[:37] + "..."
		}
		rows = append(rows, []string{
			l.StartTime.Time().Format("2006-01-02 15:04"),
			title,
			fmt.Sprintf("%.0f min", l.ElapsedMin),
			notes,
		})
	}
	return RenderTable([]string{"Started", "Goal", "Elapsed", "Notes"}, rows)
}

// FormatStats renders per-goal session totals.
func FormatStats(stats []repository.GoalStats, goals []*domain.Goal) string {
	if len(stats) == 0 {
		return Dim("No training sessions recorded.") + "\n"
	}
	titles := make(map[int64]string, len(goals))
	for _, g := range goals {
		titles[g.ID] = g.Title
	}
	sorted := make([]repository.GoalStats, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TotalMin > sorted[j].TotalMin })

	rows := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		title := titles[s.GoalID]
		if title == "" {
			title = Dim(fmt.Sprintf("goal %d (deleted)", s.GoalID))
		}
		rows = append(rows, []string{
			title,
			fmt.Sprintf("%d", s.Sessions),
			fmt.Sprintf("%.0f min", s.TotalMin),
			s.LastStart.Time().Format("2006-01-02"),
		})
	}
	return RenderTable([]string{"Goal", "Sessions", "Total", "Last"}, rows)
}
