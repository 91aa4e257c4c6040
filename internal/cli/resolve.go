package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/catchsup/catchsup/internal/domain"
)

// resolveGoal finds a goal by numeric ID or by unique title prefix.
func resolveGoal(app *App, arg string) (*domain.Goal, error) {
	st := app.Store.GetState()

	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if g := st.GoalByID(id); g != nil {
			return g, nil
		}
		return nil, fmt.Errorf("no goal with id %d", id)
	}

	var matches []*domain.Goal
	needle := strings.ToLower(arg)
	for _, g := range st.Goals {
		if strings.HasPrefix(strings.ToLower(g.Title), needle) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no goal matching %q", arg)
	case 1:
		return matches[0], nil
	default:
		titles := make([]string, len(matches))
		for i, g := range matches {
			titles[i] = g.Title
		}
		return nil, fmt.Errorf("%q is ambiguous: %s", arg, strings.Join(titles, ", "))
	}
}

func parseTrainingTime(s string) (domain.TrainingTime, error) {
	return domain.ParseTrainingTime(s)
}

// parseWeekdays adapts the comma-separated --weekdays flag.
func parseWeekdays(s string) ([7]bool, error) {
	return domain.ParseWeekdays(strings.Split(s, ","))
}

// parseMonthDays adapts the comma-separated --days flag.
func parseMonthDays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid day of month %q", part)
		}
		days = append(days, d)
	}
	return domain.ParseMonthDays(days)
}
