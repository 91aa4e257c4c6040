package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTrainingTime parses the user-facing training-time syntax:
// "auto", a named range such as "evening", a clock time "18:30", or a
// range "18:00-20:00".
func ParseTrainingTime(s string) (TrainingTime, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "auto" || s == "any":
		return AutoTime(), nil
	case isRangeName(s):
		return NamedTime(RangeName(s)), nil
	case strings.Contains(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		start, err := ParseClock(parts[0])
		if err != nil {
			return TrainingTime{}, err
		}
		end, err := ParseClock(parts[1])
		if err != nil {
			return TrainingTime{}, err
		}
		return RangeTime(start, end), nil
	default:
		at, err := ParseClock(s)
		if err != nil {
			return TrainingTime{}, err
		}
		return ExactTime(at), nil
	}
}

// TrainingTimeSyntax renders a training time back into the parseable
// syntax, the inverse of ParseTrainingTime. Auto renders as "".
func TrainingTimeSyntax(tt TrainingTime) string {
	switch tt.Kind {
	case TimeAuto:
		return ""
	case TimeExact:
		return clockSyntax(tt.At)
	case TimeNamed:
		return string(tt.Name)
	case TimeRange:
		return clockSyntax(tt.Start) + "-" + clockSyntax(tt.End)
	default:
		panic("invariant violation: unhandled training time kind")
	}
}

func clockSyntax(n TimeNumber) string {
	return fmt.Sprintf("%02d:%02d", int(n)/100, int(n)%100)
}

func isRangeName(s string) bool {
	switch RangeName(s) {
	case RangeMorning, RangeForenoon, RangeNoon,
		RangeAfternoon, RangeEvening, RangeNight:
		return true
	}
	return false
}

// ParseClock parses "18:30" or "1830" into a TimeNumber.
func ParseClock(s string) (TimeNumber, error) {
	s = strings.TrimSpace(s)
	raw := strings.ReplaceAll(s, ":", "")
	if len(raw) == 3 {
		raw = "0" + raw
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	hour, min := n/100, n%100
	if hour > 23 || min > 59 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return TimeNumber(n), nil
}

// ParseWeekdays parses weekday names like "mon,wed,fri" into the
// weekly mask. Full names are accepted too.
func ParseWeekdays(names []string) ([7]bool, error) {
	var mask [7]bool
	index := map[string]int{
		"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
	}
	for _, name := range names {
		key := strings.TrimSpace(strings.ToLower(name))
		if len(key) > 3 {
			key = key[:3]
		}
		idx, ok := index[key]
		if !ok {
			return mask, fmt.Errorf("invalid weekday %q", name)
		}
		mask[idx] = true
	}
	return mask, nil
}

// ParseMonthDays validates a list of days of the month.
func ParseMonthDays(days []int) ([]int, error) {
	for _, d := range days {
		if d < 1 || d > 31 {
			return nil, fmt.Errorf("invalid day of month %d", d)
		}
	}
	return days, nil
}
