package domain

import (
	"fmt"
	"time"
)

type SchedulingType string

const (
	SchedulingDaily    SchedulingType = "daily"
	SchedulingWeekly   SchedulingType = "weekly"
	SchedulingMonthly  SchedulingType = "monthly"
	SchedulingDisabled SchedulingType = "disabled"
)

// ValidSchedulingTypes is the canonical set of accepted scheduling type strings.
var ValidSchedulingTypes = map[string]bool{
	"daily": true, "weekly": true, "monthly": true, "disabled": true,
}

// DueState classifies a goal relative to the current instant.
type DueState string

const (
	// DueFree means the goal is not due on this calendar day.
	DueFree DueState = "free"
	// DueLater means due today but the training window has not started.
	DueLater DueState = "due-later"
	// DueNow means the current time is inside the training window.
	DueNow DueState = "due-now"
	// WasDue means the training window for today has already passed.
	WasDue DueState = "was-due"
)

// duePriority orders aggregate due states, most urgent first.
func duePriority(s DueState) int {
	switch s {
	case DueNow:
		return 0
	case WasDue:
		return 1
	case DueLater:
		return 2
	case DueFree:
		return 3
	default:
		panic(fmt.Sprintf("invariant violation: unknown due state %q", s))
	}
}

// weekdayIndex maps a weekday to its flag slot (Sunday = 0). The
// default arm is unreachable unless time.Weekday grows a value.
func weekdayIndex(w time.Weekday) int {
	switch w {
	case time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday:
		return int(w)
	default:
		panic(fmt.Sprintf("invariant violation: unknown weekday %d", w))
	}
}
