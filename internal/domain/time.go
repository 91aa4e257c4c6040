package domain

import (
	"fmt"
	"time"
)

// DateNumber is a calendar date encoded as a YYYYMMDD integer
// (20260315 = March 15th 2026). The encoding sorts chronologically,
// but day arithmetic must go through real calendar math.
type DateNumber int

// UnixTimestamp is a point in time in epoch seconds.
type UnixTimestamp int64

// TimeNumber is a wall-clock time of day encoded as an HHMM integer
// (930 = 09:30, 2215 = 22:15).
type TimeNumber int

// DateOf converts a time to its DateNumber in the time's location.
func DateOf(t time.Time) DateNumber {
	return DateNumber(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// TimeOf converts a time to its TimeNumber of day.
func TimeOf(t time.Time) TimeNumber {
	return TimeNumber(t.Hour()*100 + t.Minute())
}

// Timestamp converts a time to epoch seconds.
func Timestamp(t time.Time) UnixTimestamp {
	return UnixTimestamp(t.Unix())
}

// Time converts the timestamp back to a local time.Time.
func (ts UnixTimestamp) Time() time.Time {
	return time.Unix(int64(ts), 0)
}

// Time returns local midnight of the date.
func (d DateNumber) Time() time.Time {
	return time.Date(d.Year(), time.Month(d.Month()), d.Day(), 0, 0, 0, 0, time.Local)
}

func (d DateNumber) Year() int  { return int(d) / 10000 }
func (d DateNumber) Month() int { return int(d) / 100 % 100 }
func (d DateNumber) Day() int   { return int(d) % 100 }

// AddDays shifts the date by n calendar days, rolling over month and
// year boundaries (time.Date normalizes out-of-range days).
func (d DateNumber) AddDays(n int) DateNumber {
	t := time.Date(d.Year(), time.Month(d.Month()), d.Day()+n, 0, 0, 0, 0, time.Local)
	return DateOf(t)
}

// Weekday returns the weekday of the date.
func (d DateNumber) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysBetween returns the number of calendar days from a to b
// (negative if b is before a).
func DaysBetween(a, b DateNumber) int {
	// Round to cope with DST days that are not exactly 24h long.
	h := b.Time().Sub(a.Time()).Hours()
	if h >= 0 {
		return int(h/24 + 0.5)
	}
	return -int(-h/24 + 0.5)
}

// Minutes returns the minute of day represented by the time number.
func (n TimeNumber) Minutes() int {
	return int(n)/100*60 + int(n)%100
}

// TimeNumberOfMinutes converts a minute-of-day back to a TimeNumber,
// wrapping past midnight.
func TimeNumberOfMinutes(min int) TimeNumber {
	min = ((min % 1440) + 1440) % 1440
	return TimeNumber(min/60*100 + min%60)
}

// AddMinutes shifts a time number by delta minutes with midnight wrap.
func (n TimeNumber) AddMinutes(delta int) TimeNumber {
	return TimeNumberOfMinutes(n.Minutes() + delta)
}

// TrainingTimeKind discriminates the TrainingTime union.
type TrainingTimeKind string

const (
	// TimeAuto means "any time of day"; the scheduler picks.
	TimeAuto  TrainingTimeKind = "auto"
	TimeExact TrainingTimeKind = "exact"
	TimeNamed TrainingTimeKind = "named"
	TimeRange TrainingTimeKind = "range"
)

// RangeName labels one of the predefined named day ranges.
type RangeName string

const (
	RangeMorning   RangeName = "morning"
	RangeForenoon  RangeName = "forenoon"
	RangeNoon      RangeName = "noon"
	RangeAfternoon RangeName = "afternoon"
	RangeEvening   RangeName = "evening"
	RangeNight     RangeName = "night"
)

// namedRanges is the closed lookup table for named training times.
// Night deliberately wraps midnight.
var namedRanges = map[RangeName][2]TimeNumber{
	RangeMorning:   {600, 900},
	RangeForenoon:  {900, 1200},
	RangeNoon:      {1130, 1330},
	RangeAfternoon: {1300, 1800},
	RangeEvening:   {1800, 2200},
	RangeNight:     {2200, 600},
}

// NamedRangeBounds resolves a range name. An unknown name is a
// programmer error and aborts.
func NamedRangeBounds(name RangeName) (start, end TimeNumber) {
	r, ok := namedRanges[name]
	if !ok {
		panic(fmt.Sprintf("invariant violation: unknown range name %q", name))
	}
	return r[0], r[1]
}

// pointWindowMin widens a single-point training time into a schedulable
// window; a due instant must have a non-zero width.
const pointWindowMin = 5

// TrainingTime is a time-of-day specifier: the "auto" sentinel, an
// exact time, a named range, or an explicit [Start,End] range.
// All branches serialize as plain numbers/strings so the persisted
// form round-trips through JSON losslessly.
type TrainingTime struct {
	Kind  TrainingTimeKind `json:"kind"`
	At    TimeNumber       `json:"at,omitempty"`
	Name  RangeName        `json:"name,omitempty"`
	Start TimeNumber       `json:"start,omitempty"`
	End   TimeNumber       `json:"end,omitempty"`
}

func AutoTime() TrainingTime               { return TrainingTime{Kind: TimeAuto} }
func ExactTime(at TimeNumber) TrainingTime { return TrainingTime{Kind: TimeExact, At: at} }
func NamedTime(name RangeName) TrainingTime {
	return TrainingTime{Kind: TimeNamed, Name: name}
}
func RangeTime(start, end TimeNumber) TrainingTime {
	return TrainingTime{Kind: TimeRange, Start: start, End: end}
}

// IsAuto reports whether this is the any-time sentinel.
func (tt TrainingTime) IsAuto() bool {
	return tt.Kind == TimeAuto || tt.Kind == ""
}

// Bounds returns the raw start/end of the window before point
// widening. Auto spans the whole day.
func (tt TrainingTime) Bounds() (start, end TimeNumber) {
	switch tt.Kind {
	case TimeAuto, "":
		return 0, 2359
	case TimeExact:
		return tt.At, tt.At
	case TimeNamed:
		return NamedRangeBounds(tt.Name)
	case TimeRange:
		return tt.Start, tt.End
	default:
		panic(fmt.Sprintf("invariant violation: unknown training time kind %q", tt.Kind))
	}
}

// window returns the effective start/end with single points widened.
func (tt TrainingTime) window() (start, end TimeNumber) {
	start, end = tt.Bounds()
	if start == end {
		end = end.AddMinutes(pointWindowMin)
	}
	return start, end
}

// InRange reports whether the clock time of t falls inside the window.
// A range whose end precedes its start wraps past midnight: 2200-0200
// covers 23:00 and 00:30 but not 03:00.
func (tt TrainingTime) InRange(t time.Time) bool {
	n := TimeOf(t)
	start, end := tt.window()
	if end >= start {
		return n >= start && n <= end
	}
	return n >= start || n <= end
}

// DurationMin returns the minutes spanned by the window, crossing
// midnight when the range wraps.
func (tt TrainingTime) DurationMin() int {
	start, end := tt.window()
	d := end.Minutes() - start.Minutes()
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// StartMinutes returns the window start as a minute of day.
func (tt TrainingTime) StartMinutes() int {
	start, _ := tt.window()
	return start.Minutes()
}

// WindowFor anchors the window to the calendar day of t and returns
// absolute boundaries. For a wrapped range the end lands on the next
// day.
func (tt TrainingTime) WindowFor(t time.Time) (start, end time.Time) {
	s, e := tt.window()
	day := DateOf(t).Time()
	start = day.Add(time.Duration(s.Minutes()) * time.Minute)
	end = day.Add(time.Duration(e.Minutes()) * time.Minute)
	if e < s {
		end = end.Add(24 * time.Hour)
	}
	return start, end
}
