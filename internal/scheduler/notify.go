package scheduler

import (
	"time"

	"github.com/catchsup/catchsup/internal/domain"
)

// Notification cadence. Start ("do your goal") reminders ramp from a
// long initial gap down to near-continuous as the notification count
// approaches notifyRampCount. Stop ("time's up") reminders use a
// shorter ramp of their own.
const (
	notifyStartMax = 15 * time.Minute
	notifyStartMin = 5 * time.Second
	notifyStopMax  = 5 * time.Minute
	notifyStopMin  = 30 * time.Second

	notifyRampCount = 7

	// notifyCountReset soft-resets the counter so an ignored goal
	// eventually drops back to the slow cadence.
	notifyCountReset = 25
)

// NotifyStartInterval returns the delay before the next pre-session
// reminder given how many notifications have already fired.
func NotifyStartInterval(count int) time.Duration {
	return rampedInterval(notifyStartMax, notifyStartMin, count)
}

// NotifyStopInterval returns the delay before the next "stop now"
// reminder.
func NotifyStopInterval(count int) time.Duration {
	return rampedInterval(notifyStopMax, notifyStopMin, count)
}

// rampedInterval interpolates linearly from max down to min as count
// approaches notifyRampCount.
func rampedInterval(max, min time.Duration, count int) time.Duration {
	if count < 0 {
		count = 0
	}
	if count >= notifyRampCount {
		return min
	}
	frac := float64(count) / float64(notifyRampCount)
	return max - time.Duration(frac*float64(max-min))
}

// CanNotifyStart reports whether the next pre-session reminder is due.
func CanNotifyStart(s State, now time.Time) bool {
	return now.Sub(s.LastNotify.Time()) >= NotifyStartInterval(s.NotificationCount)
}

// CanNotifyStop reports whether the next "stop now" reminder is due.
func CanNotifyStop(s State, now time.Time) bool {
	return now.Sub(s.LastNotify.Time()) >= NotifyStopInterval(s.NotificationCount)
}

// TouchNotification records that a notification fired: bumps the
// counter (soft-reset once it exceeds notifyCountReset) and stamps
// LastNotify.
func TouchNotification(s *State, now time.Time) {
	s.NotificationCount++
	if s.NotificationCount > notifyCountReset {
		s.NotificationCount = 0
	}
	s.LastNotify = domain.Timestamp(now)
}
