package scheduler

import (
	"testing"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNotifyStartInterval_ShrinksWithCount(t *testing.T) {
	assert.Equal(t, 15*time.Minute, NotifyStartInterval(0))

	prev := NotifyStartInterval(0)
	for c := 1; c < notifyRampCount; c++ {
		cur := NotifyStartInterval(c)
		assert.Less(t, cur, prev, "interval must shrink at count %d", c)
		prev = cur
	}

	assert.Equal(t, 5*time.Second, NotifyStartInterval(notifyRampCount))
	assert.Equal(t, 5*time.Second, NotifyStartInterval(100), "floor holds past the ramp")
	assert.Equal(t, 15*time.Minute, NotifyStartInterval(-3), "negative counts clamp to zero")
}

func TestNotifyStopInterval_Bounds(t *testing.T) {
	assert.Equal(t, 5*time.Minute, NotifyStopInterval(0))
	assert.Equal(t, 30*time.Second, NotifyStopInterval(notifyRampCount))
}

func TestCanNotifyStart(t *testing.T) {
	now := at(10, 0)
	s := DefaultState()
	s.LastNotify = domain.Timestamp(now)

	assert.False(t, CanNotifyStart(s, now.Add(time.Minute)))
	assert.True(t, CanNotifyStart(s, now.Add(16*time.Minute)))

	s.NotificationCount = notifyRampCount
	assert.True(t, CanNotifyStart(s, now.Add(6*time.Second)),
		"ramped-up count allows near-immediate renotification")
}

func TestCanNotifyStop(t *testing.T) {
	now := at(10, 0)
	s := DefaultState()
	s.LastNotify = domain.Timestamp(now)

	assert.False(t, CanNotifyStop(s, now.Add(time.Minute)))
	assert.True(t, CanNotifyStop(s, now.Add(6*time.Minute)))
}

func TestTouchNotification(t *testing.T) {
	now := at(10, 0)
	s := DefaultState()

	TouchNotification(&s, now)
	assert.Equal(t, 1, s.NotificationCount)
	assert.Equal(t, domain.Timestamp(now), s.LastNotify)

	s.NotificationCount = notifyCountReset
	TouchNotification(&s, now.Add(time.Minute))
	assert.Equal(t, 0, s.NotificationCount, "counter soft-resets past the cap")
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := DefaultState()
	s.Goal = &SelectedGoal{ID: 3, ScheduledOn: domain.Timestamp(at(9, 0))}
	s.NotificationCount = 4
	s.LastComplete = domain.Timestamp(at(8, 0))
	s.NoDisturbUntil = domain.Timestamp(at(11, 0))

	got := roundTrip(t, s)
	assert.Equal(t, s, got)
}
