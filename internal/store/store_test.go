package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededState(t *testing.T) *State {
	t.Helper()
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.Local)
	s := DefaultState()
	g := domain.NewGoal(1, "read", now)
	g.TrainingTime = domain.RangeTime(2200, 200)
	g.Resched = &domain.Resched{Date: 20260316, TrainingTime: domain.ExactTime(2030)}
	s.Goals = append(s.Goals, g)
	s.NextGoalID = 2
	s.TrainingLogs = append(s.TrainingLogs, &domain.TrainingLog{
		ID: "log-1", GoalID: 1, StartTime: domain.Timestamp(now), ElapsedMin: 14.5, Notes: "ok",
	})
	s.ActiveTraining = &domain.ActiveTraining{GoalID: 1, StartTime: domain.Timestamp(now)}
	s.Scheduler.Goal = &scheduler.SelectedGoal{ID: 1, ScheduledOn: domain.Timestamp(now)}
	return s
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	s := seededState(t)

	blob, err := Encode(s)
	require.NoError(t, err)
	got, err := Decode(blob)
	require.NoError(t, err)

	assert.Equal(t, s, got)
}

func TestDecode_RejectsCorruptBlobsWholesale(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{{{"},
		{"missing goals", `{"trainingLogs":[]}`},
		{"missing trainingLogs", `{"goals":[]}`},
		{"goals not an array", `{"goals":42,"trainingLogs":[]}`},
		{"trainingLogs not an array", `{"goals":[],"trainingLogs":{"a":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.blob))
			assert.ErrorIs(t, err, ErrCorruptState)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	p := &FilePersister{Path: filepath.Join(dir, "state.json")}

	t.Run("absent state yields default silently", func(t *testing.T) {
		s, err := LoadOrDefault(p)
		require.NoError(t, err)
		assert.Equal(t, DefaultState(), s)
	})

	t.Run("saved state round-trips", func(t *testing.T) {
		want := seededState(t)
		require.NoError(t, Save(p, want))
		got, err := LoadOrDefault(p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("corrupt file falls back to default with explicit error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(p.Path, []byte(`{"oops":true}`), 0644))
		got, err := LoadOrDefault(p)
		assert.ErrorIs(t, err, ErrCorruptState)
		assert.Equal(t, DefaultState(), got, "corrupt data is never partially trusted")
	})
}

func TestFilePersister_KeepsBackup(t *testing.T) {
	dir := t.TempDir()
	p := &FilePersister{Path: filepath.Join(dir, "state.json")}

	require.NoError(t, p.Save([]byte(`{"v":1}`)))
	require.NoError(t, p.Save([]byte(`{"v":2}`)))

	cur, err := os.ReadFile(p.Path)
	require.NoError(t, err)
	bak, err := os.ReadFile(p.Path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(cur))
	assert.Equal(t, `{"v":1}`, string(bak))
}

func TestController_ApplyUpdateVersionsAndIsolates(t *testing.T) {
	c := NewController(seededState(t))
	before := c.GetState()

	after := c.ApplyUpdate(func(s *State) {
		s.Goals[0].Title = "changed"
	})

	assert.Equal(t, before.Version+1, after.Version)
	assert.Equal(t, "read", before.Goals[0].Title, "old snapshot untouched")
	assert.Equal(t, "changed", c.GetState().Goals[0].Title)
}

func TestController_CloneSharesNothing(t *testing.T) {
	c := NewController(seededState(t))
	snap := c.GetState()

	c.ApplyUpdate(func(s *State) {
		s.Goals[0].Resched.TrainingTime = domain.AutoTime()
		s.Goals[0].Scheduling.Monthly.Days = append(s.Goals[0].Scheduling.Monthly.Days, 5)
		s.TrainingLogs[0].Notes = "edited"
		s.ActiveTraining.TimeUp = 99
		s.Scheduler.Goal.ID = 42
		s.Scheduler.NoDisturbChoices[0] = 999
	})

	assert.Equal(t, domain.ExactTime(2030), snap.Goals[0].Resched.TrainingTime)
	assert.Empty(t, snap.Goals[0].Scheduling.Monthly.Days)
	assert.Equal(t, "ok", snap.TrainingLogs[0].Notes)
	assert.Equal(t, domain.UnixTimestamp(0), snap.ActiveTraining.TimeUp)
	assert.Equal(t, int64(1), snap.Scheduler.Goal.ID)
	assert.Equal(t, 20, snap.Scheduler.NoDisturbChoices[0])
}

func TestController_SubscribeAndUnsubscribe(t *testing.T) {
	c := NewController(nil)
	var versions []int
	id := c.Subscribe(func(s *State) { versions = append(versions, s.Version) })

	c.ApplyUpdate(func(*State) {})
	c.ApplyUpdate(func(*State) {})
	c.Unsubscribe(id)
	c.ApplyUpdate(func(*State) {})

	assert.Equal(t, []int{1, 2}, versions)
}

func TestState_GoalByID(t *testing.T) {
	s := seededState(t)
	require.NotNil(t, s.GoalByID(1))
	assert.Nil(t, s.GoalByID(99))
}
