package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/events"
	"github.com/catchsup/catchsup/internal/repository"
	"github.com/catchsup/catchsup/internal/scheduler"
	"github.com/catchsup/catchsup/internal/store"
)

var (
	ErrNoActiveSession = errors.New("no active training session")
	ErrSessionActive   = errors.New("a training session is already active")
)

// SessionService drives the training session lifecycle. The archive
// is optional; archive failures are reported but never affect the
// in-memory state transition.
type SessionService struct {
	store   *store.Controller
	bus     *events.Bus
	archive repository.TrainingLogArchive
}

func NewSessionService(st *store.Controller, bus *events.Bus, archive repository.TrainingLogArchive) *SessionService {
	return &SessionService{store: st, bus: bus, archive: archive}
}

// Start begins a session for the goal. Only one session may run at a
// time.
func (s *SessionService) Start(id int64, now time.Time) error {
	var err error
	s.store.ApplyUpdate(func(st *store.State) {
		if st.ActiveTraining != nil {
			err = ErrSessionActive
			return
		}
		if st.GoalByID(id) == nil {
			err = fmt.Errorf("starting session for goal %d: %w", id, ErrGoalNotFound)
			return
		}
		st.ActiveTraining = &domain.ActiveTraining{
			GoalID:    id,
			StartTime: domain.Timestamp(now),
		}
	})
	if err != nil {
		return err
	}
	s.bus.Publish(events.Event{Type: events.GoalStarted, GoalID: id})
	return nil
}

// Silence mutes further time-up nagging for the running session.
func (s *SessionService) Silence() error {
	var err error
	s.store.ApplyUpdate(func(st *store.State) {
		if st.ActiveTraining == nil {
			err = ErrNoActiveSession
			return
		}
		st.ActiveTraining.SilenceNotification = true
	})
	return err
}

// Finish completes the running session: records the training on the
// goal (nudging duration and interval upward), appends a training
// log, stamps the scheduler's completion counters, clears the current
// selection and re-paces the selection throttle over the rest of the
// day. The returned error, if any, is an archive
// failure only; the state transition has already been applied.
func (s *SessionService) Finish(ctx context.Context, notes string, now time.Time) (*domain.TrainingLog, error) {
	var (
		log      *domain.TrainingLog
		goalID   int64
		stateErr error
	)
	s.store.ApplyUpdate(func(st *store.State) {
		at := st.ActiveTraining
		if at == nil {
			stateErr = ErrNoActiveSession
			return
		}
		st.ActiveTraining = nil
		goalID = at.GoalID

		goal := st.GoalByID(at.GoalID)
		if goal == nil {
			// Goal deleted mid-session; nothing to record against.
			return
		}
		goal.RecordTraining(now)

		log = &domain.TrainingLog{
			ID:         uuid.NewString(),
			GoalID:     goal.ID,
			StartTime:  at.StartTime,
			ElapsedMin: now.Sub(at.StartTime.Time()).Minutes(),
			Notes:      notes,
		}
		st.TrainingLogs = append(st.TrainingLogs, log)

		st.Scheduler.LastComplete = domain.Timestamp(now)
		st.Scheduler.LastGoalID = goal.ID
		st.Scheduler.Goal = nil
		st.Scheduler.NotificationCount = 0

		// Adapt the selection throttle to what is left of the day:
		// the next promotion waits its share of the remaining time.
		if minutes, ok := scheduler.NextScheduleInterval(st.Scheduler, st.Goals, now); ok {
			st.Scheduler.ScheduleIntervalMin = minutes
		}
	})
	if stateErr != nil {
		return nil, stateErr
	}
	s.bus.Publish(events.Event{Type: events.GoalFinished, GoalID: goalID})

	if log != nil && s.archive != nil {
		if err := s.archive.Archive(ctx, log); err != nil {
			return log, fmt.Errorf("archiving training log: %w", err)
		}
	}
	return log, nil
}

// Cancel abandons the running session without recording anything.
func (s *SessionService) Cancel() error {
	var (
		goalID int64
		err    error
	)
	s.store.ApplyUpdate(func(st *store.State) {
		if st.ActiveTraining == nil {
			err = ErrNoActiveSession
			return
		}
		goalID = st.ActiveTraining.GoalID
		st.ActiveTraining = nil
	})
	if err != nil {
		return err
	}
	s.bus.Publish(events.Event{Type: events.GoalCancelled, GoalID: goalID})
	return nil
}

// EditNotes updates the notes of an existing training log, the only
// mutation logs permit.
func (s *SessionService) EditNotes(ctx context.Context, logID, notes string) error {
	found := false
	s.store.ApplyUpdate(func(st *store.State) {
		for _, l := range st.TrainingLogs {
			if l.ID == logID {
				l.Notes = notes
				found = true
				return
			}
		}
	})
	if !found {
		return fmt.Errorf("editing notes of log %s: not found", logID)
	}
	if s.archive != nil {
		if err := s.archive.UpdateNotes(ctx, logID, notes); err != nil {
			return fmt.Errorf("archiving notes edit: %w", err)
		}
	}
	return nil
}
