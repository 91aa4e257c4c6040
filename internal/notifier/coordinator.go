package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/events"
	"github.com/catchsup/catchsup/internal/scheduler"
	"github.com/catchsup/catchsup/internal/store"
)

// DefaultPollInterval is the baseline re-evaluation cadence; bus
// events additionally trigger an immediate tick.
const DefaultPollInterval = 20 * time.Second

const (
	defaultCooldownSec = 60

	distractionBaseSize = 10
	distractionStepSize = 5
	distractionMaxSize  = 50
	distractionSeconds  = 10
)

// nagProc is one cooperative sub-process, modeled as an explicit
// phase: either stopped, or waiting until resumeAt to fire its next
// round. Rounds count up so the cadence can shrink.
type nagProc struct {
	running  bool
	resumeAt time.Time
	round    int
}

func (p *nagProc) stop() {
	p.running = false
	p.round = 0
}

// Coordinator owns the two mutually exclusive nagging sub-processes
// and keeps the scheduler's current-goal selection fresh. All work
// happens inside Tick; there are no timers or background goroutines
// besides the Run loop calling Tick.
type Coordinator struct {
	store *store.Controller
	ports Ports
	bus   *events.Bus

	// PollInterval is the Run loop cadence. Set it before Run;
	// defaults to DefaultPollInterval.
	PollInterval time.Duration

	// now is swappable for tests.
	now func() time.Time

	mu            sync.Mutex
	subID         string
	stopped       bool
	suspended     bool // machine lock/suspend reported by the shell
	focused       bool // app window focused; no need to nag
	inactive      nagProc
	active        nagProc
	distractionOn bool
	lastTray      TrayIcon
	cleanups      []func()
}

// New wires a coordinator to the store, ports and event bus. Call
// Stop (or cancel the Run context) to detach.
func New(st *store.Controller, ports Ports, bus *events.Bus) *Coordinator {
	c := &Coordinator{
		store:        st,
		ports:        ports,
		bus:          bus,
		PollInterval: DefaultPollInterval,
		now:          time.Now,
		lastTray:     TrayIcon(""),
	}
	c.subID = bus.Subscribe(c.onEvent)
	c.Defer(func() {
		c.mu.Lock()
		on := c.distractionOn
		c.distractionOn = false
		c.mu.Unlock()
		if on {
			c.bus.Publish(events.Event{Type: events.StopDistraction})
		}
		c.ports.SetTrayIcon(TrayBlank)
		c.ports.RequestAttention(false)
	})
	return c
}

// Defer registers a cleanup to run unconditionally on Stop, in LIFO
// order.
func (c *Coordinator) Defer(fn func()) {
	c.mu.Lock()
	c.cleanups = append(c.cleanups, fn)
	c.mu.Unlock()
}

// Run drives Tick on the poll interval until ctx is cancelled, then
// stops the coordinator.
func (c *Coordinator) Run(ctx context.Context) {
	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	c.Tick(c.now())
	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return
		case <-ticker.C:
			c.Tick(c.now())
		}
	}
}

// Stop cancels both sub-processes, runs the registered cleanups and
// detaches from the event bus. Safe to call more than once.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.inactive.stop()
	c.active.stop()
	cleanups := c.cleanups
	c.cleanups = nil
	c.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	c.bus.Unsubscribe(c.subID)
}

// SetSuspended records whether the machine is locked or suspended;
// nagging pauses while it is.
func (c *Coordinator) SetSuspended(v bool) {
	c.mu.Lock()
	c.suspended = v
	c.mu.Unlock()
	c.Tick(c.now())
}

// SetFocused records whether the application window has focus.
func (c *Coordinator) SetFocused(v bool) {
	c.mu.Lock()
	c.focused = v
	c.mu.Unlock()
	c.Tick(c.now())
}

// onEvent reacts to bus events. Events the coordinator itself
// publishes from inside a tick (goal-timeup, start/stop-distraction)
// must not re-enter Tick.
func (c *Coordinator) onEvent(e events.Event) {
	switch e.Type {
	case events.GoalTimeUp, events.StartDistraction, events.StopDistraction:
		return
	case events.DistractionClosed:
		c.mu.Lock()
		c.distractionOn = false
		c.mu.Unlock()
		return
	case events.GoalFinished:
		st := c.store.GetState()
		if !st.Settings.MuteSounds {
			c.ports.PlaySound(SoundReward, SoundLong, st.Settings.SoundVolume)
		}
		c.Tick(c.now())
	case events.GoalStarted, events.GoalCancelled,
		events.GoalModified, events.SettingsUpdated, events.NoDisturbChange:
		c.Tick(c.now())
	default:
		panic(fmt.Sprintf("invariant violation: unknown event type %q", e.Type))
	}
}

// Tick runs one re-evaluation pass. Order matters: due states are
// recomputed and the selection refreshed first, then the sub-processes
// advance, then tray side effects run; later steps must not see
// stale due states.
func (c *Coordinator) Tick(now time.Time) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}

	var effects []func()
	st := c.reconcileSelection(now)

	if st.ActiveTraining != nil {
		c.stopInactiveLocked(&effects)
		st = c.tickActiveLocked(st, now, &effects)
	} else {
		c.active.stop()
		c.tickInactiveLocked(st, now, &effects)
	}

	c.updateTrayLocked(st, now, &effects)
	c.mu.Unlock()

	// Side effects run outside the lock; bus handlers and ports may
	// call back into the coordinator.
	for _, fn := range effects {
		fn()
	}
}

// reconcileSelection re-derives the scheduler's current goal: a stale
// (previous-day) selection, a deleted or no-longer-due goal, or an
// any-time selection superseded by a newly due time-boxed goal
// ("poaching") all force a fresh FindNextSchedule.
func (c *Coordinator) reconcileSelection(now time.Time) *store.State {
	st := c.store.GetState()
	sched := st.Scheduler

	needs := false
	cur := sched.Goal
	switch {
	case cur == nil:
		needs = true
	case !scheduler.HasScheduledGoal(sched, now):
		needs = true
	default:
		g := st.GoalByID(cur.ID)
		if g == nil {
			needs = true
			break
		}
		due := g.CheckDue(now)
		if due != domain.DueNow && due != domain.WasDue {
			needs = true
			break
		}
		if g.ActiveTrainingTime(now).IsAuto() {
			for _, other := range st.Goals {
				if other.ID != g.ID && !other.ActiveTrainingTime(now).IsAuto() &&
					other.CheckDue(now) == domain.DueNow {
					needs = true
					break
				}
			}
		}
	}
	if !needs {
		return st
	}

	next := scheduler.FindNextSchedule(sched, st.Goals, now)
	if next == nil && cur != nil && scheduler.HasScheduledGoal(sched, now) {
		// Throttled but the current selection is still fresh; only a
		// goal that really became unavailable is dropped.
		if g := st.GoalByID(cur.ID); g != nil {
			if due := g.CheckDue(now); due == domain.DueNow || due == domain.WasDue {
				return st
			}
		}
	}
	if selectionEqual(cur, next) {
		return st
	}
	return c.store.ApplyUpdate(func(s *store.State) {
		s.Scheduler.Goal = next
		if next != nil {
			s.Scheduler.LastGoalID = next.ID
		}
	})
}

// selectionEqual compares the goal and the scheduled day, not just
// the ID: re-deriving a stale selection to the same goal must still
// refresh ScheduledOn, or the selection stays stale forever.
func selectionEqual(a, b *scheduler.SelectedGoal) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || (a.ID == b.ID &&
		domain.DateOf(a.ScheduledOn.Time()) == domain.DateOf(b.ScheduledOn.Time()))
}

// suppressedLocked reports whether all nagging is currently muted.
func (c *Coordinator) suppressedLocked(st *store.State, now time.Time) bool {
	return c.suspended || c.focused || scheduler.InNoDisturbMode(st.Scheduler, now)
}

// tickInactiveLocked advances the pre-session nagging sub-process: an
// initial long delay, then reminder rounds at the shrinking
// NotifyStartInterval cadence, with a growing distraction cue and the
// occasional prompt sound. The loop has no end; it only gets denser
// until the notification counter soft-resets.
func (c *Coordinator) tickInactiveLocked(st *store.State, now time.Time, effects *[]func()) {
	sched := st.Scheduler
	if sched.Goal == nil || !scheduler.HasScheduledGoal(sched, now) || c.suppressedLocked(st, now) {
		c.stopInactiveLocked(effects)
		return
	}
	goal := st.GoalByID(sched.Goal.ID)
	if goal == nil {
		c.stopInactiveLocked(effects)
		return
	}

	if !c.inactive.running {
		c.inactive = nagProc{
			running:  true,
			resumeAt: now.Add(scheduler.NotifyStartInterval(sched.NotificationCount)),
		}
		return
	}
	if now.Before(c.inactive.resumeAt) {
		return
	}

	round := c.inactive.round
	title := goal.Title
	body := fmt.Sprintf("%s is waiting (%.0f min)", goal.Title, goal.TrainingDuration)
	*effects = append(*effects, func() { c.ports.Notify(title, body) })

	if round >= 1 {
		size := distractionBaseSize + distractionStepSize*round
		if size > distractionMaxSize {
			size = distractionMaxSize
		}
		c.distractionOn = true
		*effects = append(*effects, func() {
			c.bus.Publish(events.Event{Type: events.StartDistraction, Size: size, Seconds: distractionSeconds})
		})
	}
	if round%3 == 2 && !st.Settings.MuteSounds {
		vol := st.Settings.SoundVolume
		*effects = append(*effects, func() { c.ports.PlaySound(SoundPrompt, SoundShort, vol) })
	}

	next := c.store.ApplyUpdate(func(s *store.State) {
		scheduler.TouchNotification(&s.Scheduler, now)
	})
	c.inactive.round++
	c.inactive.resumeAt = now.Add(scheduler.NotifyStartInterval(next.Scheduler.NotificationCount))
}

// tickActiveLocked advances the post-duration sub-process: once the
// session's nominal duration elapses it stamps TimeUp, waits out the
// cooldown, then loops "stop now" reminders at an accelerating cadence
// until the user finishes or cancels.
func (c *Coordinator) tickActiveLocked(st *store.State, now time.Time, effects *[]func()) *store.State {
	at := st.ActiveTraining
	goal := st.GoalByID(at.GoalID)
	if goal == nil {
		// Orphaned session; the owning service will clear it.
		c.active.stop()
		return st
	}

	if at.TimeUp == 0 {
		duration := time.Duration(goal.TrainingDuration * float64(time.Minute))
		if now.Sub(at.StartTime.Time()) < duration {
			return st
		}
		st = c.store.ApplyUpdate(func(s *store.State) {
			if s.ActiveTraining != nil {
				s.ActiveTraining.TimeUp = domain.Timestamp(now)
			}
		})
		goalID := goal.ID
		*effects = append(*effects, func() {
			c.bus.Publish(events.Event{Type: events.GoalTimeUp, GoalID: goalID})
		})
		at = st.ActiveTraining
	}

	if at.SilenceNotification || c.suppressedLocked(st, now) {
		c.active.stop()
		return st
	}

	if !c.active.running {
		cooldown := at.CooldownSec
		if cooldown <= 0 {
			cooldown = defaultCooldownSec
		}
		timeUp := st.ActiveTraining.TimeUp
		c.active = nagProc{
			running:  true,
			resumeAt: timeUp.Time().Add(time.Duration(cooldown) * time.Second),
		}
		return st
	}
	if now.Before(c.active.resumeAt) {
		return st
	}

	title := "Time's up"
	body := fmt.Sprintf("%s is done, wrap it up", goal.Title)
	vol := st.Settings.SoundVolume
	mute := st.Settings.MuteSounds
	*effects = append(*effects, func() {
		c.ports.Notify(title, body)
		c.ports.RequestAttention(true)
		if !mute {
			c.ports.PlaySound(SoundPrompt, SoundLong, vol)
		}
	})

	c.store.ApplyUpdate(func(s *store.State) {
		scheduler.TouchNotification(&s.Scheduler, now)
	})
	c.active.round++
	c.active.resumeAt = now.Add(scheduler.NotifyStopInterval(c.active.round))
	return st
}

func (c *Coordinator) stopInactiveLocked(effects *[]func()) {
	if c.inactive.running {
		c.inactive.stop()
	}
	if c.distractionOn {
		c.distractionOn = false
		*effects = append(*effects, func() {
			c.bus.Publish(events.Event{Type: events.StopDistraction})
		})
	}
}

// updateTrayLocked recomputes the tray icon from the freshest state.
func (c *Coordinator) updateTrayLocked(st *store.State, now time.Time, effects *[]func()) {
	var icon TrayIcon
	switch {
	case st.ActiveTraining != nil && st.ActiveTraining.TimeUp != 0:
		icon = TrayTimeUp
	case st.ActiveTraining != nil:
		icon = TrayOngoing
	default:
		switch domain.AggregateDue(st.Goals, now) {
		case domain.DueNow:
			icon = TrayDueNow
		case domain.WasDue:
			icon = TrayWasDue
		case domain.DueLater:
			icon = TrayDueLater
		case domain.DueFree:
			icon = TrayBlank
		default:
			panic("invariant violation: unhandled due state")
		}
	}
	if icon == c.lastTray {
		return
	}
	c.lastTray = icon
	*effects = append(*effects, func() { c.ports.SetTrayIcon(icon) })
}
