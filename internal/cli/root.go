// Package cli wires the cobra command tree over the services. All
// commands read through the store controller so they observe the same
// state the notifier does.
package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/catchsup/catchsup/internal/config"
	"github.com/catchsup/catchsup/internal/events"
	"github.com/catchsup/catchsup/internal/repository"
	"github.com/catchsup/catchsup/internal/service"
	"github.com/catchsup/catchsup/internal/store"
)

// App holds references to everything CLI commands need.
type App struct {
	Store    *store.Controller
	Bus      *events.Bus
	Goals    *service.GoalService
	Sessions *service.SessionService

	// Archive is nil when the SQLite archive could not be opened;
	// history commands degrade to the in-state logs.
	Archive repository.TrainingLogArchive

	Config *config.Config

	// IsInteractive reports whether stdin is a terminal, gating the
	// huh forms.
	IsInteractive func() bool

	// Now is the clock; swapped in tests.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "catchsup" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "catchsup",
		Short: "Habit trainer with a nagging scheduler",
		Long: "Catchsup keeps a list of training goals, decides which one is " +
			"due, and nags until it gets done. Durations adapt: finished " +
			"sessions nudge a goal up, skipped days shave it down.",
		// Bare invocation opens the dashboard on a terminal.
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				p := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newGoalCmd(app),
		newSessionCmd(app),
		// The session verbs are frequent enough to live at the top
		// level too.
		newSessionStartCmd(app),
		newSessionFinishCmd(app),
		newSessionCancelCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
		newNoDisturbCmd(app),
		newWatchCmd(app),
		newDashboardCmd(app),
	)

	return root
}
