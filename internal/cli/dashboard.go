package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/catchsup/catchsup/internal/cli/formatter"
	"github.com/catchsup/catchsup/internal/domain"
	"github.com/catchsup/catchsup/internal/store"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive goal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the dashboard needs an interactive terminal")
			}
			p := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

// dashboardTickMsg drives the periodic refresh.
type dashboardTickMsg time.Time

// dashboardKeyMap defines the dashboard key bindings.
type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Start   key.Binding
	Finish  key.Binding
	Cancel  key.Binding
	Quiet   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var dashboardKeys = dashboardKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Start:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start")),
	Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
	Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
	Quiet:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "quiet")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// dashboardModel is a thin live view over the store. All mutations go
// through the services so the scheduler sees them like any other
// caller.
type dashboardModel struct {
	app    *App
	state  *store.State
	cursor int
	notice string
}

func newDashboardModel(app *App) *dashboardModel {
	return &dashboardModel{app: app, state: app.Store.GetState()}
}

func (m *dashboardModel) Init() tea.Cmd {
	return dashboardTick()
}

func dashboardTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardTickMsg:
		m.state = m.app.Store.GetState()
		m.clampCursor()
		return m, dashboardTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, dashboardKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, dashboardKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, dashboardKeys.Down):
		if m.cursor < len(m.state.Goals)-1 {
			m.cursor++
		}

	case key.Matches(msg, dashboardKeys.Start):
		if g := m.selected(); g != nil {
			m.report(m.app.Sessions.Start(g.ID, m.app.now()), "Training started")
		}

	case key.Matches(msg, dashboardKeys.Finish):
		_, err := m.app.Sessions.Finish(context.Background(), "", m.app.now())
		m.report(err, "Session recorded")

	case key.Matches(msg, dashboardKeys.Cancel):
		m.report(m.app.Sessions.Cancel(), "Session cancelled")

	case key.Matches(msg, dashboardKeys.Quiet):
		st := m.state
		if st.Scheduler.NoDisturbUntil > 0 && m.app.now().Before(st.Scheduler.NoDisturbUntil.Time()) {
			m.app.Goals.SetNoDisturb(0, m.app.now())
			m.notice = "Notifications back on"
		} else if len(st.Scheduler.NoDisturbChoices) > 0 {
			minutes := st.Scheduler.NoDisturbChoices[0]
			m.app.Goals.SetNoDisturb(minutes, m.app.now())
			m.notice = fmt.Sprintf("Quiet for %d minutes", minutes)
		}

	case key.Matches(msg, dashboardKeys.Refresh):
		m.notice = ""
	}

	m.state = m.app.Store.GetState()
	m.clampCursor()
	return m, nil
}

func (m *dashboardModel) selected() *domain.Goal {
	if m.cursor < 0 || m.cursor >= len(m.state.Goals) {
		return nil
	}
	return m.state.Goals[m.cursor]
}

func (m *dashboardModel) clampCursor() {
	if m.cursor >= len(m.state.Goals) {
		m.cursor = len(m.state.Goals) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *dashboardModel) report(err error, ok string) {
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = ok
}

func (m *dashboardModel) View() string {
	now := m.app.now()
	st := m.state

	var b strings.Builder
	b.WriteString(formatter.Header("Catchsup"))
	b.WriteString("\n\n")

	if at := st.ActiveTraining; at != nil {
		title := fmt.Sprintf("goal %d", at.GoalID)
		if g := st.GoalByID(at.GoalID); g != nil {
			title = g.Title
		}
		elapsed := now.Sub(at.StartTime.Time()).Minutes()
		b.WriteString(formatter.StyleGreen.Render(
			fmt.Sprintf("▶ Training %s, %.0f min elapsed", title, elapsed)))
		b.WriteString("\n\n")
	}

	for i, g := range st.Goals {
		marker := "  "
		line := fmt.Sprintf("%-24s %-14s %s",
			g.Title,
			formatter.TrainingTimeLabel(g.ActiveTrainingTime(now)),
			formatter.DueIndicator(g.CheckDue(now)))
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("> ")
			line = formatter.Bold(line)
		}
		b.WriteString(marker + line + "\n")
	}
	if len(st.Goals) == 0 {
		b.WriteString(formatter.Dim("No goals yet. Add one with: catchsup goal add\n"))
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(formatter.StyleYellow.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(formatter.Dim("enter start · f finish · c cancel · n quiet · q quit"))
	b.WriteString("\n")
	return b.String()
}
