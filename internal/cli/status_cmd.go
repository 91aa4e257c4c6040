package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/catchsup/catchsup/internal/cli/formatter"
	"github.com/catchsup/catchsup/internal/scheduler"
)

func newStatusCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the due-state overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				if !app.interactive() {
					return fmt.Errorf("status --watch needs an interactive terminal")
				}
				p := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}

			now := app.now()
			st := app.Store.GetState()

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(st, now))

			if minutes, ok := scheduler.NextScheduleInterval(st.Scheduler, st.Goals, now); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "\nPacing: next prompt roughly every %d min to fit today's goals.\n", minutes)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep the view open and live")

	return cmd
}
