package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/catchsup/catchsup/internal/cli/formatter"
	"github.com/catchsup/catchsup/internal/domain"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded training sessions",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryStatsCmd(app),
		newHistoryNotesCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var goalArg string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st := app.Store.GetState()

			var logs []*domain.TrainingLog
			var err error
			switch {
			case app.Archive == nil:
				// Fall back to the logs held in state.
				logs = append(logs, st.TrainingLogs...)
				sort.Slice(logs, func(i, j int) bool {
					return logs[i].StartTime > logs[j].StartTime
				})
			case goalArg != "":
				g, resolveErr := resolveGoal(app, goalArg)
				if resolveErr != nil {
					return resolveErr
				}
				logs, err = app.Archive.ListByGoal(ctx, g.ID, 0)
			default:
				since := app.now().AddDate(0, 0, -days)
				logs, err = app.Archive.ListRecent(ctx, since)
			}
			if err != nil {
				return fmt.Errorf("reading training history: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(logs, st.Goals))
			return nil
		},
	}

	cmd.Flags().StringVar(&goalArg, "goal", "", "Only sessions of this goal")
	cmd.Flags().IntVar(&days, "days", 14, "How many days back to list")

	return cmd
}

func newHistoryStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Per-goal session totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Archive == nil {
				return fmt.Errorf("training-log archive is not available")
			}
			stats, err := app.Archive.StatsByGoal(context.Background())
			if err != nil {
				return fmt.Errorf("reading training stats: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(stats, app.Store.GetState().Goals))
			return nil
		},
	}
}

func newHistoryNotesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <log-id> <notes>",
		Short: "Rewrite the notes of a recorded session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return app.Sessions.EditNotes(ctx, args[0], args[1])
		},
	}
}
