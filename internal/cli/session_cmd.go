package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run training sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionFinishCmd(app),
		newSessionCancelCmd(app),
		newSessionSilenceCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start [goal]",
		Short: "Start training; defaults to the currently scheduled goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var goalID int64
			if len(args) > 0 {
				g, err := resolveGoal(app, args[0])
				if err != nil {
					return err
				}
				goalID = g.ID
			} else {
				sel := app.Store.GetState().Scheduler.Goal
				if sel == nil {
					return fmt.Errorf("nothing is scheduled right now; name a goal")
				}
				goalID = sel.ID
			}

			if err := app.Sessions.Start(goalID, app.now()); err != nil {
				return err
			}
			g := app.Store.GetState().GoalByID(goalID)
			fmt.Fprintf(cmd.OutOrStdout(), "Training %q for %.0f minutes. Finish with: catchsup session finish\n",
				g.Title, g.TrainingDuration)
			return nil
		},
	}
}

func newSessionFinishCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Finish the running session and record it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("notes") && app.interactive() {
				if err := finishNotesForm(&notes).Run(); err != nil {
					return err
				}
			}

			log, err := app.Sessions.Finish(context.Background(), notes, app.now())
			if err != nil {
				if log == nil {
					return err
				}
				// State is recorded; only the archive write failed.
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}
			if log == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Session closed; its goal no longer exists.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done. Recorded %.0f minutes.\n", log.ElapsedMin)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")

	return cmd
}

func newSessionCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Abandon the running session without recording it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Cancel(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session cancelled.")
			return nil
		},
	}
}

func newSessionSilenceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "silence",
		Short: "Mute time-up reminders for the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Silence(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminders silenced until the session ends.")
			return nil
		},
	}
}
