package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catchsup/catchsup/internal/cli/formatter"
	"github.com/catchsup/catchsup/internal/domain"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage training goals",
	}

	cmd.AddCommand(
		newGoalAddCmd(app),
		newGoalListCmd(app),
		newGoalShowCmd(app),
		newGoalEditCmd(app),
		newGoalRemoveCmd(app),
		newGoalReschedCmd(app),
		newGoalImportCmd(app),
		newGoalExportCmd(app),
	)

	return cmd
}

func newGoalAddCmd(app *App) *cobra.Command {
	var title, description, at string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a training goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				title = args[0]
			}

			if title == "" && app.interactive() {
				form := goalAddForm(&title, &description, &at)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if title == "" {
				return fmt.Errorf("a goal title is required")
			}

			tt, err := parseTrainingTime(at)
			if err != nil {
				return err
			}

			g := app.Goals.Create(title, description, app.now())
			if !tt.IsAuto() {
				if err := app.Goals.Update(g.ID, func(g *domain.Goal) {
					g.TrainingTime = tt
				}); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added goal %d: %s\n", g.ID, g.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&at, "at", "auto",
		"When to train: auto, a named range (morning, evening, ...), HH:MM, or HH:MM-HH:MM")

	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with their due state",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Store.GetState()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoalList(st.Goals, app.now()))
			return nil
		},
	}
}

func newGoalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal>",
		Short: "Show a goal in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := resolveGoal(app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoal(g, app.now()))
			return nil
		},
	}
}

func newGoalEditCmd(app *App) *cobra.Command {
	var (
		title, description, at  string
		cadence, weekdays, days string
		interval, duration      float64
	)

	cmd := &cobra.Command{
		Use:   "edit <goal>",
		Short: "Edit a goal's title, timing or cadence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := resolveGoal(app, args[0])
			if err != nil {
				return err
			}

			// No flags and a terminal: edit the basics in a form.
			if cmd.Flags().NFlag() == 0 && app.interactive() {
				title = g.Title
				description = g.Description
				at = domain.TrainingTimeSyntax(g.TrainingTime)
				if at == "" {
					at = "auto"
				}
				form := goalAddForm(&title, &description, &at)
				if err := form.Run(); err != nil {
					return err
				}
				tt, err := parseTrainingTime(at)
				if err != nil {
					return err
				}
				return app.Goals.Update(g.ID, func(g *domain.Goal) {
					g.Title = title
					g.Description = description
					g.TrainingTime = tt
				})
			}

			var tt domain.TrainingTime
			if cmd.Flags().Changed("at") {
				if tt, err = parseTrainingTime(at); err != nil {
					return err
				}
			}
			var mask [7]bool
			if cmd.Flags().Changed("weekdays") {
				if mask, err = parseWeekdays(weekdays); err != nil {
					return err
				}
			}
			var monthDays []int
			if cmd.Flags().Changed("days") {
				if monthDays, err = parseMonthDays(days); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("cadence") {
				if !domain.ValidSchedulingTypes[cadence] {
					return fmt.Errorf("invalid cadence %q", cadence)
				}
			}

			return app.Goals.Update(g.ID, func(g *domain.Goal) {
				if cmd.Flags().Changed("title") {
					g.Title = title
				}
				if cmd.Flags().Changed("description") {
					g.Description = description
				}
				if cmd.Flags().Changed("at") {
					g.TrainingTime = tt
				}
				if cmd.Flags().Changed("cadence") {
					g.Scheduling.Type = domain.SchedulingType(cadence)
				}
				if cmd.Flags().Changed("weekdays") {
					g.Scheduling.Type = domain.SchedulingWeekly
					g.Scheduling.Weekly.Weekdays = mask
				}
				if cmd.Flags().Changed("days") {
					g.Scheduling.Type = domain.SchedulingMonthly
					g.Scheduling.Monthly.Days = monthDays
				}
				if cmd.Flags().Changed("interval") {
					g.Scheduling.Daily.Interval = interval
				}
				if cmd.Flags().Changed("duration") {
					g.TrainingDuration = duration
				}
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&at, "at", "", "New training time")
	cmd.Flags().StringVar(&cadence, "cadence", "", "daily, weekly, monthly or disabled")
	cmd.Flags().StringVar(&weekdays, "weekdays", "", "Weekly cadence days, e.g. mon,wed,fri")
	cmd.Flags().StringVar(&days, "days", "", "Monthly cadence days, e.g. 1,15")
	cmd.Flags().Float64Var(&interval, "interval", 1, "Daily cadence interval in days")
	cmd.Flags().Float64Var(&duration, "duration", 15, "Session duration in minutes")

	return cmd
}

func newGoalRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <goal>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a goal (training history is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := resolveGoal(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Goals.Delete(g.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed goal %d: %s\n", g.ID, g.Title)
			return nil
		},
	}
}

func newGoalReschedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resched <goal> <when>",
		Short: "Override a goal's training time for today only",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := resolveGoal(app, args[0])
			if err != nil {
				return err
			}
			tt, err := parseTrainingTime(args[1])
			if err != nil {
				return err
			}
			if err := app.Goals.Reschedule(g.ID, tt, app.now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal %q moved to %s for today\n", g.Title, formatter.TrainingTimeLabel(tt))
			return nil
		},
	}
}
