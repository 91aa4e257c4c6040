package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newNoDisturbCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "quiet [minutes|off]",
		Aliases: []string{"nodisturb"},
		Short:   "Pause notifications for a while",
		Long: "Pause notifications for the given number of minutes, or pick " +
			"from the configured presets when no argument is given. " +
			"\"off\" lifts an active pause.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()

			if len(args) == 0 {
				choices := app.Store.GetState().Scheduler.NoDisturbChoices
				if len(choices) == 0 {
					return fmt.Errorf("no presets configured; pass minutes explicitly")
				}
				minutes := choices[0]
				app.Goals.SetNoDisturb(minutes, now)
				fmt.Fprintf(cmd.OutOrStdout(), "Quiet for %d minutes.\n", minutes)
				return nil
			}

			if args[0] == "off" {
				app.Goals.SetNoDisturb(0, now)
				fmt.Fprintln(cmd.OutOrStdout(), "Notifications back on.")
				return nil
			}

			minutes, err := strconv.Atoi(args[0])
			if err != nil || minutes <= 0 {
				return fmt.Errorf("invalid minutes %q", args[0])
			}
			app.Goals.SetNoDisturb(minutes, now)
			fmt.Fprintf(cmd.OutOrStdout(), "Quiet for %d minutes.\n", minutes)
			return nil
		},
	}
}
