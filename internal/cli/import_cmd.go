package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/catchsup/catchsup/internal/importer"
)

func newGoalImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import goals from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
				}
				return fmt.Errorf("%d validation error(s) in %s", len(errs), args[0])
			}

			now := app.now()
			for _, entry := range schema.Goals {
				g, err := importer.Convert(entry, 0, now)
				if err != nil {
					return err
				}
				app.Goals.Insert(g)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d goal(s)\n", len(schema.Goals))
			return nil
		},
	}
}

func newGoalExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export goals as importable YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := importer.Export(app.Store.GetState().Goals)
			blob, err := yaml.Marshal(schema)
			if err != nil {
				return fmt.Errorf("encoding goals: %w", err)
			}
			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), string(blob))
				return nil
			}
			if err := os.WriteFile(outPath, blob, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d goal(s) to %s\n",
				len(schema.Goals), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write to a file instead of stdout")

	return cmd
}
