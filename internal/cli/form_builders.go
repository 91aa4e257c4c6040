package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/catchsup/catchsup/internal/cli/formatter"
)

// catchsupHuhTheme returns a custom huh theme using the Gruvbox
// palette shared with the formatter.
func catchsupHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// goalAddForm collects the fields of a new goal interactively. When
// at holds a clock time outside the preset list it stays selectable,
// so editing a goal does not clobber a custom time.
func goalAddForm(title, description, at *string) *huh.Form {
	options := []huh.Option[string]{
		huh.NewOption("Any time", "auto"),
		huh.NewOption("Morning (06:00 to 09:00)", "morning"),
		huh.NewOption("Forenoon (09:00 to 12:00)", "forenoon"),
		huh.NewOption("Noon (11:30 to 13:30)", "noon"),
		huh.NewOption("Afternoon (13:00 to 18:00)", "afternoon"),
		huh.NewOption("Evening (18:00 to 22:00)", "evening"),
		huh.NewOption("Night (22:00 to 06:00)", "night"),
	}
	preset := false
	for _, o := range options {
		if o.Value == *at {
			preset = true
			break
		}
	}
	if !preset && *at != "" {
		options = append([]huh.Option[string]{
			huh.NewOption("Keep "+*at, *at),
		}, options...)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Placeholder("Stretch my back").
				Value(title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("a goal title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description (optional)").
				Value(description),
			huh.NewSelect[string]().
				Title("When to train").
				Options(options...).
				Value(at),
		),
	).WithTheme(catchsupHuhTheme()).WithShowHelp(false)
}

// finishNotesForm collects optional notes when a session completes.
func finishNotesForm(notes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Session notes (optional)").
				Value(notes),
		),
	).WithTheme(catchsupHuhTheme()).WithShowHelp(false)
}
