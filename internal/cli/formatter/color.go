package formatter

import (
	"fmt"
	"strings"

	"github.com/catchsup/catchsup/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DueColor returns the lipgloss style corresponding to a due state.
func DueColor(state domain.DueState) lipgloss.Style {
	switch state {
	case domain.DueNow:
		return StyleRed
	case domain.WasDue:
		return StyleYellow
	case domain.DueLater:
		return StyleBlue
	default:
		return StyleDim
	}
}

// DueIndicator returns a colored due-state indicator string such as
// "● DUE NOW".
func DueIndicator(state domain.DueState) string {
	switch state {
	case domain.DueNow:
		return StyleRed.Render("● DUE NOW")
	case domain.WasDue:
		return StyleYellow.Render("● WAS DUE")
	case domain.DueLater:
		return StyleBlue.Render("● DUE LATER")
	default:
		return StyleDim.Render("● FREE")
	}
}

// Header renders a section header with the orange header style and an
// underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
