package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CodeStyle returns the style for a generation error code. Caller mistakes
// are yellow, generator and transport faults are red.
func CodeStyle(code contract.GenerateErrorCode) lipgloss.Style {
	switch code {
	case contract.ErrInvalidRequest, contract.ErrNoCandidates, contract.ErrCatalogEmpty, contract.ErrNotConfigured:
		return StyleYellow
	case contract.ErrInternalError:
		return StyleRed.Bold(true)
	default:
		return StyleRed
	}
}

// CodeBadge returns a colored code indicator such as "● NO_CANDIDATES".
func CodeBadge(code contract.GenerateErrorCode) string {
	return CodeStyle(code).Render("● " + string(code))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
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
