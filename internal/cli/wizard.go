package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/liftplan/internal/cli/formatter"
	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// liftplanHuhTheme returns a huh theme using the formatter palette.
func liftplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// generateInput holds the string-typed form values for `generate`.
type generateInput struct {
	Goal      string
	Equipment []string // selected from catalog equipment
	FreeEquip string   // comma-separated, used when the catalog offers no options
	Duration  string
	Focus     string
}

// generateForm asks for whatever the flags left out. equipmentOptions comes
// from the catalog; with no options the equipment field is free text.
func generateForm(in *generateInput, equipmentOptions []string) *huh.Form {
	var equipField huh.Field
	if len(equipmentOptions) > 0 {
		opts := make([]huh.Option[string], 0, len(equipmentOptions))
		for _, e := range equipmentOptions {
			opts = append(opts, huh.NewOption(formatter.TitleCase(e), e))
		}
		equipField = huh.NewMultiSelect[string]().
			Title("Available equipment").
			Options(opts...).
			Value(&in.Equipment).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return fmt.Errorf("pick at least one")
				}
				return nil
			})
	} else {
		equipField = huh.NewInput().
			Title("Available equipment").
			Description("Comma-separated, e.g. barbell, dumbbell").
			Value(&in.FreeEquip).
			Validate(validateRequired("equipment"))
	}

	focusOpts := make([]huh.Option[string], 0, len(domain.FocusAreas))
	for _, f := range domain.FocusAreas {
		focusOpts = append(focusOpts, huh.NewOption(f.Label(), string(f)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Training goal").
				Placeholder("build strength").
				Value(&in.Goal).
				Validate(validateRequired("goal")),
			equipField,
			huh.NewInput().
				Title("Duration (minutes)").
				Placeholder("45").
				Value(&in.Duration).
				Validate(validateDuration),
			huh.NewSelect[string]().
				Title("Focus area").
				Options(focusOpts...).
				Value(&in.Focus),
		),
	).WithTheme(liftplanHuhTheme()).WithShowHelp(false)
}

// equipment returns the chosen equipment from whichever field was shown.
func (in generateInput) equipment() []string {
	if len(in.Equipment) > 0 {
		return in.Equipment
	}
	return splitList(in.FreeEquip)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateDuration accepts a whole number of minutes within the plan bounds.
func validateDuration(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 || v > domain.MaxDurationMinutes {
		return fmt.Errorf("enter minutes between 1 and %d", domain.MaxDurationMinutes)
	}
	return nil
}

// parsePositiveInt parses s as a positive integer, returning fallback if s is
// empty, non-numeric, or non-positive.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
