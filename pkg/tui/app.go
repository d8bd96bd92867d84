package tui

import (
	"orarctl/pkg/config"
	"orarctl/pkg/scraper"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Replaced by GetTheme once the configured accent color is known.
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Session carries what the interactive flows share: the scraper, the loaded
// configuration and where to persist it.
type Session struct {
	Client     *scraper.Client
	Config     *config.Config
	ConfigPath string
}

// Update applies edit to the running configuration and to the file at
// ConfigPath. Env overrides in the running configuration stay out of the file.
func (s *Session) Update(edit func(*config.Config)) error {
	edit(s.Config)
	return config.Update(s.ConfigPath, edit)
}

// GetTheme builds the form theme from the configured accent color.
func GetTheme(cfg *config.Config) *huh.Theme {
	baseColor := "99"
	if cfg != nil && cfg.Preferences.AccentColor != "" {
		baseColor = cfg.Preferences.AccentColor
	}

	// CLI output printed outside forms follows the same color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a theme with baseColor injected into the focused
// elements. Used to preview a color before saving it.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// RunTUI launches the main menu.
func RunTUI(s *Session) error {
	var action string

	initialForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("📅 Browse & Export Timetable", "schedule"),
					huh.NewOption("📚 Show Catalog", "catalog"),
					huh.NewOption("⚙️ Settings", "config"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme(s.Config))

	if err := initialForm.Run(); err != nil {
		return err
	}

	switch action {
	case "catalog":
		return RunCatalogTUI(s)
	case "config":
		return RunConfigTUI(s)
	default:
		return RunScheduleTUI(s)
	}
}
