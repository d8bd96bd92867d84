package tui

import (
	"fmt"
	"strings"
	"time"

	"orarctl/pkg/config"
	"orarctl/pkg/scraper"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI loops over the settings menu until the user goes back.
func RunConfigTUI(s *Session) error {
	for {
		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Saved Groups", "groups"),
						huh.NewOption("Set Semester Start", "semester"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme(s.Config))

		if err := initialForm.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(s)
		case "groups":
			err = runSetSavedGroupsTUI(s)
		case "semester":
			err = runSetSemesterStartTUI(s)
		case "view":
			fmt.Println(RenderConfigSummary(s))
		}

		if err != nil {
			return err
		}
	}
}

// RenderConfigSummary lists the settings users usually care about.
func RenderConfigSummary(s *Session) string {
	cfg := s.Config
	groups := "none"
	if len(cfg.Preferences.SavedGroups) > 0 {
		groups = strings.Join(cfg.Preferences.SavedGroups, ", ")
	}

	var b strings.Builder
	b.WriteString(accentStyle.Render(fmt.Sprintf("\n--- Current Configuration (%s) ---", s.ConfigPath)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Timetable Source: %s\n", cfg.Source.BaseURL)
	fmt.Fprintf(&b, "Saved Groups: %s\n", groups)
	fmt.Fprintf(&b, "Semester: %d weeks from %s (%s)\n", cfg.Export.Weeks, cfg.Export.SemesterStart, cfg.Export.Timezone)
	fmt.Fprintf(&b, "Server Port: %s\n", cfg.Server.Port)
	fmt.Fprintf(&b, "Accent Color: %s\n", cfg.Preferences.AccentColor)
	return b.String()
}

func runSetSavedGroupsTUI(s *Session) error {
	entries, err := fetchCatalog(s)
	if err != nil {
		return err
	}

	existing := make(map[string]bool)
	for _, g := range s.Config.Preferences.SavedGroups {
		existing[g] = true
	}

	var groupOptions []huh.Option[string]
	for _, g := range scraper.AvailableGroups(entries) {
		groupOptions = append(groupOptions, huh.NewOption(g, g).Selected(existing[g]))
	}

	var selected []string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select your group(s)").
				Description("Used by `orarctl export` when no --group is given.\nSpace = toggle, Enter = confirm. Start typing to filter.").
				Options(groupOptions...).
				Value(&selected).
				Filterable(true).
				Height(12),
		),
	).WithTheme(GetTheme(s.Config))

	if err := form.Run(); err != nil {
		return err
	}

	err = s.Update(func(cfg *config.Config) { cfg.Preferences.SavedGroups = selected })
	if err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Successfully saved %d groups.\n", len(selected))))
	return nil
}

func runSetSemesterStartTUI(s *Session) error {
	input := s.Config.Export.SemesterStart

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First Monday of the semester").
				Description("Exported calendars count teaching weeks from this date.").
				Placeholder("YYYY-MM-DD").
				Value(&input).
				Validate(ValidateDate),
		),
	).WithTheme(GetTheme(s.Config))

	if err := form.Run(); err != nil {
		return err
	}

	if err := s.Update(func(cfg *config.Config) { cfg.Export.SemesterStart = input }); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Semester start set to %s\n", input)))
	return nil
}

// ValidateDate accepts YYYY-MM-DD.
func ValidateDate(v string) error {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return fmt.Errorf("must be a date like 2025-09-29")
	}
	return nil
}

// ValidateColor accepts an ANSI 256 color number or a #RRGGBB hex code.
func ValidateColor(v string) error {
	if strings.HasPrefix(v, "#") {
		if len(v) != 7 || strings.Trim(strings.ToLower(v[1:]), "0123456789abcdef") != "" {
			return fmt.Errorf("must be a valid 6-character hex code starting with #")
		}
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n < 0 || n > 255 || fmt.Sprint(n) != v {
		return fmt.Errorf("must be a color number between 0 and 255 or a hex code")
	}
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(s *Session) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for orarctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Violet", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme(s.Config))

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(ValidateColor),
			),
		).WithTheme(GetTheme(s.Config))

		if err := hexForm.Run(); err != nil {
			return err
		}
		input = hexInput
	}

	if err := s.Update(func(cfg *config.Config) { cfg.Preferences.AccentColor = input }); err != nil {
		return err
	}

	GetTheme(s.Config)
	fmt.Println(accentStyle.Render("\n✅ Beautiful! The theme color is now saved.\n"))
	return nil
}
