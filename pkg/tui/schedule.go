package tui

import (
	"fmt"
	"os"
	"strings"

	"orarctl/pkg/config"
	"orarctl/pkg/exporter"
	"orarctl/pkg/scraper"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// RunCatalogTUI prints the catalog of majors, years and groups.
func RunCatalogTUI(s *Session) error {
	entries, err := fetchCatalog(s)
	if err != nil {
		return err
	}
	fmt.Println(RenderCatalog(entries))
	return nil
}

// RunScheduleTUI picks a major and year, then one or more of its groups, and
// shows or exports their timetables.
func RunScheduleTUI(s *Session) error {
	fmt.Println(accentStyle.Render("Welcome to the orarctl timetable browser!"))

	entries, err := fetchCatalog(s)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(errorStyle.Render("No timetables published!"))
		return nil
	}

	var entryIdx int
	var entryOptions []huh.Option[int]
	for i, e := range entries {
		entryOptions = append(entryOptions, huh.NewOption(fmt.Sprintf("%s · %s", e.Major, e.Year), i))
	}

	entryForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select your specialization and year").
				Options(entryOptions...).
				Value(&entryIdx).
				Filtering(true).
				Height(12),
		),
	).WithTheme(GetTheme(s.Config))

	if err := entryForm.Run(); err != nil {
		return err
	}
	entry := entries[entryIdx]

	if len(entry.Groups) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No groups listed for %s %s!", entry.Major, entry.Year)))
		return nil
	}

	saved := make(map[string]bool)
	for _, g := range s.Config.Preferences.SavedGroups {
		saved[g] = true
	}

	var groupOptions []huh.Option[string]
	for _, g := range entry.Groups {
		groupOptions = append(groupOptions, huh.NewOption(g, g).Selected(saved[g]))
	}

	var selectedGroups []string
	var action string

	groupForm := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select your group(s)").
				Description("Space = toggle, Enter = confirm. Start typing to filter.").
				Options(groupOptions...).
				Value(&selectedGroups).
				Filterable(true).
				Height(12),

			huh.NewSelect[string]().
				Title("Then").
				Options(
					huh.NewOption("Show timetable", "show"),
					huh.NewOption("Export to .ics", "export"),
					huh.NewOption("Save as my groups", "save"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme(s.Config))

	if err := groupForm.Run(); err != nil {
		return err
	}

	if len(selectedGroups) == 0 {
		fmt.Println(errorStyle.Render("No groups selected!"))
		return nil
	}

	if action == "save" {
		err := s.Update(func(cfg *config.Config) { cfg.Preferences.SavedGroups = selectedGroups })
		if err != nil {
			return err
		}
		fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Successfully saved %d groups.\n", len(selectedGroups))))
		return nil
	}

	var schedules []scraper.GroupSchedule
	var fetchErr error

	_ = spinner.New().
		Title("Fetching schedules...").
		Action(func() {
			for _, g := range selectedGroups {
				var gs scraper.GroupSchedule
				gs, fetchErr = s.Client.GetSchedule(entry.Link, g)
				if fetchErr != nil {
					fetchErr = fmt.Errorf("failed to fetch schedule for %s: %w", g, fetchErr)
					return
				}
				schedules = append(schedules, gs)
			}
		}).
		Run()

	if fetchErr != nil {
		return fetchErr
	}

	if action == "show" {
		for _, gs := range schedules {
			fmt.Println(RenderSchedule(gs))
		}
		return nil
	}

	return exportSchedules(s, schedules)
}

func exportSchedules(s *Session, schedules []scraper.GroupSchedule) error {
	outputFile := "orar.ics"

	fileForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme(s.Config))

	if err := fileForm.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, ".ics") {
		outputFile += ".ics"
	}

	opts, err := exporter.ParseOptions(s.Config.Export.SemesterStart, s.Config.Export.Weeks, s.Config.Export.Timezone)
	if err != nil {
		return err
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	n, err := exporter.GenerateICS(schedules, opts, file)
	if err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d class events to %s", n, outputFile)))
	return nil
}

func fetchCatalog(s *Session) ([]scraper.CatalogEntry, error) {
	var entries []scraper.CatalogEntry
	var err error

	_ = spinner.New().
		Title("Fetching timetables from UBB Cluj...").
		Action(func() {
			entries, err = s.Client.ListCatalog()
		}).
		Run()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return entries, nil
}
