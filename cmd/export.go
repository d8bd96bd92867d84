package cmd

import (
	"fmt"
	"os"
	"strings"

	"orarctl/pkg/exporter"
	"orarctl/pkg/scraper"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export schedules to an ICS file",
	Long: `Export the schedules of one or more groups to an ICS file without using the
interactive TUI. Without --group the saved groups from the config are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, _ := cmd.Flags().GetStringSlice("group")
		output, _ := cmd.Flags().GetString("output")

		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if len(groups) == 0 {
			groups = cfg.Preferences.SavedGroups
		}
		if len(groups) == 0 {
			return fmt.Errorf("no groups given: pass --group or save groups with `orarctl config --add-group`")
		}

		opts, err := exporter.ParseOptions(cfg.Export.SemesterStart, cfg.Export.Weeks, cfg.Export.Timezone)
		if err != nil {
			return err
		}

		client := newClient(cfg, logger)
		var schedules []scraper.GroupSchedule

		_ = spinner.New().
			Title(fmt.Sprintf("Exporting %s to %s...", strings.Join(groups, ", "), output)).
			Action(func() {
				for _, g := range groups {
					var s scraper.GroupSchedule
					if s, err = client.FindSchedule(g); err != nil {
						return
					}
					schedules = append(schedules, s)
				}
			}).
			Run()

		if err != nil {
			return fmt.Errorf("failed to fetch schedule: %w", err)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		n, err := exporter.GenerateICS(schedules, opts, file)
		if err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		if n == 0 {
			fmt.Printf("No classes found for %s; wrote an empty calendar to %s\n", strings.Join(groups, ", "), output)
			return nil
		}
		fmt.Printf("Successfully exported %d classes to %s\n", n, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceP("group", "g", nil, "Group(s) to export (e.g. \"Grupa 211\"); repeat or comma-separate")
	exportCmd.Flags().StringP("output", "o", "orar.ics", "Output file path")
}
