package cmd

import (
	"errors"
	"fmt"
	"strings"

	"orarctl/pkg/scraper"
	"orarctl/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the timetable of one group",
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		client := newClient(cfg, logger)
		var schedule scraper.GroupSchedule

		fetch := func() { schedule, err = client.FindSchedule(group) }
		if asJSON {
			fetch()
		} else {
			_ = spinner.New().Title(fmt.Sprintf("Fetching schedule for %s...", group)).Action(fetch).Run()
		}

		var notFound *scraper.NotFoundError
		if errors.As(err, &notFound) && notFound.Kind == scraper.KindGroup {
			return fmt.Errorf("%s Available groups: %s", notFound.Error(), strings.Join(notFound.Available, ", "))
		}
		if err != nil {
			return fmt.Errorf("could not fetch schedule: %w", err)
		}

		if asJSON {
			return printJSON(schedule)
		}
		tui.GetTheme(cfg)
		fmt.Println(tui.RenderSchedule(schedule))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringP("group", "g", "", "Group name as listed in the catalog (e.g. \"Grupa 211\")")
	scheduleCmd.Flags().Bool("json", false, "Print the schedule as JSON")
	scheduleCmd.MarkFlagRequired("group")
}
