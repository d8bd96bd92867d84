package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"orarctl/pkg/scraper"
	"orarctl/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List majors, years and their groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		client := newClient(cfg, logger)
		var entries []scraper.CatalogEntry

		fetch := func() { entries, err = client.ListCatalog() }
		if asJSON {
			fetch()
		} else {
			_ = spinner.New().Title("Fetching timetable catalog...").Action(fetch).Run()
		}

		if err != nil {
			return fmt.Errorf("could not fetch catalog: %w", err)
		}

		if asJSON {
			return printJSON(entries)
		}
		tui.GetTheme(cfg)
		fmt.Println(tui.RenderCatalog(entries))
		return nil
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
