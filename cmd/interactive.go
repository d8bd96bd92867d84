package cmd

import (
	"orarctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to browse the catalog, pick groups, and show or export their timetables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return tui.RunTUI(s)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
