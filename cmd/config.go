package cmd

import (
	"fmt"

	"orarctl/pkg/config"
	"orarctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage orarctl configuration",
	Long:  "View or edit your local configuration settings (saved groups, semester start, theme).",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		addGroups, _ := cmd.Flags().GetStringSlice("add-group")
		clearGroups, _ := cmd.Flags().GetBool("clear-groups")
		color, _ := cmd.Flags().GetString("set-color")
		semesterStart, _ := cmd.Flags().GetString("set-semester-start")
		show, _ := cmd.Flags().GetBool("show")

		if color != "" {
			if err := tui.ValidateColor(color); err != nil {
				return err
			}
		}
		if semesterStart != "" {
			if err := tui.ValidateDate(semesterStart); err != nil {
				return err
			}
		}

		edit := preferenceEdit(addGroups, clearGroups, color, semesterStart)
		changed := edit != nil
		if changed {
			if err := s.Update(edit); err != nil {
				return err
			}
			fmt.Printf("✅ Configuration saved to %s\n", s.ConfigPath)
		}

		if show || changed {
			tui.GetTheme(s.Config)
			fmt.Println(tui.RenderConfigSummary(s))
			return nil
		}

		// No flags: launch the interactive settings menu
		return tui.RunConfigTUI(s)
	},
}

// preferenceEdit turns the config flags into one edit, or nil when no flag asks for a change.
func preferenceEdit(addGroups []string, clearGroups bool, color, semesterStart string) func(*config.Config) {
	if len(addGroups) == 0 && !clearGroups && color == "" && semesterStart == "" {
		return nil
	}
	return func(cfg *config.Config) {
		if clearGroups {
			cfg.Preferences.SavedGroups = []string{}
		}
		if len(addGroups) > 0 {
			cfg.Preferences.SavedGroups = appendMissing(cfg.Preferences.SavedGroups, addGroups...)
		}
		if color != "" {
			cfg.Preferences.AccentColor = color
		}
		if semesterStart != "" {
			cfg.Export.SemesterStart = semesterStart
		}
	}
}

func appendMissing(list []string, items ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		seen[v] = true
	}
	for _, v := range items {
		if !seen[v] {
			seen[v] = true
			list = append(list, v)
		}
	}
	return list
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringSlice("add-group", nil, "Add group(s) to the saved groups used by export")
	configCmd.Flags().Bool("clear-groups", false, "Remove all saved groups")
	configCmd.Flags().String("set-color", "", "Set the accent color (ANSI number or #RRGGBB)")
	configCmd.Flags().String("set-semester-start", "", "Set the first Monday of the semester (YYYY-MM-DD)")
	configCmd.Flags().Bool("show", false, "Print the current configuration")
}
