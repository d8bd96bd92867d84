package tui

import (
	"fmt"
	"strings"

	"orarctl/pkg/scraper"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var scheduleHeaders = []string{"Day", "Time", "Freq.", "Room", "Formation", "Type", "Subject", "Instructor"}

// RenderCatalog lists every major and year with its groups.
func RenderCatalog(entries []scraper.CatalogEntry) string {
	titleStyle := accentStyle.Bold(true).Padding(1, 0, 0, 0)
	yearStyle := lipgloss.NewStyle().Bold(true)

	if len(entries) == 0 {
		return mutedStyle.Render("No timetables published.")
	}

	var b strings.Builder
	lastMajor := ""
	for _, e := range entries {
		if e.Major != lastMajor {
			b.WriteString(titleStyle.Render(e.Major))
			b.WriteString("\n")
			lastMajor = e.Major
		}

		groups := mutedStyle.Render("no groups")
		if len(e.Groups) > 0 {
			groups = strings.Join(e.Groups, ", ")
		}
		fmt.Fprintf(&b, "  %s  %s\n", yearStyle.Render(e.Year), groups)
	}
	return b.String()
}

// RenderSchedule draws a group's classes as a table.
func RenderSchedule(s scraper.GroupSchedule) string {
	title := accentStyle.Bold(true).Render(s.GroupName)
	if len(s.Classes) == 0 {
		return title + "\n" + mutedStyle.Render("No classes scheduled.")
	}

	rows := make([][]string, 0, len(s.Classes))
	for _, c := range s.Classes {
		rows = append(rows, []string{c.Day, c.Time, c.Frequency, c.Room, c.Formation, c.Kind, c.Subject, c.Instructor})
	}

	headerStyle := accentStyle.Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(scheduleHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return title + "\n" + t.Render()
}
