package scraper

import (
	"strings"
	"testing"
)

// TestScraperIntegration_ListCatalog connects to the live faculty site.
// If this test fails, the faculty changed the HTML structure or the server is down.
func TestScraperIntegration_ListCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live site test in short mode")
	}

	client := NewClient(DefaultBaseURL, NewPageCache(DefaultCacheSize))

	entries, err := client.ListCatalog()
	if err != nil {
		t.Fatalf("Failed to list catalog: %v", err)
	}

	if len(entries) == 0 {
		t.Fatalf("Expected to find majors on the index page, but got 0")
	}

	foundGroups := false
	for _, e := range entries {
		if !strings.HasPrefix(e.Link, DefaultBaseURL) {
			t.Errorf("Link %s is not rooted at the base URL", e.Link)
		}
		if len(e.Groups) > 0 {
			foundGroups = true
		}
	}
	if !foundGroups {
		t.Errorf("No entry listed any 'Grupa' heading. Did the faculty rename the sections?")
	}
}

// TestScraperIntegration_GetSchedule extracts the first listed group from the live site.
func TestScraperIntegration_GetSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live site test in short mode")
	}

	client := NewClient(DefaultBaseURL, NewPageCache(DefaultCacheSize))

	entries, err := client.ListCatalog()
	if err != nil {
		t.Fatalf("Failed to list catalog: %v", err)
	}

	for _, e := range entries {
		if len(e.Groups) == 0 {
			continue
		}
		schedule, err := client.GetSchedule(e.Link, e.Groups[0])
		if err != nil {
			t.Fatalf("Failed to extract %s from %s: %v", e.Groups[0], e.Link, err)
		}
		// A schedule can legitimately be empty between semesters
		if len(schedule.Classes) > 0 {
			c := schedule.Classes[0]
			if c.Day == "" || c.Time == "" || c.Subject == "" {
				t.Errorf("Parsed class is missing critical fields: %+v", c)
			}
		}
		return
	}
}
