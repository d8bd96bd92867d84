package tui

import (
	"strings"
	"testing"

	"orarctl/pkg/scraper"
)

func TestRenderCatalog(t *testing.T) {
	out := RenderCatalog([]scraper.CatalogEntry{
		{Major: "Informatica", Year: "Anul 1", Groups: []string{"Grupa 211", "Grupa 212"}},
		{Major: "Informatica", Year: "Anul 2", Groups: []string{}},
		{Major: "Matematica", Year: "Anul 1", Groups: []string{"Grupa 111"}},
	})

	if n := strings.Count(out, "Informatica"); n != 1 {
		t.Errorf("expected the major to be printed once, got %d times:\n%s", n, out)
	}
	for _, want := range []string{"Grupa 211, Grupa 212", "Anul 2", "no groups", "Matematica", "Grupa 111"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected catalog to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderCatalogEmpty(t *testing.T) {
	if out := RenderCatalog(nil); !strings.Contains(out, "No timetables published.") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRenderSchedule(t *testing.T) {
	out := RenderSchedule(scraper.GroupSchedule{
		GroupName: "Grupa 211",
		Classes: []scraper.ClassRecord{
			{Day: "Luni", Time: "8-10", Room: "2/I", Formation: "IE1", Kind: "Curs", Subject: "Algoritmica", Instructor: "Prof. Pop"},
		},
	})

	for _, want := range []string{"Grupa 211", "Subject", "Instructor", "Luni", "Algoritmica", "Prof. Pop"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected schedule to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderScheduleEmpty(t *testing.T) {
	out := RenderSchedule(scraper.GroupSchedule{GroupName: "Grupa 911", Classes: []scraper.ClassRecord{}})
	if !strings.Contains(out, "No classes scheduled.") {
		t.Errorf("unexpected output %q", out)
	}
}
