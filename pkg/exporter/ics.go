package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // stable zone data for the semester timezone
	"unicode"

	"orarctl/pkg/scraper"

	ics "github.com/arran4/golang-ical"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const localLayout = "20060102T150405"

// Options places the weekly timetable on the calendar.
type Options struct {
	SemesterStart time.Time // any day of teaching week 1, normally its Monday
	Weeks         int
	Location      *time.Location
}

// ParseOptions builds Options from their textual configuration.
func ParseOptions(semesterStart string, weeks int, timezone string) (Options, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Options{}, fmt.Errorf("could not load timezone: %w", err)
	}
	start, err := time.ParseInLocation("2006-01-02", semesterStart, loc)
	if err != nil {
		return Options{}, fmt.Errorf("invalid semester start %q: %w", semesterStart, err)
	}
	if weeks <= 0 {
		return Options{}, fmt.Errorf("semester must span at least one week, got %d", weeks)
	}
	return Options{SemesterStart: start, Weeks: weeks, Location: loc}, nil
}

var weekdays = map[string]time.Weekday{
	"luni":     time.Monday,
	"marti":    time.Tuesday,
	"miercuri": time.Wednesday,
	"joi":      time.Thursday,
	"vineri":   time.Friday,
	"sambata":  time.Saturday,
	"duminica": time.Sunday,
}

// GenerateICS writes one recurring event per class of schedules to w and
// returns how many events were written. Classes shared by several groups are
// written once; rows with an unreadable day or time are skipped.
func GenerateICS(schedules []scraper.GroupSchedule, opts Options, w io.Writer) (int, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//orarctl//timetable export//RO")

	tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{opts.Location.String()}}
	seen := make(map[string]bool)
	written := 0

	for si, s := range schedules {
		for ci, c := range s.Classes {
			key := strings.Join([]string{c.Day, c.Time, c.Frequency, c.Room, c.Formation, c.Kind, c.Subject}, "|")
			if seen[key] {
				continue
			}

			day, ok := weekdays[fold(c.Day)]
			if !ok {
				continue
			}
			from, to, ok := parseTimeRange(c.Time)
			if !ok {
				continue
			}
			offset, interval := parseFrequency(c.Frequency)
			count := occurrences(opts.Weeks, offset, interval)
			if count == 0 {
				continue
			}
			seen[key] = true

			first := firstOccurrence(opts.SemesterStart, day, offset)
			start := wallClock(first, from, opts.Location)
			end := wallClock(first, to, opts.Location)

			event := cal.AddEvent(fmt.Sprintf("%s-%d-%d@orarctl", start.Format(localLayout), si, ci))
			event.SetDtStampTime(time.Now())
			event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localLayout), tzid)
			event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localLayout), tzid)
			event.AddProperty(ics.ComponentPropertyRrule, fmt.Sprintf("FREQ=WEEKLY;INTERVAL=%d;COUNT=%d", interval, count))
			event.SetSummary(summary(c))
			event.SetLocation(c.Room)
			event.SetDescription(fmt.Sprintf("Group: %s\nFormation: %s\nFrequency: %s\nInstructor: %s",
				s.GroupName, c.Formation, frequencyLabel(c.Frequency), c.Instructor))
			written++
		}
	}

	return written, cal.SerializeTo(w)
}

// wallClock places the clock reading sinceMidnight on day, so a class at 8
// stays at 8 on days where the zone changes its offset.
func wallClock(day time.Time, sinceMidnight time.Duration, loc *time.Location) time.Time {
	hour := int(sinceMidnight / time.Hour)
	minute := int(sinceMidnight % time.Hour / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

func summary(c scraper.ClassRecord) string {
	if c.Kind == "" {
		return c.Subject
	}
	return fmt.Sprintf("%s (%s)", c.Subject, c.Kind)
}

func frequencyLabel(f string) string {
	if strings.TrimSpace(f) == "" {
		return "weekly"
	}
	return f
}

// fold lowercases s and strips diacritics, so "Marţi" and "Marți" become "marti".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// parseTimeRange reads "8-10", "08:00-10:00" or "8:30 - 10".
func parseTimeRange(s string) (time.Duration, time.Duration, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	from, ok := parseClock(parts[0])
	if !ok {
		return 0, 0, false
	}
	to, ok := parseClock(parts[1])
	if !ok || to <= from {
		return 0, 0, false
	}
	return from, to, true
}

func parseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	hourStr, minStr, hasMin := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute := 0
	if hasMin {
		minute, err = strconv.Atoi(minStr)
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, true
}

// parseFrequency maps "sapt. 1" to odd weeks and "sapt. 2" to even weeks.
// It returns the week offset of the first occurrence and the repeat interval.
func parseFrequency(f string) (offset, interval int) {
	f = fold(f)
	if !strings.HasPrefix(f, "sapt") {
		return 0, 1
	}
	switch {
	case strings.Contains(f, "1"):
		return 0, 2
	case strings.Contains(f, "2"):
		return 1, 2
	default:
		return 0, 1
	}
}

func occurrences(weeks, offset, interval int) int {
	if weeks <= offset {
		return 0
	}
	return (weeks - offset + interval - 1) / interval
}

func firstOccurrence(semesterStart time.Time, day time.Weekday, weekOffset int) time.Time {
	delta := (int(day) - int(semesterStart.Weekday()) + 7) % 7
	return semesterStart.AddDate(0, 0, delta+7*weekOffset)
}
