package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrShapeMismatch is matched by every ShapeError.
	ErrShapeMismatch = errors.New("unexpected page structure")
)

// FetchError is returned when the upstream page could not be retrieved.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request itself failed
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unexpected status code %d when fetching %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ShapeError reports a timetable row that does not have the expected cells.
type ShapeError struct {
	URL   string
	Group string
	Row   int
	Cells int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: row %d of %q has %d cells, expected %d", e.URL, e.Row, e.Group, e.Cells, len(classColumns))
}

func (e *ShapeError) Is(target error) bool { return target == ErrShapeMismatch }

// NotFoundKind tells which lookup failed.
type NotFoundKind string

const (
	// KindGroup means no catalog entry lists the group.
	KindGroup NotFoundKind = "group"
	// KindSection means the page has no heading or no table for the group.
	KindSection NotFoundKind = "section"
)

// NotFoundError is returned when a group or its timetable section is missing.
type NotFoundError struct {
	Kind      NotFoundKind
	Name      string
	URL       string
	Available []string
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case KindGroup:
		return fmt.Sprintf("Group '%s' not found.", e.Name)
	default:
		return fmt.Sprintf("no timetable section for '%s' on %s", e.Name, e.URL)
	}
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
