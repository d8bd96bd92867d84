package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetSchedule extracts the timetable of groupName from the specialization page at link.
// The returned schedule carries groupName exactly as given.
func (c *Client) GetSchedule(link, groupName string) (GroupSchedule, error) {
	doc, err := c.Document(link)
	if err != nil {
		return GroupSchedule{}, err
	}
	return extractSchedule(doc, c.layout, link, groupName)
}

// ParseSchedule parses a specialization page and extracts the timetable of groupName.
func ParseSchedule(r io.Reader, groupName string) (GroupSchedule, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return GroupSchedule{}, err
	}
	return extractSchedule(doc, DefaultLayout, "", groupName)
}

func extractSchedule(doc *goquery.Document, layout Layout, link, groupName string) (GroupSchedule, error) {
	notFound := &NotFoundError{Kind: KindSection, Name: groupName, URL: link}

	heading := findGroupHeading(doc, layout, groupName)
	if heading.Length() == 0 {
		return GroupSchedule{}, notFound
	}

	table, ok := sectionTable(doc, layout, heading)
	if !ok {
		return GroupSchedule{}, notFound
	}

	classes, err := parseRows(table, link, groupName)
	if err != nil {
		return GroupSchedule{}, err
	}

	return GroupSchedule{GroupName: groupName, Classes: classes}, nil
}

// findGroupHeading prefers a heading equal to groupName and otherwise takes
// the first heading containing it, both ignoring case. The exact pass keeps
// "Grupa 1" from resolving to "Grupa 11".
func findGroupHeading(doc *goquery.Document, layout Layout, groupName string) *goquery.Selection {
	headings := doc.Find(layout.GroupHeading)
	want := strings.TrimSpace(groupName)

	exact := headings.FilterFunction(func(i int, h *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(h.Text()), want)
	})
	if exact.Length() > 0 {
		return exact.First()
	}

	want = strings.ToLower(want)
	return headings.FilterFunction(func(i int, h *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(h.Text()), want)
	}).First()
}

type nodeKind int

const (
	kindOther nodeKind = iota
	kindHeading
	kindTable
)

func classify(n *html.Node, headings map[*html.Node]bool) nodeKind {
	switch {
	case n.Data == "table":
		return kindTable
	case headings[n]:
		return kindHeading
	default:
		return kindOther
	}
}

// sectionTable walks the elements following heading in document order and
// returns the first table, unless another heading comes first.
func sectionTable(doc *goquery.Document, layout Layout, heading *goquery.Selection) (*goquery.Selection, bool) {
	headings := make(map[*html.Node]bool)
	for _, n := range doc.Find(layout.GroupHeading).Nodes {
		headings[n] = true
	}

	all := doc.Find("*")
	start := all.IndexOfSelection(heading)
	if start < 0 {
		return nil, false
	}

	for i := start + 1; i < all.Length(); i++ {
		switch classify(all.Get(i), headings) {
		case kindTable:
			return all.Eq(i), true
		case kindHeading:
			return nil, false
		}
	}
	return nil, false
}

func parseRows(table *goquery.Selection, link, groupName string) ([]ClassRecord, error) {
	classes := []ClassRecord{}
	var shapeErr error

	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		// header row
		if cells.Length() == 0 {
			return true
		}
		if cells.Length() < len(classColumns) {
			shapeErr = &ShapeError{URL: link, Group: groupName, Row: i, Cells: cells.Length()}
			return false
		}

		var rec ClassRecord
		cells.Slice(0, len(classColumns)).Each(func(j int, td *goquery.Selection) {
			classColumns[j].Set(&rec, strings.TrimSpace(td.Text()))
		})
		classes = append(classes, rec)
		return true
	})

	if shapeErr != nil {
		return nil, shapeErr
	}
	return classes, nil
}
