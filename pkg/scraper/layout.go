package scraper

// Layout captures the structural conventions of the timetable pages.
type Layout struct {
	// GroupHeading is the selector of section headings on specialization pages.
	GroupHeading string
	// GroupMarker must appear (case-sensitive) in a heading for it to name a group.
	GroupMarker string
}

// DefaultLayout matches the faculty's published pages.
var DefaultLayout = Layout{
	GroupHeading: "h1",
	GroupMarker:  "Grupa",
}

// column binds one table position to a ClassRecord field.
type column struct {
	Name string
	Set  func(r *ClassRecord, v string)
}

// classColumns lists the timetable columns in the order they appear on the
// page. Reordering upstream columns only requires reordering this table.
var classColumns = []column{
	{"ziua", func(r *ClassRecord, v string) { r.Day = v }},
	{"orele", func(r *ClassRecord, v string) { r.Time = v }},
	{"frecventa", func(r *ClassRecord, v string) { r.Frequency = v }},
	{"sala", func(r *ClassRecord, v string) { r.Room = v }},
	{"formatia", func(r *ClassRecord, v string) { r.Formation = v }},
	{"tipul", func(r *ClassRecord, v string) { r.Kind = v }},
	{"disciplina", func(r *ClassRecord, v string) { r.Subject = v }},
	{"cadrul_didactic", func(r *ClassRecord, v string) { r.Instructor = v }},
}

// ColumnNames returns the JSON names of the timetable columns in page order.
func ColumnNames() []string {
	names := make([]string, len(classColumns))
	for i, col := range classColumns {
		names[i] = col.Name
	}
	return names
}
