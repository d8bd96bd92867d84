package scraper

// CatalogEntry is one major/year combination listed on the index page
// (e.g. "Informatica - linia de studiu romana", "Anul 1").
type CatalogEntry struct {
	Major  string   `json:"major"`
	Year   string   `json:"year"`
	Groups []string `json:"groups"`
	Link   string   `json:"link"`
}

// ClassRecord is a single row of a group's weekly timetable.
// All fields are copied verbatim from the table cells.
type ClassRecord struct {
	Day        string `json:"ziua"`      // "Luni"
	Time       string `json:"orele"`     // "8-10"
	Frequency  string `json:"frecventa"` // "sapt. 1", "sapt. 2" or empty
	Room       string `json:"sala"`
	Formation  string `json:"formatia"` // "211", "211/1", "IE1" ...
	Kind       string `json:"tipul"`    // "Curs", "Seminar", "Laborator"
	Subject    string `json:"disciplina"`
	Instructor string `json:"cadrul_didactic"`
}

// GroupSchedule holds the classes of one study group.
type GroupSchedule struct {
	GroupName string        `json:"group_name"`
	Classes   []ClassRecord `json:"classes"`
}
