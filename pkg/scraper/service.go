package scraper

// AllSchedules returns the schedule of every group of every catalog entry,
// in catalog order.
func (c *Client) AllSchedules() ([]GroupSchedule, error) {
	entries, err := c.ListCatalog()
	if err != nil {
		return nil, err
	}

	schedules := []GroupSchedule{}
	for _, e := range entries {
		for _, g := range e.Groups {
			s, err := c.GetSchedule(e.Link, g)
			if err != nil {
				return nil, err
			}
			schedules = append(schedules, s)
		}
	}
	return schedules, nil
}

// FindSchedule returns the schedule of group from the first catalog entry
// listing it. Membership is an exact string match.
func (c *Client) FindSchedule(group string) (GroupSchedule, error) {
	entries, err := c.ListCatalog()
	if err != nil {
		return GroupSchedule{}, err
	}

	if e, ok := FindEntry(entries, group); ok {
		return c.GetSchedule(e.Link, group)
	}

	return GroupSchedule{}, &NotFoundError{
		Kind:      KindGroup,
		Name:      group,
		Available: AvailableGroups(entries),
	}
}

// FindEntry returns the first entry whose groups contain group.
func FindEntry(entries []CatalogEntry, group string) (CatalogEntry, bool) {
	for _, e := range entries {
		for _, g := range e.Groups {
			if g == group {
				return e, true
			}
		}
	}
	return CatalogEntry{}, false
}

// AvailableGroups lists the distinct group names of entries in first-seen order.
func AvailableGroups(entries []CatalogEntry) []string {
	seen := make(map[string]bool)
	groups := []string{}
	for _, e := range entries {
		for _, g := range e.Groups {
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}
	return groups
}
