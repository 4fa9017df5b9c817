package model

import (
	"sort"
	"time"
)

// monthKeyLayout matches the upstream planning workbook's month headers,
// e.g. "Feb-26". This declared schema replaces the legacy column heuristic
// ("name contains a separator and is at least 6 chars"): a column is a month
// column iff it parses under this layout, everything else is metadata.
const monthKeyLayout = "Jan-06"

// IsMonthKey reports whether a column name is a recognized month key.
func IsMonthKey(name string) bool {
	_, err := time.Parse(monthKeyLayout, name)
	return err == nil
}

// MonthKeys extracts the month columns from a table header, ordered
// chronologically. Non-month columns are ignored.
func MonthKeys(header []string) []string {
	type keyed struct {
		name string
		t    time.Time
	}
	var months []keyed
	for _, col := range header {
		if t, err := time.Parse(monthKeyLayout, col); err == nil {
			months = append(months, keyed{name: col, t: t})
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].t.Before(months[j].t) })
	keys := make([]string, len(months))
	for i, m := range months {
		keys[i] = m.name
	}
	return keys
}
