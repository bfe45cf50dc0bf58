// Package slots holds the salon's fixed catalog of bookable half-hour
// windows: 09:00–11:30 and 13:00–17:30, with the lunch hour left out.
package slots

import "time"

var catalog = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}

var members = func() map[string]bool {
	m := make(map[string]bool, len(catalog))
	for _, s := range catalog {
		m[s] = true
	}
	return m
}()

// All returns the catalog in booking order. Callers must not mutate it.
func All() []string { return catalog }

// Valid reports whether s is one of the catalog tokens.
func Valid(s string) bool { return members[s] }

// NormalizeDate discards the time of day so that date equality is
// well-defined: midnight UTC, same as the booking records in the store.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD request value into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}
