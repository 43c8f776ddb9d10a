// Package dates converts between civil dates and the linear day index used
// everywhere else in the system. The index is the Modified Julian Day number,
// so stored data stays meaningful to anyone with an astronomy table, but no
// other package ever reasons about calendar fields.
package dates

import "time"

// mjdEpoch is 1858-11-17 UTC, the day MJD 0 fell on.
var mjdEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

const civilLayout = "2006-01-02"

// DayOf returns the day index for the civil date t falls on.
func DayOf(t time.Time) int {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Sub(mjdEpoch).Hours() / 24)
}

// ParseDay parses a YYYY-MM-DD date string into a day index.
func ParseDay(s string) (int, error) {
	t, err := time.Parse(civilLayout, s)
	if err != nil {
		return 0, err
	}
	return DayOf(t), nil
}

// FormatDay renders a day index back as a YYYY-MM-DD string.
func FormatDay(day int) string {
	return mjdEpoch.AddDate(0, 0, day).Format(civilLayout)
}
