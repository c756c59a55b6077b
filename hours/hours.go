package hours

import (
	"fmt"
	"time"
)

const (
	DateLayout   = "2006-01-02"
	MinuteLayout = "2006-01-02 15:04"
)

var stockholmLoc *time.Location

func init() {
	var err error
	stockholmLoc, err = time.LoadLocation("Europe/Stockholm")
	if err != nil {
		panic(fmt.Sprintf("failed to load Stockholm location: %v", err))
	}
}

// Stockholm is the location the Nordic day-ahead market publishes its days in.
func Stockholm() *time.Location {
	return stockholmLoc
}

func LocationStockholm(t time.Time) time.Time {
	return t.In(stockholmLoc)
}

// LoadLocation falls back to Stockholm for an empty name.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return stockholmLoc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", name, err)
	}
	return loc, nil
}

// ParseDate parses YYYY-MM-DD as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// StartOfDay is local midnight of the day t falls on, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func Today(loc *time.Location) time.Time {
	return StartOfDay(time.Now().In(loc))
}

// NextDay is the following calendar day, also across DST shifts.
func NextDay(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, 1)
}

// IsHourAligned reports whether t is at a whole hour. All Swedish offsets are
// whole hours so truncating the absolute time is enough.
func IsHourAligned(t time.Time) bool {
	return t.Truncate(time.Hour).Equal(t)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatMinute(t time.Time) string {
	return t.Format(MinuteLayout)
}
