package series

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/types"
)

// ErrMalformedSeries means the merged prices are not exactly one entry per
// hour. The window optimizer relies on uniform spacing, so this is never patched.
var ErrMalformedSeries = errors.New("malformed price series")

// Build merges the prices of two consecutive days into one chronological
// series in loc (Stockholm when nil). Either day may be empty; both empty
// gives an empty series and no error.
func Build(loc *time.Location, today, tomorrow []types.RawPricePoint) (Series, error) {
	if loc == nil {
		loc = hours.Stockholm()
	}

	s := make(Series, 0, len(today)+len(tomorrow))
	s = appendEntries(s, loc, today, Today)
	s = appendEntries(s, loc, tomorrow, Tomorrow)

	slices.SortStableFunc(s, func(a, b PriceEntry) int {
		return a.Start.Compare(b.Start)
	})

	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func appendEntries(s Series, loc *time.Location, points []types.RawPricePoint, source Provenance) Series {
	for _, p := range points {
		s = append(s, PriceEntry{
			Start:  p.Start.In(loc),
			Price:  p.Price,
			Source: source,
		})
	}
	return s
}

func validate(s Series) error {
	for i, e := range s {
		if !hours.IsHourAligned(e.Start) {
			return fmt.Errorf("%w: %s (%s) does not start at a whole hour",
				ErrMalformedSeries, hours.FormatMinute(e.Start), e.Source)
		}
		if i == 0 {
			continue
		}
		prev := s[i-1]
		switch gap := e.Start.Sub(prev.Start); {
		case gap == 0:
			return fmt.Errorf("%w: duplicate hour %s (%s and %s)",
				ErrMalformedSeries, hours.FormatMinute(e.Start), prev.Source, e.Source)
		case gap != time.Hour:
			return fmt.Errorf("%w: %v gap between %s and %s",
				ErrMalformedSeries, gap, hours.FormatMinute(prev.Start), hours.FormatMinute(e.Start))
		}
	}
	return nil
}
