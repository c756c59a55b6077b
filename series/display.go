package series

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type DisplayMode int

const (
	Chronological DisplayMode = iota
	PriceDescending
)

func (m DisplayMode) String() string {
	switch m {
	case Chronological:
		return "chronological"
	case PriceDescending:
		return "price_descending"
	default:
		return "unknown"
	}
}

func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chronological":
		return Chronological, nil
	case "price_descending", "price-descending", "sorted":
		return PriceDescending, nil
	default:
		return Chronological, fmt.Errorf("unknown display mode %q", s)
	}
}

// SortForDisplay returns a reordered copy of s. Equal prices keep their
// chronological order, the same (price, time) order used for the statistics.
func SortForDisplay(s Series, mode DisplayMode) Series {
	sorted := s.Clone()
	switch mode {
	case PriceDescending:
		slices.SortStableFunc(sorted, func(a, b PriceEntry) int {
			if c := cmp.Compare(b.Price, a.Price); c != 0 {
				return c
			}
			return a.Start.Compare(b.Start)
		})
	default:
		slices.SortStableFunc(sorted, func(a, b PriceEntry) int {
			return a.Start.Compare(b.Start)
		})
	}
	return sorted
}
