package series

import (
	"time"

	"github.com/samber/lo"
)

// Provenance tells which of the two fetched days an entry came from.
type Provenance string

const (
	Today    Provenance = "today"
	Tomorrow Provenance = "tomorrow"
)

type PriceEntry struct {
	Start  time.Time // Start of the hour in the display location
	Price  float64   // SEK per kWh excluding VAT
	Source Provenance
}

// End is the exclusive end of the hour.
func (e PriceEntry) End() time.Time {
	return e.Start.Add(time.Hour)
}

// Series is an ordered run of hourly prices. Functions in this package never
// modify a Series they are given; reorderings are returned as new slices.
type Series []PriceEntry

func (s Series) Prices() []float64 {
	return lo.Map(s, func(e PriceEntry, _ int) float64 { return e.Price })
}

func (s Series) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns a copy that is safe to reorder.
func (s Series) Clone() Series {
	c := make(Series, len(s))
	copy(c, s)
	return c
}
