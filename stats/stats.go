package stats

import (
	"errors"

	"github.com/angas/elpris-go/calc"
	"github.com/angas/elpris-go/series"
)

var ErrEmptySeries = errors.New("no prices to compute statistics from")

type Statistics struct {
	Count         int
	Mean          float64 // Arithmetic mean price in SEK/kWh
	Cheapest      series.PriceEntry
	MostExpensive series.PriceEntry
}

// Compute does not rely on the order of s. Ties on the extreme prices are
// resolved to the earliest hour, so permutations of the same hours give the
// same result.
func Compute(s series.Series) (Statistics, error) {
	if s.IsEmpty() {
		return Statistics{}, ErrEmptySeries
	}

	cheapest, mostExpensive := s[0], s[0]
	for _, e := range s[1:] {
		if e.Price < cheapest.Price || (e.Price == cheapest.Price && e.Start.Before(cheapest.Start)) {
			cheapest = e
		}
		if e.Price > mostExpensive.Price || (e.Price == mostExpensive.Price && e.Start.Before(mostExpensive.Start)) {
			mostExpensive = e
		}
	}

	return Statistics{
		Count:         len(s),
		Mean:          calc.Mean(s.Prices()),
		Cheapest:      cheapest,
		MostExpensive: mostExpensive,
	}, nil
}
