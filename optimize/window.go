package optimize

import (
	"errors"
	"time"

	"github.com/angas/elpris-go/calc"
	"github.com/angas/elpris-go/series"
)

var (
	ErrInvalidWindowLength = errors.New("charging window length must be a positive number of hours")
	ErrInsufficientData    = errors.New("not enough hourly prices for the charging window")
)

// Running sums closer than this are compared again with compensated sums, as
// rounding in the running sum could otherwise decide a tie.
const tieTolerance = 1e-9

type ChargingWindow struct {
	StartIndex int       // Index of the first hour in the searched series
	Start      time.Time // Start of the first hour
	End        time.Time // End of the last hour (exclusive)
	Hours      int
	Total      float64 // Sum of the hourly prices in SEK/kWh
	Average    float64 // Total / Hours
	Entries    series.Series
}

// EstimatedCost is the consumer cost in SEK of drawing powerKW during every
// hour of the window, energy tax included and grid benefit deducted.
func (w ChargingWindow) EstimatedCost(powerKW, energyTax, gridBenefit float64) float64 {
	costs := make([]float64, len(w.Entries))
	for i, e := range w.Entries {
		costs[i] = calc.BuyPrice(powerKW, e.Price, energyTax, gridBenefit)
	}
	return calc.Sum(costs)
}

// FindOptimalWindow finds the run of hours consecutive entries with the lowest
// total price. The series must be in ascending chronological order with one
// entry per hour. The earliest window wins ties.
func FindOptimalWindow(s series.Series, hours int) (ChargingWindow, error) {
	if hours <= 0 {
		return ChargingWindow{}, ErrInvalidWindowLength
	}
	if len(s) < hours {
		return ChargingWindow{}, ErrInsufficientData
	}

	sum := 0.0
	for _, e := range s[:hours] {
		sum += e.Price
	}

	bestSum, bestStart := sum, 0
	for start := 1; start+hours <= len(s); start++ {
		sum += s[start+hours-1].Price - s[start-1].Price
		switch d := sum - bestSum; {
		case d < -tieTolerance:
			bestSum, bestStart = sum, start
		case d <= tieTolerance && windowTotal(s, start, hours) < windowTotal(s, bestStart, hours):
			bestSum, bestStart = sum, start
		}
	}

	entries := s[bestStart : bestStart+hours].Clone()
	total := calc.Sum(entries.Prices())

	return ChargingWindow{
		StartIndex: bestStart,
		Start:      entries[0].Start,
		End:        entries[len(entries)-1].End(),
		Hours:      hours,
		Total:      total,
		Average:    total / float64(hours),
		Entries:    entries,
	}, nil
}

func windowTotal(s series.Series, start, hours int) float64 {
	return calc.Sum(s[start : start+hours].Prices())
}
