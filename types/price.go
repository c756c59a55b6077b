package types

import (
	"context"
	"slices"
	"time"

	"github.com/angas/elpris-go/calc"
	"github.com/samber/lo"
)

// RawPricePoint is a spot price as delivered by a price source.
type RawPricePoint struct {
	Start time.Time
	Price float64 // SEK per kWh excluding VAT
}

// PriceSource fetches the spot prices for one calendar date in one zone.
// An empty, non-nil slice means that no prices are published for the date.
type PriceSource interface {
	FetchPrices(ctx context.Context, date time.Time, zone Zone) ([]RawPricePoint, error)
}

// ToHourly folds sub-hourly prices (quarter-hour products) into hourly means.
// Points that are already hour aligned are returned as they are, so duplicated
// hours from a defect source are left for the caller to detect.
func ToHourly(points []RawPricePoint) []RawPricePoint {
	if lo.EveryBy(points, isHourAligned) {
		return points
	}

	groups := lo.GroupBy(points, func(p RawPricePoint) int64 {
		return p.Start.Truncate(time.Hour).Unix()
	})

	keys := lo.Keys(groups)
	slices.Sort(keys)

	hourly := make([]RawPricePoint, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		prices := lo.Map(group, func(p RawPricePoint, _ int) float64 { return p.Price })
		hourly = append(hourly, RawPricePoint{
			Start: time.Unix(key, 0).In(group[0].Start.Location()),
			Price: calc.Mean(prices),
		})
	}
	return hourly
}

func isHourAligned(p RawPricePoint) bool {
	return p.Start.Truncate(time.Hour).Equal(p.Start)
}
