package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/types"
)

// Named gives a price source a name for logging.
type Named struct {
	Name   string
	Source types.PriceSource
}

// Fallback asks its providers in order and returns the first answer without
// an error. An empty answer is a valid answer and stops the search.
type Fallback struct {
	logger    *slog.Logger
	providers []Named
}

func NewFallback(logger *slog.Logger, providers ...Named) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{
		logger:    logger.With(slog.String("module", "provider")),
		providers: providers,
	}
}

func (f *Fallback) FetchPrices(ctx context.Context, date time.Time, zone types.Zone) ([]types.RawPricePoint, error) {
	if len(f.providers) == 0 {
		return nil, errors.New("no energy price providers")
	}

	var errs []error
	for _, p := range f.providers {
		prices, err := p.Source.FetchPrices(ctx, date, zone)
		if err != nil {
			f.logger.Warn("energy price provider failed",
				slog.String("provider", p.Name),
				slog.String("date", hours.FormatDate(date)),
				slog.String("zone", zone.String()),
				slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}

		f.logger.Debug("fetched energy prices",
			slog.String("provider", p.Name),
			slog.String("date", hours.FormatDate(date)),
			slog.String("zone", zone.String()),
			slog.Int("noOfPrices", len(prices)))
		return prices, nil
	}

	return nil, fmt.Errorf("all energy price providers failed: %w", errors.Join(errs...))
}
