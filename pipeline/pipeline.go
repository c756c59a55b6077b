package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/optimize"
	"github.com/angas/elpris-go/series"
	"github.com/angas/elpris-go/stats"
	"github.com/angas/elpris-go/types"
	"github.com/angas/elpris-go/types/maybe"
)

type Options struct {
	Zone          types.Zone
	Date          time.Time      // The "today" of the run, only the calendar date is used
	Location      *time.Location // Display location, Stockholm when nil
	DisplayMode   series.DisplayMode
	ChargingHours maybe.Maybe[int]
	Logger        *slog.Logger
}

type Result struct {
	Zone       types.Zone
	Date       time.Time
	Series     series.Series // Chronological
	Display    series.Series // Ordered by the requested display mode
	Statistics maybe.Maybe[stats.Statistics]
	Window     maybe.Maybe[optimize.ChargingWindow]
	// ChargingHours is the requested window length, if any
	ChargingHours maybe.Maybe[int]
	// WindowErr is set when a charging window was requested but could not be
	// found, e.g. optimize.ErrInsufficientData.
	WindowErr error
}

func (r Result) HasData() bool {
	return !r.Series.IsEmpty()
}

// Run fetches the prices for opts.Date and the day after and analyzes them.
// Only fetch failures and malformed data are returned as errors; an empty
// result means no prices are published.
func Run(ctx context.Context, src types.PriceSource, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("module", "pipeline"))

	loc := opts.Location
	if loc == nil {
		loc = hours.Stockholm()
	}
	today := hours.StartOfDay(opts.Date.In(loc))
	tomorrow := hours.NextDay(today)

	result := Result{
		Zone:          opts.Zone,
		Date:          today,
		Statistics:    maybe.None[stats.Statistics](),
		Window:        maybe.None[optimize.ChargingWindow](),
		ChargingHours: opts.ChargingHours,
	}

	rawToday, err := src.FetchPrices(ctx, today, opts.Zone)
	if err != nil {
		return result, fmt.Errorf("fetching prices for %s: %w", hours.FormatDate(today), err)
	}
	rawTomorrow, err := src.FetchPrices(ctx, tomorrow, opts.Zone)
	if err != nil {
		return result, fmt.Errorf("fetching prices for %s: %w", hours.FormatDate(tomorrow), err)
	}
	logger.Debug("fetched prices",
		slog.String("zone", opts.Zone.String()),
		slog.Int("today", len(rawToday)),
		slog.Int("tomorrow", len(rawTomorrow)))

	s, err := series.Build(loc, rawToday, rawTomorrow)
	if err != nil {
		return result, fmt.Errorf("building price series for %s: %w", opts.Zone, err)
	}
	result.Series = s
	result.Display = series.SortForDisplay(s, opts.DisplayMode)

	if !result.HasData() {
		logger.Info("no prices available", slog.String("zone", opts.Zone.String()), slog.String("date", hours.FormatDate(today)))
		return result, nil
	}

	st, err := stats.Compute(s)
	if err != nil {
		return result, fmt.Errorf("computing statistics: %w", err)
	}
	result.Statistics = maybe.Some(st)

	if chargingHours, ok := opts.ChargingHours.Get(); ok {
		w, err := optimize.FindOptimalWindow(s, chargingHours)
		if err != nil {
			logger.Info("no charging window", slog.Int("hours", chargingHours), slog.Any("error", err))
			result.WindowErr = err
		} else {
			result.Window = maybe.Some(w)
		}
	}

	return result, nil
}
