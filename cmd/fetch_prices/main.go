package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/angas/elpris-go/elprisetjustnu"
	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/nordpool"
	"github.com/angas/elpris-go/types"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
)

// Dumps the raw price points of a single provider, e.g. to compare the two
// sources for a given day.
func main() {
	providerName := pflag.String("provider", "elprisetjustnu", "elprisetjustnu or nordpool")
	zoneArg := pflag.String("zone", "SE3", "price zone")
	dateArg := pflag.String("date", "", "day YYYY-MM-DD, defaults to today")
	baseURL := pflag.String("url", "", "override the provider base URL")
	pflag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339Nano,
	}))

	zone, err := types.ParseZone(*zoneArg)
	if err != nil {
		logger.Error("invalid zone", slog.Any("error", err))
		os.Exit(2)
	}

	date := hours.Today(hours.Stockholm())
	if *dateArg != "" {
		if date, err = hours.ParseDate(*dateArg, hours.Stockholm()); err != nil {
			logger.Error("invalid date", slog.Any("error", err))
			os.Exit(2)
		}
	}

	client := &http.Client{Timeout: 10 * time.Second}
	var source types.PriceSource
	switch *providerName {
	case "elprisetjustnu":
		source = elprisetjustnu.New(*baseURL, client)
	case "nordpool":
		source = nordpool.New(*baseURL, client)
	default:
		logger.Error("unknown provider", slog.String("provider", *providerName))
		os.Exit(2)
	}

	prices, err := source.FetchPrices(context.Background(), date, zone)
	if err != nil {
		logger.Error("failed to fetch prices", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Debug("fetched prices", slog.String("provider", *providerName), slog.Int("count", len(prices)))

	for _, p := range prices {
		fmt.Printf("%s\t%.5f\n", hours.FormatMinute(hours.LocationStockholm(p.Start)), p.Price)
	}
}
