package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/optimize"
	"github.com/angas/elpris-go/series"
	"github.com/angas/elpris-go/stats"
	"github.com/angas/elpris-go/types"
	"github.com/angas/elpris-go/types/maybe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSource serves fixed prices per date, keyed by YYYY-MM-DD.
type fixtureSource struct {
	days  map[string][]float64
	err   map[string]error
	calls []string
}

func (f *fixtureSource) FetchPrices(ctx context.Context, date time.Time, zone types.Zone) ([]types.RawPricePoint, error) {
	key := hours.FormatDate(date)
	f.calls = append(f.calls, key)
	if err := f.err[key]; err != nil {
		return nil, err
	}
	points := []types.RawPricePoint{}
	for i, p := range f.days[key] {
		points = append(points, types.RawPricePoint{Start: date.Add(time.Duration(i) * time.Hour).UTC(), Price: p})
	}
	return points, nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func options(charging maybe.Maybe[int]) Options {
	return Options{
		Zone:          types.ZoneSE3,
		Date:          time.Date(2025, 2, 2, 15, 30, 0, 0, hours.Stockholm()),
		DisplayMode:   series.PriceDescending,
		ChargingHours: charging,
		Logger:        discard,
	}
}

func flat(n int, price float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = price
	}
	return prices
}

func TestRun(t *testing.T) {
	today := append([]float64{0.50, 0.30, 0.40}, flat(21, 1.0)...)
	src := &fixtureSource{days: map[string][]float64{
		"2025-02-02": today,
		"2025-02-03": flat(24, 0.9),
	}}

	result, err := Run(context.Background(), src, options(maybe.Some(2)))
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-02-02", "2025-02-03"}, src.calls)
	assert.True(t, result.HasData())
	assert.Len(t, result.Series, 48)
	assert.Len(t, result.Display, 48)
	assert.Equal(t, 1.0, result.Display[0].Price)
	assert.Equal(t, 0.30, result.Display[47].Price)

	st, ok := result.Statistics.Get()
	require.True(t, ok)
	assert.Equal(t, 0.30, st.Cheapest.Price)

	w, ok := result.Window.Get()
	require.True(t, ok)
	assert.Equal(t, "2025-02-02 01:00", hours.FormatMinute(w.Start))
	assert.InDelta(t, 0.70, w.Total, 1e-12)
	assert.NoError(t, result.WindowErr)
}

func TestRunWithoutCharging(t *testing.T) {
	src := &fixtureSource{days: map[string][]float64{"2025-02-02": {0.5, 0.3, 0.4}}}

	result, err := Run(context.Background(), src, options(maybe.None[int]()))
	require.NoError(t, err)
	assert.True(t, result.Statistics.IsValid())
	assert.False(t, result.Window.IsValid())
	assert.NoError(t, result.WindowErr)
}

func TestRunNoData(t *testing.T) {
	src := &fixtureSource{}

	result, err := Run(context.Background(), src, options(maybe.Some(2)))
	require.NoError(t, err)
	assert.False(t, result.HasData())
	assert.False(t, result.Statistics.IsValid())
	assert.False(t, result.Window.IsValid())
	assert.True(t, result.Date.Equal(time.Date(2025, 2, 2, 0, 0, 0, 0, hours.Stockholm())))

	_, err = stats.Compute(result.Series)
	assert.ErrorIs(t, err, stats.ErrEmptySeries)
}

func TestRunInsufficientData(t *testing.T) {
	src := &fixtureSource{days: map[string][]float64{"2025-02-02": {0.5, 0.3, 0.4}}}

	result, err := Run(context.Background(), src, options(maybe.Some(8)))
	require.NoError(t, err)
	assert.True(t, result.Statistics.IsValid())
	assert.False(t, result.Window.IsValid())
	assert.ErrorIs(t, result.WindowErr, optimize.ErrInsufficientData)
}

func TestRunInvalidWindowLength(t *testing.T) {
	src := &fixtureSource{days: map[string][]float64{"2025-02-02": {0.5, 0.3, 0.4}}}

	result, err := Run(context.Background(), src, options(maybe.Some(0)))
	require.NoError(t, err)
	assert.ErrorIs(t, result.WindowErr, optimize.ErrInvalidWindowLength)
}

func TestRunFetchError(t *testing.T) {
	errDown := errors.New("down")
	src := &fixtureSource{
		days: map[string][]float64{"2025-02-02": {0.5}},
		err:  map[string]error{"2025-02-03": errDown},
	}

	_, err := Run(context.Background(), src, options(maybe.None[int]()))
	assert.ErrorIs(t, err, errDown)
	assert.ErrorContains(t, err, "2025-02-03")
}

func TestRunMalformed(t *testing.T) {
	src := &fixtureSource{days: map[string][]float64{
		"2025-02-02": {0.5, 0.3, 0.4},
		"2025-02-03": {0.5},
	}}

	_, err := Run(context.Background(), src, options(maybe.None[int]()))
	assert.ErrorIs(t, err, series.ErrMalformedSeries)
}
