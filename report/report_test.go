package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/angas/elpris-go/database"
	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/optimize"
	"github.com/angas/elpris-go/pipeline"
	"github.com/angas/elpris-go/series"
	"github.com/angas/elpris-go/stats"
	"github.com/angas/elpris-go/types"
	"github.com/angas/elpris-go/types/maybe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(t *testing.T, chargingHours int, prices ...float64) pipeline.Result {
	t.Helper()
	start := time.Date(2025, 2, 2, 0, 0, 0, 0, hours.Stockholm())
	var raw []types.RawPricePoint
	for i, p := range prices {
		raw = append(raw, types.RawPricePoint{Start: start.Add(time.Duration(i) * time.Hour), Price: p})
	}
	s, err := series.Build(hours.Stockholm(), raw, nil)
	require.NoError(t, err)

	r := pipeline.Result{
		Zone:          types.ZoneSE3,
		Date:          start,
		Series:        s,
		Display:       series.SortForDisplay(s, series.Chronological),
		Statistics:    maybe.None[stats.Statistics](),
		Window:        maybe.None[optimize.ChargingWindow](),
		ChargingHours: maybe.Some(chargingHours),
	}
	if len(s) > 0 {
		st, err := stats.Compute(s)
		require.NoError(t, err)
		r.Statistics = maybe.Some(st)

		w, err := optimize.FindOptimalWindow(s, chargingHours)
		if err != nil {
			r.WindowErr = err
		} else {
			r.Window = maybe.Some(w)
		}
	}
	return r
}

func TestPrintPlain(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Options{Locale: LocalePlain})
	require.NoError(t, err)

	require.NoError(t, p.Print(result(t, 2, 0.5, 0.3, 0.4)))

	expected := `Electricity prices for zone SE3:
2025-02-02 00:00 | 0.500 SEK/kWh | today
2025-02-02 01:00 | 0.300 SEK/kWh | today
2025-02-02 02:00 | 0.400 SEK/kWh | today

Mean price:          0.400 SEK/kWh
Cheapest hour:       2025-02-02 01:00 | 0.300 SEK/kWh
Most expensive hour: 2025-02-02 00:00 | 0.500 SEK/kWh

Cheapest 2-hour charging window: 2025-02-02 01:00 - 2025-02-02 03:00
  Total: 0.700 SEK/kWh, average: 0.350 SEK/kWh
`
	assert.Equal(t, expected, buf.String())
}

func TestPrintSwedish(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Options{Locale: "sv-SE", Unit: UnitOre})
	require.NoError(t, err)

	require.NoError(t, p.Print(result(t, 2, 0.5, 0.3, 0.4)))
	assert.Contains(t, buf.String(), "2025-02-02 00:00 | 50,0 öre/kWh | today")
	assert.Contains(t, buf.String(), "Mean price:          40,0 öre/kWh")
}

func TestPrintSwedishDecimalComma(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Options{Locale: "sv-SE", Unit: UnitSEK, ChargingPower: 10, EnergyTax: 0.5, GridBenefit: 0.1})
	require.NoError(t, err)

	require.NoError(t, p.Print(result(t, 2, 0.37, 0.5, 0.3, 0.4)))
	out := buf.String()
	assert.Contains(t, out, "2025-02-02 00:00 | 0,370 SEK/kWh | today")
	assert.Contains(t, out, "Total: 0,700 SEK/kWh, average: 0,350 SEK/kWh")
	assert.Contains(t, out, "Estimated cost at 10,0 kW: 15,00 SEK")
	assert.NotContains(t, out, "0.370")
}

func TestPrintEstimatedCost(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Options{ChargingPower: 10, EnergyTax: 0.5, GridBenefit: 0.1})
	require.NoError(t, err)

	require.NoError(t, p.Print(result(t, 2, 0.5, 0.3, 0.4)))
	// 10 kW * ((0.3 + 0.4) + 2 * (0.5 - 0.1))
	assert.Contains(t, buf.String(), "Estimated cost at 10.0 kW: 15.00 SEK")
}

func TestPrintNoData(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Options{})
	require.NoError(t, err)

	require.NoError(t, p.Print(result(t, 2)))
	assert.Equal(t, "No data available for SE3 on 2025-02-02\n", buf.String())
}

func TestPrintWindowErrors(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Options{})
	require.NoError(t, err)

	require.NoError(t, p.Print(result(t, 5, 0.5, 0.3, 0.4)))
	assert.True(t, strings.HasSuffix(buf.String(), "Not enough data for a 5-hour window (3 hours available)\n"))
	assert.NotContains(t, buf.String(), "Cheapest 5-hour")

	buf.Reset()
	require.NoError(t, p.Print(result(t, 0, 0.5, 0.3, 0.4)))
	assert.Contains(t, buf.String(), "Invalid charging window of 0 hours")
}

func TestNewInvalidLocale(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Locale: "not a locale!"})
	assert.Error(t, err)
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{"": UnitSEK, "SEK": UnitSEK, "ore": UnitOre, "öre": UnitOre} {
		u, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, u)
	}
	_, err := ParseUnit("EUR")
	assert.Error(t, err)
}

func TestPrintLogEntries(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Options{})
	require.NoError(t, err)

	require.NoError(t, p.PrintLogEntries([]database.LogEntryRow{
		{Timestamp: time.Now(), Level: 4, Message: "energy price provider failed", Attrs: "provider=elprisetjustnu"},
		{Timestamp: time.Now(), Level: 0, Message: "no prices available"},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN  energy price provider failed provider=elprisetjustnu")
	assert.Contains(t, lines[1], "INFO  no prices available")
}
