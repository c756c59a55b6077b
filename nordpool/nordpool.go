package nordpool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/angas/elpris-go/convert"
	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/types"
)

const DefaultBaseURL = "https://dataportal-api.nordpoolgroup.com"

type Nordpool struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the Nord Pool data portal. An empty baseURL means
// DefaultBaseURL and a nil client means http.DefaultClient.
func New(baseURL string, client *http.Client) Nordpool {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return Nordpool{baseURL: baseURL, client: client}
}

func (n Nordpool) FetchPrices(ctx context.Context, date time.Time, zone types.Zone) ([]types.RawPricePoint, error) {
	query := url.Values{}
	query.Set("date", hours.FormatDate(date))
	query.Set("market", "DayAhead")
	query.Set("deliveryArea", zone.String())
	query.Set("currency", "SEK")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/api/DayAheadPrices?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	// The data portal answers 204 for days that are not yet published.
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return []types.RawPricePoint{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data dayAheadPrices
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make([]types.RawPricePoint, 0, len(data.MultiAreaEntries))
	for _, entry := range data.MultiAreaEntries {
		price, ok := entry.EntryPerArea[zone.String()]
		if !ok {
			continue
		}
		prices = append(prices, types.RawPricePoint{
			Start: entry.DeliveryStart,
			Price: normalizePrice(price),
		})
	}

	return types.ToHourly(prices), nil
}

// normalizePrice converts SEK/MWh into SEK/kWh with the precision elprisetjustnu uses.
func normalizePrice(price float64) float64 {
	return convert.RoundFloat64(convert.MWh2KWh(price), 5)
}
