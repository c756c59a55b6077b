package elprisetjustnu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/angas/elpris-go/types"
)

const DefaultBaseURL = "https://www.elprisetjustnu.se"

type rawPrice struct {
	SEKPerKWh float64   `json:"SEK_per_kWh"`
	EURPerKWh float64   `json:"EUR_per_kWh"`
	EXR       float64   `json:"EXR"`
	TimeStart time.Time `json:"time_start"`
	TimeEnd   time.Time `json:"time_end"`
}

type ElPrisetJustNu struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the elprisetjustnu.se price API. An empty baseURL
// means DefaultBaseURL and a nil client means http.DefaultClient.
func New(baseURL string, client *http.Client) ElPrisetJustNu {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return ElPrisetJustNu{baseURL: baseURL, client: client}
}

func (e ElPrisetJustNu) FetchPrices(ctx context.Context, date time.Time, zone types.Zone) ([]types.RawPricePoint, error) {
	url := fmt.Sprintf("%s/api/v1/prices/%d/%02d-%02d_%s.json",
		e.baseURL, date.Year(), int(date.Month()), date.Day(), zone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	// Prices for tomorrow are published around 13:00, before that the day is missing.
	if resp.StatusCode == http.StatusNotFound {
		return []types.RawPricePoint{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rawPrices []rawPrice
	if err := json.NewDecoder(resp.Body).Decode(&rawPrices); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make([]types.RawPricePoint, 0, len(rawPrices))
	for _, raw := range rawPrices {
		prices = append(prices, types.RawPricePoint{
			Start: raw.TimeStart,
			Price: raw.SEKPerKWh,
		})
	}

	return types.ToHourly(prices), nil
}
