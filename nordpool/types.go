package nordpool

import "time"

type dayAheadPrices struct {
	DeliveryDateCET  string           `json:"deliveryDateCET"`
	Version          int              `json:"version"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	DeliveryAreas    []string         `json:"deliveryAreas"`
	Market           string           `json:"market"`
	MultiAreaEntries []multiAreaEntry `json:"multiAreaEntries"`
	Currency         string           `json:"currency"`
	ExchangeRate     float64          `json:"exchangeRate"`
	AreaStates       []areaState      `json:"areaStates"`
}

type multiAreaEntry struct {
	DeliveryStart time.Time          `json:"deliveryStart"`
	DeliveryEnd   time.Time          `json:"deliveryEnd"`
	EntryPerArea  map[string]float64 `json:"entryPerArea"` // SEK per MWh
}

type areaState struct {
	State string   `json:"state"` // "Preliminary" or "Final"
	Areas []string `json:"areas"`
}
