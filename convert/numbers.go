package convert

import (
	"math"
)

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}

// MWh2KWh converts a price per MWh into a price per kWh.
func MWh2KWh(pricePerMWh float64) float64 {
	return pricePerMWh / 1e3
}

func SekToOre(sek float64) float64 {
	return sek * 100
}
