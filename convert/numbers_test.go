package convert

import (
	"math"
	"testing"
)

func TestRoundFloat64(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{1.23456, 2, 1.23},
		{1.235, 1, 1.2},
		{0.123456, 5, 0.12346},
		{-0.5, 0, -1},
	}
	for _, tt := range tests {
		if got := RoundFloat64(tt.in, tt.decimals); got != tt.want {
			t.Errorf("RoundFloat64(%f, %d) = %f, want %f", tt.in, tt.decimals, got, tt.want)
		}
	}
}

func TestUnits(t *testing.T) {
	if got := MWh2KWh(523.4); math.Abs(got-0.5234) > 1e-12 {
		t.Errorf("MWh2KWh = %f", got)
	}
	if got := SekToOre(0.5); got != 50 {
		t.Errorf("SekToOre = %f", got)
	}
}
