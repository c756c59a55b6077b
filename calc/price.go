package calc

import "math"

// BuyPrice is what a consumer pays for kWh bought at the given spot price.
func BuyPrice(kWh, price, energyTax, gridBenefit float64) float64 {
	return kWh * (price + energyTax - gridBenefit)
}

// Sum adds values with Neumaier's compensated summation, so the result does
// not depend on the order of the values beyond the last bit.
func Sum(values []float64) float64 {
	sum, comp := 0.0, 0.0
	for _, v := range values {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			comp += (sum - t) + v
		} else {
			comp += (v - t) + sum
		}
		sum = t
	}
	return sum + comp
}

// Mean is NaN for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return Sum(values) / float64(len(values))
}
