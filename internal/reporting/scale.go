package reporting

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// Fractions scales each value against the largest one in the set, with the
// denominator floored at 1. Every result lies in [0,1]; negative values
// such as returns scale to 0.
func Fractions(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	denom := one
	for _, v := range values {
		if v.GreaterThan(denom) {
			denom = v
		}
	}

	for i, v := range values {
		if !v.IsPositive() {
			continue
		}
		f, _ := v.Div(denom).Float64()
		if f > 1 {
			f = 1
		}
		out[i] = f
	}
	return out
}
