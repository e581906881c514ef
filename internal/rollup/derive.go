package rollup

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SharePercent returns part / whole * 100, or zero when whole is zero.
func SharePercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// AveragePrice returns the value per unit of quantity. Only a zero quantity is
// replaced by one: fractional and negative quantities divide as they are, so
// 10 over 0.5 KG is 20.
func AveragePrice(value, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return value
	}
	return value.Div(quantity)
}
