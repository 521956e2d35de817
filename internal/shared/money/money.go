// Package money holds the decimal helpers shared by every context that prices goods.
package money

import "github.com/shopspring/decimal"

// Zero is the additive identity for amounts.
var Zero = decimal.Zero

// FromFloat converts a transport amount into a decimal rounded to cents.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// MustParse parses a literal amount, panicking on malformed input. Intended for seeds and tests.
func MustParse(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// ToFloat renders an amount for JSON transport, rounded to cents.
func ToFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Mul multiplies a unit price by a quantity.
func Mul(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// Percent returns round((original-price)/original*100), or 0 when original is not positive.
func Percent(original, price decimal.Decimal) int {
	if !original.IsPositive() || price.GreaterThanOrEqual(original) {
		return 0
	}
	return int(original.Sub(price).Div(original).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// ApplyDiscount returns price reduced by pct percent, rounded to cents.
func ApplyDiscount(price decimal.Decimal, pct int) decimal.Decimal {
	factor := decimal.NewFromInt(int64(100 - pct)).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}
