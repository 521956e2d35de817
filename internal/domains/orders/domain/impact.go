package domain

import (
	"github.com/shopspring/decimal"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

// Per rescued item averages.
var (
	WastePerItemKg  = decimal.RequireFromString("0.2")
	CO2PerItemKg    = decimal.RequireFromString("0.5")
	WaterPerItemLit = decimal.NewFromInt(10)
)

// SustainabilityImpact is the environmental effect of rescuing items.
type SustainabilityImpact struct {
	FoodWastePreventedKg decimal.Decimal
	CO2SavedKg           decimal.Decimal
	WaterSavedLiters     decimal.Decimal
	MoneySaved           decimal.Decimal
	ItemsRescued         int
}

// ImpactFor derives the impact of an order from its unit count and savings.
func ImpactFor(itemCount int, savings decimal.Decimal) SustainabilityImpact {
	n := decimal.NewFromInt(int64(itemCount))
	return SustainabilityImpact{
		FoodWastePreventedKg: WastePerItemKg.Mul(n),
		CO2SavedKg:           CO2PerItemKg.Mul(n),
		WaterSavedLiters:     WaterPerItemLit.Mul(n),
		MoneySaved:           savings,
		ItemsRescued:         itemCount,
	}
}

// ZeroImpact is the identity for Add.
func ZeroImpact() SustainabilityImpact {
	return SustainabilityImpact{
		FoodWastePreventedKg: money.Zero,
		CO2SavedKg:           money.Zero,
		WaterSavedLiters:     money.Zero,
		MoneySaved:           money.Zero,
	}
}

// Add sums two impacts.
func (i SustainabilityImpact) Add(other SustainabilityImpact) SustainabilityImpact {
	return SustainabilityImpact{
		FoodWastePreventedKg: i.FoodWastePreventedKg.Add(other.FoodWastePreventedKg),
		CO2SavedKg:           i.CO2SavedKg.Add(other.CO2SavedKg),
		WaterSavedLiters:     i.WaterSavedLiters.Add(other.WaterSavedLiters),
		MoneySaved:           i.MoneySaved.Add(other.MoneySaved),
		ItemsRescued:         i.ItemsRescued + other.ItemsRescued,
	}
}
