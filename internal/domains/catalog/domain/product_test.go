package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

var refNow = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

func sampleProduct(id string, days int) *Product {
	return &Product{
		ID:            id,
		Name:          "Product " + id,
		Category:      "Padaria",
		Brand:         "Vida Verde",
		MarketID:      "1",
		Price:         money.MustParse("8.50"),
		OriginalPrice: money.MustParse("12.90"),
		Quantity:      15,
		MinQuantity:   5,
		ExpiryDate:    refNow.Add(time.Duration(days) * 24 * time.Hour),
		Rating:        4.5,
		Tags:          []string{"integral"},
	}
}

func TestProductValidate(t *testing.T) {
	p := sampleProduct("1", 2)
	require.NoError(t, p.Validate())

	p.Barcode = "123"
	require.ErrorIs(t, p.Validate(), ErrInvalidBarcode)
	p.Barcode = "7891234567890"
	require.NoError(t, p.Validate())

	p.OriginalPrice = money.MustParse("1")
	require.ErrorIs(t, p.Validate(), ErrOriginalBelow)
}

func TestProductNormalizeDefaultsOriginalPrice(t *testing.T) {
	p := &Product{ID: " 9 ", Name: " Leite ", Price: money.MustParse("3.49")}
	p.Normalize()
	require.Equal(t, "9", p.ID)
	require.Equal(t, "Leite", p.Name)
	require.True(t, p.OriginalPrice.Equal(p.Price))
	require.Equal(t, 0, p.DiscountPercentage())
}

func TestProductStatusPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		days     int
		qty      int
		min      int
		expected Status
	}{
		{name: "expired beats stock", days: -2, qty: 0, min: 5, expected: StatusExpired},
		{name: "out of stock", days: 20, qty: 0, min: 5, expected: StatusOutOfStock},
		{name: "near expiry beats low stock", days: 3, qty: 2, min: 5, expected: StatusNearExpiry},
		{name: "expires today is near expiry", days: 0, qty: 10, min: 5, expected: StatusNearExpiry},
		{name: "window edge", days: 7, qty: 10, min: 5, expected: StatusNearExpiry},
		{name: "low stock", days: 8, qty: 2, min: 5, expected: StatusLowStock},
		{name: "active", days: 30, qty: 10, min: 5, expected: StatusActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := sampleProduct("1", tc.days)
			p.Quantity = tc.qty
			p.MinQuantity = tc.min
			require.Equal(t, tc.expected, p.Status(refNow))
		})
	}
}

func TestAdjustStock(t *testing.T) {
	p := sampleProduct("1", 2)
	require.NoError(t, p.AdjustStock(-15))
	require.Equal(t, 0, p.Quantity)
	require.ErrorIs(t, p.AdjustStock(-1), ErrInsufficientStock)
}

func TestPriorityFor(t *testing.T) {
	require.Equal(t, PriorityHigh, PriorityFor(0))
	require.Equal(t, PriorityHigh, PriorityFor(1))
	require.Equal(t, PriorityMedium, PriorityFor(3))
	require.Equal(t, PriorityLow, PriorityFor(4))
}

func TestProductCloneIsDeep(t *testing.T) {
	p := sampleProduct("1", 2)
	p.Nutrition = &NutritionalInfo{Calories: 120}
	clone := p.Clone()
	clone.Tags[0] = "changed"
	clone.Nutrition.Calories = 1
	require.Equal(t, "integral", p.Tags[0])
	require.Equal(t, 120.0, p.Nutrition.Calories)
	require.Empty(t, cmp.Diff(p.Images, clone.Images))
}

func TestHaversineDistance(t *testing.T) {
	a := Location{Lat: -23.5505, Lng: -46.6333}
	b := Location{Lat: -23.5515, Lng: -46.6343}
	require.InDelta(t, 0.15, a.DistanceKm(b), 0.01)
	require.Equal(t, 0.0, a.DistanceKm(a))

	m := &Market{ReferenceDistanceKm: 0.8, Location: b}
	require.Equal(t, 0.8, m.DistanceFrom(nil))
	require.InDelta(t, 0.15, m.DistanceFrom(&a), 0.01)
}
