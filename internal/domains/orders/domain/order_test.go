package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

var now = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

func lines() []Item {
	return []Item{
		{ProductID: "1", ProductName: "Pão Integral Artesanal", MarketID: "1", MarketName: "Mercado Verde",
			UnitPrice: money.MustParse("8.50"), OriginalPrice: money.MustParse("12.90"), Quantity: 2},
		{ProductID: "2", ProductName: "Iogurte Natural Orgânico", MarketID: "2", MarketName: "Supermercado Economia",
			UnitPrice: money.MustParse("4.20"), OriginalPrice: money.MustParse("6.50"), Quantity: 3},
	}
}

func TestNewDerivesTotalsAndImpact(t *testing.T) {
	order, err := New("o-1", "u-1", lines(), DeliveryPickup, nil, PaymentPix, " ring the bell ", now)
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, "29.6", order.Total.String())
	require.Equal(t, "15.7", order.Savings.String())
	require.Equal(t, 5, order.ItemCount)
	require.Equal(t, "Mercado Verde", order.MarketName)
	require.Equal(t, "ring the bell", order.Notes)
	require.Equal(t, now.Add(PickupLeadTime), order.EstimatedDelivery)

	impact := order.SustainabilityImpact
	require.Equal(t, "1", impact.FoodWastePreventedKg.String())
	require.Equal(t, "2.5", impact.CO2SavedKg.String())
	require.Equal(t, "50", impact.WaterSavedLiters.String())
	require.Equal(t, 5, impact.ItemsRescued)
}

func TestNewValidates(t *testing.T) {
	_, err := New("o-1", "u-1", nil, DeliveryPickup, nil, PaymentPix, "", now)
	require.ErrorIs(t, err, ErrNoItems)

	_, err = New("o-1", "u-1", lines(), DeliveryDelivery, nil, PaymentPix, "", now)
	require.ErrorIs(t, err, ErrMissingAddress)

	_, err = New("o-1", "u-1", lines(), "drone", nil, PaymentPix, "", now)
	require.ErrorIs(t, err, ErrInvalidDeliveryType)

	_, err = New("o-1", "u-1", lines(), DeliveryPickup, nil, "barter", "", now)
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)

	order, err := New("o-1", "u-1", lines(), DeliveryDelivery, &Address{Street: "Rua das Flores", Number: "123", City: "São Paulo"}, PaymentCash, "", now)
	require.NoError(t, err)
	require.Equal(t, now.Add(DeliveryLeadTime), order.EstimatedDelivery)
}

func TestLifecycle(t *testing.T) {
	order, _ := New("o-1", "u-1", lines(), DeliveryPickup, nil, PaymentPix, "", now)

	require.ErrorIs(t, order.TransitionTo(StatusDelivered, now), ErrIllegalTransition)
	for _, next := range []Status{StatusConfirmed, StatusPreparing, StatusReady} {
		require.NoError(t, order.TransitionTo(next, now))
	}
	require.ErrorIs(t, order.TransitionTo(StatusCancelled, now), ErrIllegalTransition)
	require.Nil(t, order.ActualDelivery)
	require.NoError(t, order.TransitionTo(StatusDelivered, now.Add(time.Hour)))
	require.Equal(t, now.Add(time.Hour), *order.ActualDelivery)
	require.ErrorIs(t, order.TransitionTo(StatusReady, now), ErrIllegalTransition)
	require.ErrorIs(t, order.TransitionTo("lost", now), ErrInvalidStatus)
}

func TestCustomerCancel(t *testing.T) {
	order, _ := New("o-1", "u-1", lines(), DeliveryPickup, nil, PaymentPix, "", now)
	require.NoError(t, order.TransitionTo(StatusConfirmed, now))
	require.NoError(t, order.CustomerCancel(now))
	require.True(t, order.IsCancelled())

	preparing, _ := New("o-2", "u-1", lines(), DeliveryPickup, nil, PaymentPix, "", now)
	require.NoError(t, preparing.TransitionTo(StatusConfirmed, now))
	require.NoError(t, preparing.TransitionTo(StatusPreparing, now))
	require.ErrorIs(t, preparing.CustomerCancel(now), ErrCancellationForbidden)
	require.NoError(t, preparing.TransitionTo(StatusCancelled, now))
}

func TestComputeStats(t *testing.T) {
	big := []Item{{ProductID: "1", MarketID: "1", UnitPrice: money.MustParse("5"), OriginalPrice: money.MustParse("9"), Quantity: 110}}
	old, _ := New("o-old", "u-1", big, DeliveryPickup, nil, PaymentPix, "", now.AddDate(0, -2, 0))
	recent, _ := New("o-new", "u-1", lines(), DeliveryPickup, nil, PaymentPix, "", now.Add(-24*time.Hour))
	cancelled, _ := New("o-cancel", "u-1", big, DeliveryPickup, nil, PaymentPix, "", now)
	require.NoError(t, cancelled.TransitionTo(StatusCancelled, now))
	rival, _ := New("o-rival", "u-2", append(big, big...), DeliveryPickup, nil, PaymentPix, "", now)
	small, _ := New("o-small", "u-3", lines(), DeliveryPickup, nil, PaymentPix, "", now)

	stats := ComputeStats("u-1", []*Order{recent, old, cancelled, rival, small}, now)

	require.Equal(t, "23", stats.TotalImpact.FoodWastePreventedKg.String())
	require.Equal(t, 115, stats.TotalImpact.ItemsRescued)
	require.Equal(t, 5, stats.MonthlyImpact.ItemsRescued)
	require.Equal(t, 5, stats.WeeklyImpact.ItemsRescued)
	require.Equal(t, 3, stats.Level)
	require.Equal(t, "30", stats.NextLevelRequirement.String())
	require.Equal(t, 2, stats.GlobalRanking)

	ids := make([]string, 0, len(stats.Badges))
	for _, b := range stats.Badges {
		ids = append(ids, b.ID)
	}
	require.Equal(t, []string{"first-rescue", "money-saver", "planet-friend"}, ids)
	require.Equal(t, old.CreatedAt, stats.Badges[0].EarnedAt)

	none := ComputeStats("u-9", []*Order{recent}, now)
	require.Equal(t, 0, none.GlobalRanking)
	require.Equal(t, 1, none.Level)
	require.Empty(t, none.Badges)
}
