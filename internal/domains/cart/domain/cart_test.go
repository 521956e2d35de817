package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

var now = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

func bread() Item {
	return Item{
		ID:                "line-1",
		ProductID:         "1",
		ProductName:       "Pão Integral Artesanal",
		UnitPrice:         money.MustParse("8.50"),
		OriginalPrice:     money.MustParse("12.90"),
		AvailableQuantity: 3,
	}
}

func yogurt() Item {
	return Item{
		ID:                "line-2",
		ProductID:         "2",
		UnitPrice:         money.MustParse("4.20"),
		OriginalPrice:     money.MustParse("6.50"),
		AvailableQuantity: 8,
	}
}

func TestTotalsFollowEveryMutation(t *testing.T) {
	cart, err := New("c-1", "u-1", now)
	require.NoError(t, err)

	_, err = cart.Add(bread(), 2, now)
	require.NoError(t, err)
	_, err = cart.Add(yogurt(), 3, now)
	require.NoError(t, err)

	totals := cart.Totals()
	require.Equal(t, "29.6", totals.Total.String())
	require.Equal(t, "45.3", totals.OriginalTotal.String())
	require.Equal(t, "15.7", totals.Savings.String())
	require.Equal(t, 5, totals.ItemCount)

	require.NoError(t, cart.UpdateQuantity("line-2", 1, now))
	require.Equal(t, "21.2", cart.Totals().Total.String())

	require.NoError(t, cart.Remove("line-1", now))
	totals = cart.Totals()
	require.Equal(t, "4.2", totals.Total.String())
	require.Equal(t, 1, totals.ItemCount)

	cart.Clear(now)
	require.True(t, cart.Totals().Total.IsZero())
	require.True(t, cart.IsEmpty())
}

func TestAddMergesAndCapsAtStock(t *testing.T) {
	cart, _ := New("c-1", "u-1", now)
	line, err := cart.Add(bread(), 2, now)
	require.NoError(t, err)
	require.Equal(t, 2, line.SelectedQuantity)

	second := bread()
	second.ID = "ignored"
	line, err = cart.Add(second, 5, now)
	require.NoError(t, err)
	require.Equal(t, "line-1", line.ID)
	require.Equal(t, 3, line.SelectedQuantity)
	require.Len(t, cart.Items, 1)

	fresh, _ := New("c-2", "u-1", now)
	line, err = fresh.Add(bread(), 10, now)
	require.NoError(t, err)
	require.Equal(t, 3, line.SelectedQuantity)
}

func TestAddRejectsBadInput(t *testing.T) {
	cart, _ := New("c-1", "u-1", now)
	_, err := cart.Add(bread(), 0, now)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	sold := bread()
	sold.AvailableQuantity = 0
	_, err = cart.Add(sold, 1, now)
	require.ErrorIs(t, err, ErrOutOfStock)

	_, err = New("c-1", "", now)
	require.ErrorIs(t, err, ErrEmptyUserID)
}

func TestUpdateQuantityClampsAndRemoves(t *testing.T) {
	cart, _ := New("c-1", "u-1", now)
	_, _ = cart.Add(bread(), 1, now)

	require.NoError(t, cart.UpdateQuantity("line-1", 99, now))
	require.Equal(t, 3, cart.Items[0].SelectedQuantity)

	require.NoError(t, cart.UpdateQuantity("line-1", 0, now))
	require.Empty(t, cart.Items)

	require.ErrorIs(t, cart.UpdateQuantity("line-1", 1, now), ErrItemNotFound)
	require.ErrorIs(t, cart.UpdateQuantity("line-1", -1, now), ErrNegativeQuantity)
	require.ErrorIs(t, cart.Remove("nope", now), ErrItemNotFound)
}
