package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

func valid() *Promotion {
	return &Promotion{
		ID: "p-1", ProductID: "1", Title: "Pão em oferta", DiscountPercentage: 30,
		StartDate: now, EndDate: now.Add(48 * time.Hour), IsActive: true, Reason: ReasonManual,
	}
}

func TestPromotionValidate(t *testing.T) {
	require.NoError(t, valid().Validate())

	p := valid()
	p.DiscountPercentage = 91
	assert.ErrorIs(t, p.Validate(), ErrInvalidDiscount)

	p = valid()
	p.DiscountPercentage = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidDiscount)

	p = valid()
	p.EndDate = p.StartDate
	assert.ErrorIs(t, p.Validate(), ErrInvalidPeriod)

	p = valid()
	p.Reason = "clearance"
	assert.ErrorIs(t, p.Validate(), ErrInvalidReason)

	p = valid()
	p.Title = " "
	assert.ErrorIs(t, p.Validate(), ErrEmptyTitle)
}

func TestIsRunning(t *testing.T) {
	p := valid()
	assert.True(t, p.IsRunning(now))
	assert.True(t, p.IsRunning(p.EndDate))
	assert.False(t, p.IsRunning(now.Add(-time.Second)))
	p.IsActive = false
	assert.False(t, p.IsRunning(now))
}

func TestSuggest(t *testing.T) {
	candidates := []Candidate{
		{ProductID: "1", Name: "Pão Integral", NearExpiry: true, LowStock: true},
		{ProductID: "2", Name: "Iogurte", LowStock: true},
		{ProductID: "3", Name: "Arroz"},
		{ProductID: "4", Name: "Queijo", NearExpiry: true},
	}
	running := valid()
	running.ProductID = "4"

	got := Suggest(candidates, []*Promotion{running}, now)
	require.Len(t, got, 2)

	assert.Equal(t, "1", got[0].ProductID)
	assert.Equal(t, NearExpiryDiscount, got[0].DiscountPercentage)
	assert.Equal(t, ReasonNearExpiry, got[0].Reason)
	assert.Equal(t, "Suggested promotion - Pão Integral", got[0].Title)
	assert.False(t, got[0].IsActive)
	assert.Equal(t, now.Add(7*24*time.Hour), got[0].EndDate)

	assert.Equal(t, LowStockDiscount, got[1].DiscountPercentage)
	assert.Equal(t, ReasonExcessStock, got[1].Reason)
	for _, s := range got {
		assert.NoError(t, s.Validate())
	}
}
