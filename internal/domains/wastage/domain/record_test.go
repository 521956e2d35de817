package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

var day = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

func TestRecordValidate(t *testing.T) {
	r := &Record{ID: "w-1", ProductID: "1", Quantity: 2, Reason: ReasonExpired, Cost: money.MustParse("17"), ReportedBy: "u-2"}
	require.NoError(t, r.Validate())

	r.Quantity = 0
	assert.ErrorIs(t, r.Validate(), ErrInvalidQuantity)
	r.Quantity = 1
	r.Cost = money.MustParse("-1")
	assert.ErrorIs(t, r.Validate(), ErrNegativeCost)
	r.Cost = money.Zero
	r.Reason = "lost"
	assert.ErrorIs(t, r.Validate(), ErrInvalidReason)
}

func TestBuildReport(t *testing.T) {
	records := []*Record{
		{ID: "a", SectorID: "1", Quantity: 2, Reason: ReasonExpired, Cost: money.MustParse("17.00"), ReportedAt: day.Add(-48 * time.Hour)},
		{ID: "b", SectorID: "2", Quantity: 1, Reason: ReasonDamaged, Cost: money.MustParse("4.20"), ReportedAt: day},
		{ID: "c", SectorID: "1", Quantity: 3, Reason: ReasonExpired, Cost: money.MustParse("12.60"), ReportedAt: day.Add(-24 * time.Hour)},
	}

	all := BuildReport(records, Filter{})
	assert.Equal(t, 6, all.TotalQuantity)
	assert.Equal(t, "33.8", all.TotalCost.String())
	assert.Equal(t, []string{"b", "c", "a"}, []string{all.Records[0].ID, all.Records[1].ID, all.Records[2].ID})
	assert.Equal(t, 5, all.ByReason[ReasonExpired].Quantity)
	assert.Equal(t, "29.6", all.ByReason[ReasonExpired].Cost.String())

	from := day.Add(-30 * time.Hour)
	sector := BuildReport(records, Filter{From: &from, SectorID: "1"})
	require.Len(t, sector.Records, 1)
	assert.Equal(t, "c", sector.Records[0].ID)

	empty := BuildReport(nil, Filter{Reason: ReasonStolen})
	assert.True(t, empty.TotalCost.IsZero())
	assert.Empty(t, empty.ByReason)
}

func TestFilterValidate(t *testing.T) {
	from, to := day, day.Add(-time.Hour)
	assert.ErrorIs(t, Filter{From: &from, To: &to}.Validate(), ErrInvalidDateRange)
	assert.ErrorIs(t, Filter{Reason: "lost"}.Validate(), ErrInvalidReason)
	assert.NoError(t, Filter{}.Validate())
}
