//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
	"github.com/levaja/marketplace-api/internal/platform/postgres/postgrestest"
)

func TestActivityLog_RecentIsNewestFirstAndBounded(t *testing.T) {
	db := postgrestest.Start(t)
	activity := NewActivityLog(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, activity.Append(ctx, domain.ActivityEntry{
			ID:          fmt.Sprintf("a-%d", i),
			UserID:      "1",
			Action:      "product.updated",
			Description: "Produto atualizado",
			Metadata:    map[string]string{"productId": fmt.Sprint(i)},
			Timestamp:   now.Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := activity.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "a-2", recent[0].ID)
	assert.Equal(t, "2", recent[0].Metadata["productId"])
	assert.Equal(t, "a-1", recent[1].ID)
}
