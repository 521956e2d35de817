package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/notifications/adapters/memory"
	types "github.com/levaja/marketplace-api/internal/domains/notifications/application/types"
	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	"github.com/levaja/marketplace-api/internal/domains/notifications/ports"
)

func newInbox() (*Service, *time.Time) {
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	svc := NewService(memory.NewRepository(), WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	return svc, &now
}

func TestNotify_DefaultsAndValidation(t *testing.T) {
	svc, _ := newInbox()
	ctx := context.Background()

	n, err := svc.Notify(ctx, types.NotificationInput{UserID: "u-1", Title: "Olá", Message: "Bem-vindo"})
	require.NoError(t, err)
	require.Equal(t, domain.TypeInfo, n.Type)
	require.False(t, n.IsRead)
	require.NotEmpty(t, n.ID)

	_, err = svc.Notify(ctx, types.NotificationInput{UserID: "u-1", Title: "x", Message: "y", Type: "spam"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Notify(ctx, types.NotificationInput{UserID: "u-1", Message: "y"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_NewestFirstAndUnreadFilter(t *testing.T) {
	svc, _ := newInbox()
	ctx := context.Background()

	first, err := svc.Notify(ctx, types.NotificationInput{UserID: "u-1", Title: "Oferta", Message: "Pão com 40% off", Type: "new_offer"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, types.NotificationInput{UserID: "u-1", Title: "Pedido", Message: "Confirmado", Type: "order_update"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, types.NotificationInput{UserID: "u-2", Title: "Outro", Message: "Outro usuário"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "u-1", false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Pedido", all[0].Title)

	_, err = svc.MarkAsRead(ctx, "u-1", first.ID)
	require.NoError(t, err)

	unread, err := svc.List(ctx, "u-1", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	count, err := svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestMarkAsRead_ScopedToOwner(t *testing.T) {
	svc, _ := newInbox()
	ctx := context.Background()
	n, err := svc.Notify(ctx, types.NotificationInput{UserID: "u-1", Title: "t", Message: "m"})
	require.NoError(t, err)

	_, err = svc.MarkAsRead(ctx, "u-2", n.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.MarkAsRead(ctx, "u-1", "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)

	read, err := svc.MarkAsRead(ctx, "u-1", n.ID)
	require.NoError(t, err)
	require.True(t, read.IsRead)
}

func TestMarkAllAsRead(t *testing.T) {
	svc, _ := newInbox()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Notify(ctx, types.NotificationInput{UserID: "u-1", Title: "t", Message: "m"})
		require.NoError(t, err)
	}
	changed, err := svc.MarkAllAsRead(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 3, changed)

	count, err := svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	require.Zero(t, count)

	_, err = svc.MarkAllAsRead(ctx, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}
