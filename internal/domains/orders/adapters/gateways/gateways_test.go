package gateways

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	notificationmemory "github.com/levaja/marketplace-api/internal/domains/notifications/adapters/memory"
	notificationapp "github.com/levaja/marketplace-api/internal/domains/notifications/application"
	notificationdomain "github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

func TestNotifications_PostsOrderUpdate(t *testing.T) {
	inbox := notificationapp.NewService(notificationmemory.NewRepository(),
		notificationapp.WithClock(func() time.Time { return time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC) }))
	gateway := NewNotifications(inbox)

	err := gateway.NotifyOrder(context.Background(), ports.OrderNotice{
		UserID: "u-1", OrderID: "o-1", Title: "Pedido confirmado", Message: "Seu pedido foi confirmado",
	})
	require.NoError(t, err)

	list, err := inbox.List(context.Background(), "u-1", true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, notificationdomain.TypeOrderUpdate, list[0].Type)
	require.Equal(t, "/orders/o-1", list[0].ActionURL)
}
