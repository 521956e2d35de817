package gateways

import (
	"context"

	notificationtypes "github.com/levaja/marketplace-api/internal/domains/notifications/application/types"
	notificationdomain "github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	notificationports "github.com/levaja/marketplace-api/internal/domains/notifications/ports"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Notifier = (*Notifications)(nil)

// Notifications posts order updates into the buyer's inbox.
type Notifications struct {
	service notificationports.Service
}

func NewNotifications(service notificationports.Service) *Notifications {
	return &Notifications{service: service}
}

func (n *Notifications) NotifyOrder(ctx context.Context, notice ports.OrderNotice) error {
	_, err := n.service.Notify(ctx, notificationtypes.NotificationInput{
		UserID:    notice.UserID,
		Title:     notice.Title,
		Message:   notice.Message,
		Type:      string(notificationdomain.TypeOrderUpdate),
		ActionURL: "/orders/" + notice.OrderID,
	})
	return err
}
