package gateways

import (
	"context"

	accountports "github.com/levaja/marketplace-api/internal/domains/accounts/ports"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

var _ ports.LoyaltyLedger = (*Loyalty)(nil)

// Loyalty credits checkout points to the buyer's account.
type Loyalty struct {
	accounts accountports.Service
}

func NewLoyalty(accounts accountports.Service) *Loyalty {
	return &Loyalty{accounts: accounts}
}

func (l *Loyalty) AddLoyaltyPoints(ctx context.Context, userID string, points int) error {
	if points <= 0 {
		return nil
	}
	return l.accounts.AddLoyaltyPoints(ctx, userID, points)
}
