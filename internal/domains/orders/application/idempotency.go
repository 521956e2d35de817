package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	types "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
)

type normalizedCheckout struct {
	UserID        string          `json:"userId"`
	DeliveryType  string          `json:"deliveryType"`
	Address       *domain.Address `json:"address,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// FingerprintCheckout builds a deterministic hash of the checkout request, excluding the idempotency key.
func FingerprintCheckout(input types.CheckoutInput) (string, error) {
	normalized := normalizedCheckout{
		UserID:        input.UserID,
		DeliveryType:  strings.TrimSpace(input.DeliveryType),
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Notes:         strings.TrimSpace(input.Notes),
	}
	if input.DeliveryAddress != nil {
		addr := *input.DeliveryAddress
		normalized.Address = &addr
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
