package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	"github.com/levaja/marketplace-api/internal/domains/promotions/ports"
)

// ErrInvalidInput signals the promotion violated an invariant or referenced an unknown product.
var ErrInvalidInput = errors.New("invalid promotion input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyPromotionID),
		errors.Is(err, domain.ErrEmptyProductID),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidReason),
		errors.Is(err, ports.ErrProductNotFound):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
