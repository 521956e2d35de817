package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflict signals the order lifecycle does not allow the change.
	ErrConflict = errors.New("order conflict")
	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrCancellationForbidden):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrEmptyOrderID),
		errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrInvalidItemQuantity),
		errors.Is(err, domain.ErrInvalidDeliveryType),
		errors.Is(err, domain.ErrMissingAddress),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
