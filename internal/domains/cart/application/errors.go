package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrConflict signals the product cannot be added in its current state.
	ErrConflict = errors.New("cart conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrEmptyProductID):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
