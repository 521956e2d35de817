package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
)

// ErrInvalidInput signals the notification violated an invariant.
var ErrInvalidInput = errors.New("invalid notification input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrEmptyMessage) ||
		errors.Is(err, domain.ErrInvalidType) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
