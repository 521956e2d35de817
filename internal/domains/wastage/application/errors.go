package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	"github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

var (
	ErrInvalidInput = errors.New("invalid wastage input")
	// ErrConflict signals the write-off exceeds the product's stock.
	ErrConflict = errors.New("wastage conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrInsufficientStock):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrEmptyRecordID),
		errors.Is(err, domain.ErrEmptyProductID),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidReason),
		errors.Is(err, domain.ErrNegativeCost),
		errors.Is(err, domain.ErrMissingReporter),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, ports.ErrProductNotFound):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
