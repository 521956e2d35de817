package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrConflict signals the request clashes with current catalog state.
	ErrConflict = errors.New("catalog conflict")
	// ErrAuthenticationRequired is returned for per-user operations without a user.
	ErrAuthenticationRequired = errors.New("authentication required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, ports.ErrDuplicateBarcode):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrEmptyProductID),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyCategory),
		errors.Is(err, domain.ErrInvalidBarcode),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrOriginalBelow),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrMissingExpiry),
		errors.Is(err, domain.ErrEmptyMarketID),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyMarketName),
		errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrInvalidMarketETA),
		errors.Is(err, domain.ErrUnknownMarket),
		errors.Is(err, domain.ErrInvalidSortField),
		errors.Is(err, domain.ErrInvalidSortOrder),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidMaxPrice),
		errors.Is(err, domain.ErrInvalidDistance):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
