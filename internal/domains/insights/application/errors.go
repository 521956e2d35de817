package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
)

var ErrInvalidInput = errors.New("invalid report request")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrUnknownReport),
		errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrEmptyAction),
		errors.Is(err, domain.ErrEmptyActor):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
