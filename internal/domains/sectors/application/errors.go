package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/sectors/domain"
)

var ErrInvalidInput = errors.New("invalid sector input")

func mapError(err error) error {
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrEmptySectorID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
