package application

import (
	"errors"
	"fmt"

	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
	"github.com/levaja/marketplace-api/internal/domains/accounts/ports"
)

var (
	// ErrInvalidInput signals the request violated a user invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrConflict signals a uniqueness violation such as a taken email.
	ErrConflict = errors.New("user conflict")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned when a token is missing, invalid, expired or revoked.
	ErrUnauthenticated = errors.New("authentication required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrEmailTaken), errors.Is(err, ports.ErrUserExists):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrTermsNotAccepted),
		errors.Is(err, domain.ErrWrongCurrentPassword),
		errors.Is(err, domain.ErrNegativeLoyaltyPoints),
		errors.Is(err, domain.ErrInvalidMaxDistance),
		errors.Is(err, domain.ErrInvalidRole):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
