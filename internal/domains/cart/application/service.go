package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/cart/ports"
)

// Service orchestrates cart use cases. Every call works on the caller's own cart.
type Service struct {
	repo     ports.Repository
	products ports.ProductLookup
	now      func() time.Time
}

// Option customises the cart service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, products ports.ProductLookup, opts ...Option) *Service {
	s := &Service{repo: repo, products: products, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns the caller's cart, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.getOrCreate(ctx, userID)
}

// AddItem snapshots the product and merges it into the cart.
func (s *Service) AddItem(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, mapError(domain.ErrEmptyProductID)
	}
	if qty < 1 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	line, err := s.products.Lookup(ctx, productID)
	if err != nil {
		return nil, mapError(err)
	}
	line.ID = uuid.NewString()
	if _, err := cart.Add(line, qty, s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

// UpdateQuantity sets a line's quantity, removing it at zero.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, qty int) (*domain.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateQuantity(itemID, qty, s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Remove(itemID, s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Clear(s.now())
	return s.save(ctx, cart)
}

func (s *Service) getOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	cart, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	cart, err = domain.New(uuid.NewString(), userID, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, cart)
}

func (s *Service) save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	saved, err := s.repo.Save(ctx, cart)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
