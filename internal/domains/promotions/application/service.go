package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	types "github.com/levaja/marketplace-api/internal/domains/promotions/application/types"
	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	"github.com/levaja/marketplace-api/internal/domains/promotions/ports"
)

// Service manages promotions and proposes new ones from catalog state.
type Service struct {
	repo    ports.Repository
	catalog ports.ProductCatalog
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{repo: repo, catalog: catalog, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Create(ctx context.Context, input types.PromotionInput) (*domain.Promotion, error) {
	promotion := &domain.Promotion{
		ID:        input.ID,
		IsActive:  true,
		Reason:    domain.ReasonManual,
		CreatedAt: s.now(),
	}
	if promotion.ID == "" {
		promotion.ID = uuid.NewString()
	}
	apply(promotion, input)
	if err := promotion.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := s.catalog.Exists(ctx, promotion.ProductID); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, promotion)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.LinkPromotion(ctx, saved.ProductID, saved.ID); err != nil {
		return saved, fmt.Errorf("promotion %s saved but product not linked: %w", saved.ID, err)
	}
	return saved, nil
}

func (s *Service) Update(ctx context.Context, input types.PromotionInput) (*domain.Promotion, error) {
	promotion, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	previousProduct := promotion.ProductID
	apply(promotion, input)
	if err := promotion.Validate(); err != nil {
		return nil, mapError(err)
	}
	if promotion.ProductID != previousProduct {
		if err := s.catalog.Exists(ctx, promotion.ProductID); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, promotion)
	if err != nil {
		return nil, err
	}
	if saved.ProductID != previousProduct {
		if err := s.relink(ctx, previousProduct, saved); err != nil {
			return saved, err
		}
	}
	return saved, nil
}

func (s *Service) relink(ctx context.Context, previousProduct string, promotion *domain.Promotion) error {
	if err := s.catalog.LinkPromotion(ctx, previousProduct, ""); err != nil && !errors.Is(err, ports.ErrProductNotFound) {
		return fmt.Errorf("unlink product %s: %w", previousProduct, err)
	}
	if err := s.catalog.LinkPromotion(ctx, promotion.ProductID, promotion.ID); err != nil {
		return fmt.Errorf("link product %s: %w", promotion.ProductID, err)
	}
	return nil
}

// Delete removes the promotion and clears the product link. A product that is already gone is ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	promotion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.catalog.LinkPromotion(ctx, promotion.ProductID, ""); err != nil && !errors.Is(err, ports.ErrProductNotFound) {
		return fmt.Errorf("promotion %s deleted but product not unlinked: %w", id, err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns promotions newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Promotion, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (s *Service) Activate(ctx context.Context, id string) (*domain.Promotion, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id string) (*domain.Promotion, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (*domain.Promotion, error) {
	promotion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion.IsActive == active {
		return promotion, nil
	}
	promotion.IsActive = active
	return s.repo.Save(ctx, promotion)
}

// GenerateSuggestions proposes promotions for near-expiry and low-stock products. Nothing is persisted.
func (s *Service) GenerateSuggestions(ctx context.Context) ([]*domain.Promotion, error) {
	candidates, err := s.catalog.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Suggest(candidates, existing, s.now()), nil
}

func (s *Service) RunningCount(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	running := 0
	for _, p := range list {
		if p.IsRunning(now) {
			running++
		}
	}
	return running, nil
}

func apply(p *domain.Promotion, input types.PromotionInput) {
	if input.ProductID != nil {
		p.ProductID = *input.ProductID
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.DiscountPercentage != nil {
		p.DiscountPercentage = *input.DiscountPercentage
	}
	if input.StartDate != nil {
		p.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = *input.EndDate
	}
	if input.Reason != nil {
		p.Reason = domain.Reason(*input.Reason)
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.Effectiveness != nil {
		eff := *input.Effectiveness
		p.Effectiveness = &eff
	}
}

var _ ports.Service = (*Service)(nil)
