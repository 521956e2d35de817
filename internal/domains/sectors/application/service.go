package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	types "github.com/levaja/marketplace-api/internal/domains/sectors/application/types"
	"github.com/levaja/marketplace-api/internal/domains/sectors/domain"
	"github.com/levaja/marketplace-api/internal/domains/sectors/ports"
)

// Service manages store sectors.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Create(ctx context.Context, input types.SectorInput) (*domain.Sector, error) {
	now := s.now()
	sector := &domain.Sector{ID: input.ID, CreatedAt: now, UpdatedAt: now}
	if sector.ID == "" {
		sector.ID = uuid.NewString()
	}
	apply(sector, input)
	if err := sector.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, sector)
}

func (s *Service) Update(ctx context.Context, input types.SectorInput) (*domain.Sector, error) {
	sector, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	apply(sector, input)
	sector.UpdatedAt = s.now()
	if err := sector.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, sector)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Sector, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns sectors ordered by name.
func (s *Service) List(ctx context.Context) ([]*domain.Sector, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func apply(sector *domain.Sector, input types.SectorInput) {
	if input.Name != nil {
		sector.Name = *input.Name
	}
	if input.Description != nil {
		sector.Description = *input.Description
	}
	if input.ManagerID != nil {
		sector.ManagerID = *input.ManagerID
	}
	if input.EmployeeIDs != nil {
		sector.EmployeeIDs = append([]string(nil), (*input.EmployeeIDs)...)
	}
	if input.ProductCategories != nil {
		sector.ProductCategories = append([]string(nil), (*input.ProductCategories)...)
	}
}

var _ ports.Service = (*Service)(nil)
