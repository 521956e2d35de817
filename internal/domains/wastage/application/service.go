package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/levaja/marketplace-api/internal/domains/wastage/application/types"
	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	"github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

// Service records stock write-offs and reports on them.
type Service struct {
	repo      ports.Repository
	inventory ports.Inventory
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, inventory ports.Inventory, opts ...Option) *Service {
	s := &Service{repo: repo, inventory: inventory, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Record writes off stock. The product's quantity is decremented first and
// restored if the record cannot be stored.
func (s *Service) Record(ctx context.Context, reportedBy string, input types.RecordInput) (*domain.Record, error) {
	reason, err := domain.ParseReason(input.Reason)
	if err != nil {
		return nil, mapError(err)
	}
	record := &domain.Record{
		ID:         uuid.NewString(),
		ProductID:  strings.TrimSpace(input.ProductID),
		Quantity:   input.Quantity,
		Reason:     reason,
		ReportedBy: reportedBy,
		ReportedAt: s.now(),
	}
	if input.Cost != nil {
		record.Cost = *input.Cost
	}
	if err := record.Validate(); err != nil {
		return nil, mapError(err)
	}

	product, err := s.inventory.Snapshot(ctx, record.ProductID)
	if err != nil {
		return nil, mapError(err)
	}
	record.ProductName = product.Name
	record.SectorID = product.SectorID
	record.Category = product.Category
	if input.Cost == nil {
		record.Cost = domain.DefaultCost(product.UnitPrice, record.Quantity)
	}

	if err := s.inventory.AdjustStock(ctx, record.ProductID, -record.Quantity); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, record)
	if err != nil {
		if restoreErr := s.inventory.AdjustStock(ctx, record.ProductID, record.Quantity); restoreErr != nil {
			return nil, errors.Join(err, fmt.Errorf("restore stock for %s: %w", record.ProductID, restoreErr))
		}
		return nil, err
	}
	return saved, nil
}

func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Record, error) {
	report, err := s.Report(ctx, filter)
	if err != nil {
		return nil, err
	}
	return report.Records, nil
}

func (s *Service) Report(ctx context.Context, filter domain.Filter) (domain.Report, error) {
	if err := filter.Validate(); err != nil {
		return domain.Report{}, mapError(err)
	}
	records, err := s.repo.List(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.BuildReport(records, filter), nil
}

var _ ports.Service = (*Service)(nil)
