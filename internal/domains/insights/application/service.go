package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	types "github.com/levaja/marketplace-api/internal/domains/insights/application/types"
	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
	"github.com/levaja/marketplace-api/internal/domains/insights/ports"
)

// Sources groups the read models insights aggregates over.
type Sources struct {
	Products   ports.ProductSource
	Sales      ports.SalesSource
	Promotions ports.PromotionSource
	Wastage    ports.WastageSource
}

// Service computes dashboards and reports from the other contexts.
type Service struct {
	sources  Sources
	activity ports.ActivityRepository
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(sources Sources, activity ports.ActivityRepository, opts ...Option) *Service {
	s := &Service{sources: sources, activity: activity, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Dashboard loads every source concurrently and fails fast on the first error.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardMetrics, error) {
	now := s.now()
	monthStart, monthEnd := domain.MonthBounds(now)

	var (
		products []domain.ProductFact
		sales    []domain.SaleLine
		running  int
		wastage  []domain.WastageFact
		activity []domain.ActivityEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.sources.Products.Products(gctx, now)
		return wrap("products", err)
	})
	g.Go(func() (err error) {
		sales, err = s.sources.Sales.Sales(gctx)
		return wrap("sales", err)
	})
	g.Go(func() (err error) {
		running, err = s.sources.Promotions.RunningCount(gctx)
		return wrap("promotions", err)
	})
	g.Go(func() (err error) {
		last := monthEnd.Add(-time.Nanosecond)
		wastage, err = s.sources.Wastage.Wastage(gctx, &monthStart, &last, "")
		return wrap("wastage", err)
	})
	g.Go(func() (err error) {
		activity, err = s.activity.Recent(gctx, domain.RecentActivityLimit)
		return wrap("activity", err)
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardMetrics{}, err
	}

	metrics := domain.DashboardMetrics{
		TotalProducts:      len(products),
		ActivePromotions:   running,
		MonthlyRevenue:     decimal.Zero,
		WastageValue:       decimal.Zero,
		TopSellingProducts: domain.TopSelling(sales, domain.TopProductsLimit),
		RecentActivity:     activity,
	}
	for _, p := range products {
		if p.NearExpiry {
			metrics.NearExpiryProducts++
		}
		if p.LowStock {
			metrics.LowStockProducts++
		}
	}
	for _, l := range sales {
		if domain.Within(l.SoldAt, monthStart, monthEnd) {
			metrics.MonthlyRevenue = metrics.MonthlyRevenue.Add(l.Revenue())
		}
	}
	for _, w := range wastage {
		metrics.WastageValue = metrics.WastageValue.Add(w.Cost)
	}
	return metrics, nil
}

func (s *Service) ExpiryAlerts(ctx context.Context, sectorID string) ([]domain.ExpiryAlert, error) {
	products, err := s.sources.Products.Products(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return domain.ExpiryAlerts(products, sectorID), nil
}

func (s *Service) SalesReport(ctx context.Context, filter domain.ReportFilter) (domain.SalesReport, error) {
	if err := filter.Validate(); err != nil {
		return domain.SalesReport{}, mapError(err)
	}
	products, sales, err := s.loadSales(ctx)
	if err != nil {
		return domain.SalesReport{}, err
	}
	return domain.BuildSalesReport(sales, products, filter), nil
}

func (s *Service) loadSales(ctx context.Context) ([]domain.ProductFact, []domain.SaleLine, error) {
	var (
		products []domain.ProductFact
		sales    []domain.SaleLine
	)
	now := s.now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.sources.Products.Products(gctx, now)
		return wrap("products", err)
	})
	g.Go(func() (err error) {
		sales, err = s.sources.Sales.Sales(gctx)
		return wrap("sales", err)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, sales, nil
}

// Export renders a report as CSV. PDF is rejected as unsupported.
func (s *Service) Export(ctx context.Context, req types.ExportRequest) (domain.Export, error) {
	kind, err := domain.ParseReportKind(req.Report)
	if err != nil {
		return domain.Export{}, mapError(err)
	}
	if _, err := domain.ParseFormat(req.Format); err != nil {
		return domain.Export{}, mapError(err)
	}
	if err := req.Filter.Validate(); err != nil {
		return domain.Export{}, mapError(err)
	}

	now := s.now()
	switch kind {
	case domain.ReportWastage:
		records, err := s.sources.Wastage.Wastage(ctx, req.Filter.From, req.Filter.To, req.Filter.SectorID)
		if err != nil {
			return domain.Export{}, err
		}
		return domain.RenderWastageCSV(records, now)
	default:
		products, sales, err := s.loadSales(ctx)
		if err != nil {
			return domain.Export{}, err
		}
		report := domain.BuildSalesReport(sales, products, req.Filter)
		return domain.RenderSalesCSV(report, domain.SalesBreakdown(sales, products, req.Filter), now)
	}
}

func (s *Service) RecordActivity(ctx context.Context, input types.ActivityInput) error {
	entry := domain.ActivityEntry{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Action:      input.Action,
		Description: input.Description,
		Timestamp:   s.now(),
		Metadata:    input.Metadata,
	}
	if err := entry.Validate(); err != nil {
		return mapError(err)
	}
	return s.activity.Append(ctx, entry)
}

func (s *Service) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = domain.RecentActivityLimit
	}
	return s.activity.Recent(ctx, limit)
}

func wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", source, err)
}

var _ ports.Service = (*Service)(nil)
