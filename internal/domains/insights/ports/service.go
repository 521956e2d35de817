package ports

import (
	"context"

	types "github.com/levaja/marketplace-api/internal/domains/insights/application/types"
	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
)

// Service exposes back-office dashboards, reports and the activity log.
type Service interface {
	Dashboard(ctx context.Context) (domain.DashboardMetrics, error)
	ExpiryAlerts(ctx context.Context, sectorID string) ([]domain.ExpiryAlert, error)
	SalesReport(ctx context.Context, filter domain.ReportFilter) (domain.SalesReport, error)
	Export(ctx context.Context, req types.ExportRequest) (domain.Export, error)
	RecordActivity(ctx context.Context, input types.ActivityInput) error
	RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}
