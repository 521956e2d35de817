package types

import "github.com/levaja/marketplace-api/internal/domains/insights/domain"

// ExportRequest selects a report, its encoding, and the rows to include.
type ExportRequest struct {
	Report string
	Format string
	Filter domain.ReportFilter
}

// ActivityInput is an audit line to append.
type ActivityInput struct {
	UserID      string
	Action      string
	Description string
	Metadata    map[string]string
}
