package ports

import (
	"context"

	types "github.com/levaja/marketplace-api/internal/domains/wastage/application/types"
	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
)

type Service interface {
	Record(ctx context.Context, reportedBy string, input types.RecordInput) (*domain.Record, error)
	List(ctx context.Context, filter domain.Filter) ([]*domain.Record, error)
	Report(ctx context.Context, filter domain.Filter) (domain.Report, error)
}
