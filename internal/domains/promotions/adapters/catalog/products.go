// Package catalog adapts the catalog service into the promotions product port.
package catalog

import (
	"context"
	"errors"
	"time"

	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	"github.com/levaja/marketplace-api/internal/domains/promotions/ports"
)

var _ ports.ProductCatalog = (*Products)(nil)

type Products struct {
	catalog catalogports.Service
	now     func() time.Time
}

func NewProducts(catalog catalogports.Service, now func() time.Time) *Products {
	if now == nil {
		now = time.Now
	}
	return &Products{catalog: catalog, now: now}
}

func (p *Products) Exists(ctx context.Context, productID string) error {
	_, err := p.catalog.GetProduct(ctx, productID, catalogtypes.Viewer{})
	return translate(err)
}

// Candidates classifies every product by its derived status, so expired and
// out-of-stock products never qualify.
func (p *Products) Candidates(ctx context.Context) ([]domain.Candidate, error) {
	products, err := p.catalog.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	now := p.now()
	candidates := make([]domain.Candidate, 0, len(products))
	for _, product := range products {
		status := product.Status(now)
		candidates = append(candidates, domain.Candidate{
			ProductID:  product.ID,
			Name:       product.Name,
			NearExpiry: status == catalogdomain.StatusNearExpiry,
			LowStock:   status == catalogdomain.StatusLowStock,
		})
	}
	return candidates, nil
}

func (p *Products) LinkPromotion(ctx context.Context, productID, promotionID string) error {
	_, err := p.catalog.UpdateProduct(ctx, catalogtypes.ProductInput{ID: productID, PromotionID: &promotionID})
	return translate(err)
}

func translate(err error) error {
	if errors.Is(err, catalogports.ErrNotFound) {
		return ports.ErrProductNotFound
	}
	return err
}
