// Package catalog adapts the catalog service into the cart's product lookup port.
package catalog

import (
	"context"
	"errors"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/cart/ports"
	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

var _ ports.ProductLookup = (*Lookup)(nil)

// Lookup reads products through the catalog service.
type Lookup struct {
	catalog catalogports.Service
}

func NewLookup(catalog catalogports.Service) *Lookup {
	return &Lookup{catalog: catalog}
}

func (l *Lookup) Lookup(ctx context.Context, productID string) (domain.Item, error) {
	found, err := l.catalog.GetProduct(ctx, productID, catalogtypes.Viewer{})
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return domain.Item{}, ports.ErrProductNotFound
		}
		return domain.Item{}, err
	}
	p := found.Entity.Product
	item := domain.Item{
		ProductID:         p.ID,
		ProductName:       p.Name,
		MarketID:          p.MarketID,
		MarketName:        p.MarketName,
		UnitPrice:         p.Price,
		OriginalPrice:     p.OriginalPrice,
		AvailableQuantity: p.Quantity,
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}
	return item, nil
}
