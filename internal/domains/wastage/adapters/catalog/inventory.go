// Package catalog adapts the catalog service into the wastage inventory port.
package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

var _ ports.Inventory = (*Inventory)(nil)

type Inventory struct {
	catalog catalogports.Service
}

func NewInventory(catalog catalogports.Service) *Inventory {
	return &Inventory{catalog: catalog}
}

func (i *Inventory) Snapshot(ctx context.Context, productID string) (ports.ProductSnapshot, error) {
	found, err := i.catalog.GetProduct(ctx, productID, catalogtypes.Viewer{})
	if err != nil {
		return ports.ProductSnapshot{}, translate(err)
	}
	p := found.Entity.Product
	return ports.ProductSnapshot{ID: p.ID, Name: p.Name, SectorID: p.SectorID, Category: p.Category, UnitPrice: p.Price}, nil
}

func (i *Inventory) AdjustStock(ctx context.Context, productID string, delta int) error {
	_, err := i.catalog.AdjustStock(ctx, productID, delta)
	return translate(err)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogports.ErrNotFound):
		return ports.ErrProductNotFound
	case errors.Is(err, catalogdomain.ErrInsufficientStock):
		return fmt.Errorf("%w: %w", ports.ErrInsufficientStock, err)
	}
	return err
}
