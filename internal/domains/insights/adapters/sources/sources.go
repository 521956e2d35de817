// Package sources adapts the other bounded contexts into insights read models.
package sources

import (
	"context"
	"time"

	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
	"github.com/levaja/marketplace-api/internal/domains/insights/ports"
	orderdomain "github.com/levaja/marketplace-api/internal/domains/orders/domain"
	orderports "github.com/levaja/marketplace-api/internal/domains/orders/ports"
	promotionports "github.com/levaja/marketplace-api/internal/domains/promotions/ports"
	wastagedomain "github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	wastageports "github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

var (
	_ ports.ProductSource   = (*Catalog)(nil)
	_ ports.SalesSource     = (*Orders)(nil)
	_ ports.PromotionSource = (promotionports.Service)(nil)
	_ ports.WastageSource   = (*Wastage)(nil)
)

type Catalog struct {
	service catalogports.Service
}

func NewCatalog(service catalogports.Service) *Catalog {
	return &Catalog{service: service}
}

func (c *Catalog) Products(ctx context.Context, now time.Time) ([]domain.ProductFact, error) {
	products, err := c.service.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	facts := make([]domain.ProductFact, 0, len(products))
	for _, p := range products {
		facts = append(facts, domain.ProductFact{
			ID:           p.ID,
			Name:         p.Name,
			SectorID:     p.SectorID,
			Category:     p.Category,
			Quantity:     p.Quantity,
			ExpiryDate:   p.ExpiryDate,
			DaysToExpiry: p.DaysToExpiry(now),
			NearExpiry:   p.IsNearExpiry(now),
			LowStock:     p.IsLowStock(),
		})
	}
	return facts, nil
}

type Orders struct {
	service orderports.Service
}

func NewOrders(service orderports.Service) *Orders {
	return &Orders{service: service}
}

// Sales flattens every order that was not cancelled into sale lines dated at checkout.
func (o *Orders) Sales(ctx context.Context) ([]domain.SaleLine, error) {
	orders, err := o.service.ListAllOrders(ctx, "")
	if err != nil {
		return nil, err
	}
	lines := make([]domain.SaleLine, 0, len(orders))
	for _, order := range orders {
		if order.Status == orderdomain.StatusCancelled {
			continue
		}
		for _, item := range order.Items {
			lines = append(lines, domain.SaleLine{
				OrderID:       order.ID,
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				Quantity:      item.Quantity,
				UnitPrice:     item.UnitPrice,
				OriginalPrice: item.OriginalPrice,
				SoldAt:        order.CreatedAt,
			})
		}
	}
	return lines, nil
}

type Wastage struct {
	service wastageports.Service
}

func NewWastage(service wastageports.Service) *Wastage {
	return &Wastage{service: service}
}

func (w *Wastage) Wastage(ctx context.Context, from, to *time.Time, sectorID string) ([]domain.WastageFact, error) {
	records, err := w.service.List(ctx, wastagedomain.Filter{From: from, To: to, SectorID: sectorID})
	if err != nil {
		return nil, err
	}
	facts := make([]domain.WastageFact, 0, len(records))
	for _, r := range records {
		facts = append(facts, domain.WastageFact{
			ID:          r.ID,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			SectorID:    r.SectorID,
			Quantity:    r.Quantity,
			Reason:      string(r.Reason),
			Cost:        r.Cost,
			ReportedBy:  r.ReportedBy,
			ReportedAt:  r.ReportedAt,
		})
	}
	return facts, nil
}
