package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/shared/projection"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is an in-memory product store used for demos and tests.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*storedProduct
	now      func() time.Time
}

type storedProduct struct {
	product  *domain.Product
	metadata projection.Metadata
}

// NewProductRepository constructs an empty in-memory store.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: map[string]*storedProduct{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *ProductRepository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a product while maintaining metadata.
func (r *ProductRepository) Save(_ context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.Barcode != "" {
		for id, entry := range r.products {
			if id != product.ID && entry.product.Barcode == product.Barcode {
				return nil, ports.ErrDuplicateBarcode
			}
		}
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.products[product.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	stored := &storedProduct{product: product.Clone(), metadata: metadata}
	r.products[product.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a product if present.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// GetByBarcode fetches the product carrying the barcode.
func (r *ProductRepository) GetByBarcode(_ context.Context, barcode string) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.products {
		if entry.product.Barcode == barcode {
			return projectionCopy(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

// Delete removes a product.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// List returns all products ordered by id.
func (r *ProductRepository) List(_ context.Context) ([]*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Product], 0, len(r.products))
	for _, entry := range r.products {
		list = append(list, projectionCopy(entry))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

func projectionCopy(entry *storedProduct) *projection.Projection[*domain.Product] {
	return &projection.Projection[*domain.Product]{
		Entity:   entry.product.Clone(),
		Metadata: entry.metadata,
	}
}
