package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/shared/projection"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	products  ports.ProductRepository
	markets   ports.MarketRepository
	favorites ports.FavoriteStore
	now       func() time.Time
}

// Option customises the catalog service.
type Option func(*Service)

// WithClock overrides the time source used for derived fields.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the catalog service with its dependencies.
func NewService(products ports.ProductRepository, markets ports.MarketRepository, favorites ports.FavoriteStore, opts ...Option) *Service {
	s := &Service{products: products, markets: markets, favorites: favorites, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListProducts filters, sorts, and paginates the catalog for a viewer.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter, viewer types.Viewer) (domain.Page[domain.ProductView], error) {
	if err := filter.Normalize(); err != nil {
		return domain.Page[domain.ProductView]{}, mapError(err)
	}
	if filter.OnlyFavorites && viewer.UserID == "" {
		return domain.Paginate([]domain.ProductView{}, filter.Page, filter.Limit), nil
	}
	list, err := s.products.List(ctx)
	if err != nil {
		return domain.Page[domain.ProductView]{}, mapError(err)
	}
	views, err := s.buildViews(ctx, projection.Entities(list), viewer)
	if err != nil {
		return domain.Page[domain.ProductView]{}, err
	}
	return filter.Apply(views), nil
}

// GetProduct loads one product with the viewer's derived fields.
func (s *Service) GetProduct(ctx context.Context, id string, viewer types.Viewer) (*types.ProductProjection, error) {
	stored, err := s.products.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, stored, viewer)
}

// FindByBarcode resolves a scanned EAN-13 code.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*types.ProductProjection, error) {
	barcode = strings.TrimSpace(barcode)
	if !domain.IsValidBarcode(barcode) {
		return nil, mapError(domain.ErrInvalidBarcode)
	}
	stored, err := s.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, stored, types.Viewer{})
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, input types.ProductInput) (*types.ProductProjection, error) {
	product := &domain.Product{ID: strings.TrimSpace(input.ID)}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	applyInput(product, input)
	if product.EntryDate.IsZero() {
		product.EntryDate = s.now().UTC()
	}
	return s.store(ctx, product)
}

// UpdateProduct applies a partial mutation to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, input types.ProductInput) (*types.ProductProjection, error) {
	stored, err := s.products.GetByID(ctx, strings.TrimSpace(input.ID))
	if err != nil {
		return nil, mapError(err)
	}
	product := stored.Entity
	applyInput(product, input)
	return s.store(ctx, product)
}

// DeleteProduct removes a product and forgets it from every favorite set.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.products.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return mapError(s.favorites.RemoveProduct(ctx, id))
}

// AdjustStock applies a signed delta to the stock level.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*types.ProductProjection, error) {
	stored, err := s.products.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	product := stored.Entity
	if err := product.AdjustStock(delta); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, saved, types.Viewer{})
}

// AllProducts returns a snapshot of every product.
func (s *Service) AllProducts(ctx context.Context) ([]*domain.Product, error) {
	list, err := s.products.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return projection.Entities(list), nil
}

// ToggleFavorite flips the favorite flag of a product for one user.
func (s *Service) ToggleFavorite(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, ErrAuthenticationRequired
	}
	if _, err := s.products.GetByID(ctx, strings.TrimSpace(productID)); err != nil {
		return false, mapError(err)
	}
	state, err := s.favorites.Toggle(ctx, userID, strings.TrimSpace(productID))
	if err != nil {
		return false, mapError(err)
	}
	return state, nil
}

// ListFavorites returns the viewer's favorite products in the order they were added.
func (s *Service) ListFavorites(ctx context.Context, viewer types.Viewer) ([]domain.ProductView, error) {
	if viewer.UserID == "" {
		return nil, ErrAuthenticationRequired
	}
	ids, err := s.favorites.List(ctx, viewer.UserID)
	if err != nil {
		return nil, mapError(err)
	}
	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		stored, err := s.products.GetByID(ctx, id)
		if errors.Is(err, ports.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, mapError(err)
		}
		products = append(products, stored.Entity)
	}
	return s.buildViews(ctx, products, viewer)
}

// SaveMarket validates and stores a partner market.
func (s *Service) SaveMarket(ctx context.Context, market *domain.Market) (*domain.Market, error) {
	if market == nil {
		return nil, mapError(domain.ErrEmptyMarketName)
	}
	if err := market.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.markets.Save(ctx, market)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListMarkets returns every market ordered by distance from origin.
func (s *Service) ListMarkets(ctx context.Context, origin *domain.Location) ([]types.MarketView, error) {
	if origin != nil && !origin.Valid() {
		return nil, mapError(domain.ErrInvalidLocation)
	}
	markets, err := s.markets.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	views := make([]types.MarketView, 0, len(markets))
	for _, m := range markets {
		views = append(views, types.MarketView{Market: m, DistanceKm: m.DistanceFrom(origin)})
	}
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].DistanceKm != views[j].DistanceKm {
			return views[i].DistanceKm < views[j].DistanceKm
		}
		return views[i].Market.ID < views[j].Market.ID
	})
	return views, nil
}

// GetMarket loads one market with its distance from origin.
func (s *Service) GetMarket(ctx context.Context, id string, origin *domain.Location) (*types.MarketView, error) {
	if origin != nil && !origin.Valid() {
		return nil, mapError(domain.ErrInvalidLocation)
	}
	market, err := s.markets.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	return &types.MarketView{Market: market, DistanceKm: market.DistanceFrom(origin)}, nil
}

// Suggestions returns autocomplete entries for a partial search term.
func (s *Service) Suggestions(ctx context.Context, term string, limit int) ([]domain.SearchSuggestion, error) {
	if strings.TrimSpace(term) == "" {
		return []domain.SearchSuggestion{}, nil
	}
	if limit <= 0 {
		limit = 8
	}
	list, err := s.products.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	markets, err := s.markets.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return domain.BuildSuggestions(term, projection.Entities(list), markets, limit), nil
}

func (s *Service) store(ctx context.Context, product *domain.Product) (*types.ProductProjection, error) {
	product.Normalize()
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	market, err := s.markets.GetByID(ctx, product.MarketID)
	if err != nil {
		if errors.Is(err, ports.ErrMarketNotFound) {
			return nil, mapError(domain.ErrUnknownMarket)
		}
		return nil, mapError(err)
	}
	product.MarketName = market.Name
	if product.Barcode != "" {
		owner, err := s.products.GetByBarcode(ctx, product.Barcode)
		switch {
		case err == nil && owner.Entity.ID != product.ID:
			return nil, mapError(ports.ErrDuplicateBarcode)
		case err != nil && !errors.Is(err, ports.ErrNotFound):
			return nil, mapError(err)
		}
	}
	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, saved, types.Viewer{})
}

func (s *Service) project(ctx context.Context, stored *projection.Projection[*domain.Product], viewer types.Viewer) (*types.ProductProjection, error) {
	views, err := s.buildViews(ctx, []*domain.Product{stored.Entity}, viewer)
	if err != nil {
		return nil, err
	}
	return projection.New(views[0], stored.Metadata.CreatedAt, stored.Metadata.UpdatedAt), nil
}

func (s *Service) buildViews(ctx context.Context, products []*domain.Product, viewer types.Viewer) ([]domain.ProductView, error) {
	markets, err := s.markets.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	byID := make(map[string]*domain.Market, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
	}
	favorites := map[string]bool{}
	if viewer.UserID != "" {
		ids, err := s.favorites.List(ctx, viewer.UserID)
		if err != nil {
			return nil, mapError(err)
		}
		for _, id := range ids {
			favorites[id] = true
		}
	}
	now := s.now()
	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		distance := 0.0
		if m, ok := byID[p.MarketID]; ok {
			distance = m.DistanceFrom(viewer.Location)
			if p.MarketName == "" {
				p.MarketName = m.Name
			}
		}
		views = append(views, domain.NewProductView(p, now, distance, favorites[p.ID]))
	}
	return views, nil
}

func applyInput(p *domain.Product, in types.ProductInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Barcode != nil {
		p.Barcode = *in.Barcode
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.SectorID != nil {
		p.SectorID = *in.SectorID
	}
	if in.MarketID != nil {
		p.MarketID = *in.MarketID
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = *in.OriginalPrice
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		p.MinQuantity = *in.MinQuantity
	}
	if in.ExpiryDate != nil {
		p.ExpiryDate = in.ExpiryDate.UTC()
	}
	if in.EntryDate != nil {
		p.EntryDate = in.EntryDate.UTC()
	}
	if in.Images != nil {
		p.Images = append([]string(nil), (*in.Images)...)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Nutrition != nil {
		n := *in.Nutrition
		p.Nutrition = &n
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.ReviewCount != nil {
		p.ReviewCount = *in.ReviewCount
	}
	if in.Tags != nil {
		p.Tags = append([]string(nil), (*in.Tags)...)
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	if in.PromotionID != nil {
		p.PromotionID = *in.PromotionID
	}
}

var _ ports.Service = (*Service)(nil)
