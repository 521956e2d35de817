package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter, viewer types.Viewer) (domain.Page[domain.ProductView], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts", trace.WithAttributes(
		attribute.String("filter.category", filter.Category),
		attribute.String("filter.sort_by", string(filter.SortBy)),
		attribute.Int("filter.page", filter.Page),
	))
	defer span.End()

	result, err := s.inner.ListProducts(ctx, filter, viewer)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to list products", slog.String("filter.search", filter.SearchTerm))
	}
	span.SetAttributes(attribute.Int("result.total", result.Total))
	s.logDebug(ctx, "products listed", slog.Int("total", result.Total), slog.Int("page", result.Page))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id string, viewer types.Viewer) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id, viewer)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.FindByBarcode", trace.WithAttributes(attribute.String("product.barcode", barcode)))
	defer span.End()

	s.logInfo(ctx, "scanning barcode", slog.String("product.barcode", barcode))
	result, err := s.inner.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "barcode lookup failed", slog.String("product.barcode", barcode))
	}
	return result, nil
}

func (s *Service) CreateProduct(ctx context.Context, input types.ProductInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct")
	defer span.End()

	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product")
	}
	id := result.Entity.Product.ID
	span.SetAttributes(attribute.String("product.id", id))
	s.metrics.recordMutation(ctx, "create")
	s.logInfo(ctx, "product created", slog.String("product.id", id), slog.String("product.name", result.Entity.Product.Name))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, input types.ProductInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct", trace.WithAttributes(attribute.String("product.id", input.ID)))
	defer span.End()

	result, err := s.inner.UpdateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product.id", input.ID))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "product updated", slog.String("product.id", input.ID))
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if err := s.inner.DeleteProduct(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.String("product.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "product deleted", slog.String("product.id", id))
	return nil
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AdjustStock", trace.WithAttributes(
		attribute.String("product.id", id), attribute.Int("stock.delta", delta)))
	defer span.End()

	result, err := s.inner.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to adjust stock", slog.String("product.id", id), slog.Int("stock.delta", delta))
	}
	s.logInfo(ctx, "stock adjusted", slog.String("product.id", id), slog.Int("stock.quantity", result.Entity.Product.Quantity))
	return result, nil
}

func (s *Service) AllProducts(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AllProducts")
	defer span.End()

	result, err := s.inner.AllProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to snapshot products")
	}
	span.SetAttributes(attribute.Int("result.count", len(result)))
	return result, nil
}

func (s *Service) ToggleFavorite(ctx context.Context, userID, productID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ToggleFavorite", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.String("product.id", productID)))
	defer span.End()

	state, err := s.inner.ToggleFavorite(ctx, userID, productID)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to toggle favorite", slog.String("product.id", productID))
	}
	s.metrics.recordFavorite(ctx, state)
	return state, nil
}

func (s *Service) ListFavorites(ctx context.Context, viewer types.Viewer) ([]domain.ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListFavorites", trace.WithAttributes(attribute.String("user.id", viewer.UserID)))
	defer span.End()

	result, err := s.inner.ListFavorites(ctx, viewer)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list favorites", slog.String("user.id", viewer.UserID))
	}
	return result, nil
}

func (s *Service) SaveMarket(ctx context.Context, market *domain.Market) (*domain.Market, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SaveMarket")
	defer span.End()

	result, err := s.inner.SaveMarket(ctx, market)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save market")
	}
	s.logInfo(ctx, "market saved", slog.String("market.id", result.ID))
	return result, nil
}

func (s *Service) ListMarkets(ctx context.Context, origin *domain.Location) ([]types.MarketView, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListMarkets", trace.WithAttributes(attribute.Bool("origin.known", origin != nil)))
	defer span.End()

	result, err := s.inner.ListMarkets(ctx, origin)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list markets")
	}
	return result, nil
}

func (s *Service) GetMarket(ctx context.Context, id string, origin *domain.Location) (*types.MarketView, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetMarket", trace.WithAttributes(attribute.String("market.id", id)))
	defer span.End()

	result, err := s.inner.GetMarket(ctx, id, origin)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load market", slog.String("market.id", id))
	}
	return result, nil
}

func (s *Service) Suggestions(ctx context.Context, term string, limit int) ([]domain.SearchSuggestion, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Suggestions", trace.WithAttributes(attribute.String("search.term", term)))
	defer span.End()

	result, err := s.inner.Suggestions(ctx, term, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build suggestions")
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	mutations        metric.Int64Counter
	favoritesToggled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("catalog.service.product_mutations", metric.WithDescription("Number of product create/update/delete operations"))
	favorites, _ := m.Int64Counter("catalog.service.favorites_toggled", metric.WithDescription("Number of favorite toggles"))
	return serviceMetrics{mutations: mutations, favoritesToggled: favorites}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

func (m serviceMetrics) recordFavorite(ctx context.Context, added bool) {
	if m.favoritesToggled != nil {
		m.favoritesToggled.Add(ctx, 1, metric.WithAttributes(attribute.Bool("favorite.added", added)))
	}
}

var _ ports.Service = (*Service)(nil)
