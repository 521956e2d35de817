package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdomain "github.com/levaja/marketplace-api/internal/domains/cart/domain"
	types "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

// Service orchestrates checkout and the order lifecycle.
type Service struct {
	repo        ports.Repository
	carts       ports.CartGateway
	notifier    ports.Notifier
	loyalty     ports.LoyaltyLedger
	idempotency ports.IdempotencyStore
	now         func() time.Time
}

// Option customises the orders service.
type Option func(*Service)

// WithIdempotencyStore enables replay of checkout requests carrying an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithNotifier sends order_update notifications to buyers.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithLoyaltyLedger credits loyalty points at checkout.
func WithLoyaltyLedger(l ports.LoyaltyLedger) Option {
	return func(s *Service) { s.loyalty = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, carts ports.CartGateway, opts ...Option) *Service {
	s := &Service{repo: repo, carts: carts, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder converts the buyer's cart into a pending order, clears the cart, and awards loyalty points.
func (s *Service) PlaceOrder(ctx context.Context, input types.CheckoutInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	delivery, err := domain.ParseDeliveryType(input.DeliveryType)
	if err != nil {
		return nil, mapError(err)
	}
	payment, err := domain.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, mapError(err)
	}

	key := idempotencyScope(input.UserID, input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		fingerprint, err = FingerprintCheckout(input)
		if err != nil {
			return nil, err
		}
		if order, found, err := s.replay(ctx, key, fingerprint); found || err != nil {
			return order, err
		}
	}

	cart, err := s.carts.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.IsEmpty() {
		// A concurrent request with the same key may have emptied the cart already.
		if fingerprint != "" {
			if order, found, err := s.replay(ctx, key, fingerprint); found || err != nil {
				return order, err
			}
		}
		return nil, ErrEmptyCart
	}
	now := s.now()
	order, err := domain.New(uuid.NewString(), input.UserID, itemsFromCart(cart), delivery, input.DeliveryAddress, payment, input.Notes, now)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if fingerprint != "" {
		record := ports.IdempotencyRecord{Key: key, UserID: input.UserID, RequestHash: fingerprint, OrderID: saved.ID}
		stored, err := s.idempotency.Save(ctx, record)
		if err != nil {
			if errors.Is(err, ports.ErrIdempotencyConflict) && stored != nil && stored.RequestHash == fingerprint {
				// Lost the race for the key: drop this order and replay the winner's.
				if err := s.repo.Delete(ctx, saved.ID); err != nil {
					return nil, fmt.Errorf("discard duplicate order %s: %w", saved.ID, err)
				}
				return s.repo.GetByID(ctx, stored.OrderID)
			}
			if delErr := s.repo.Delete(ctx, saved.ID); delErr != nil {
				return nil, errors.Join(err, delErr)
			}
			return nil, err
		}
	}
	if err := s.carts.Clear(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("order %s placed but cart not cleared: %w", saved.ID, err)
	}
	if points := LoyaltyPointsFor(saved); points > 0 && s.loyalty != nil {
		if err := s.loyalty.AddLoyaltyPoints(ctx, input.UserID, points); err != nil {
			return nil, fmt.Errorf("order %s placed but loyalty not credited: %w", saved.ID, err)
		}
	}
	return saved, nil
}

// replay returns the order already placed under key. found is false when the key is unused.
func (s *Service) replay(ctx context.Context, key, fingerprint string) (*domain.Order, bool, error) {
	existing, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, nil
	}
	if existing.RequestHash != fingerprint {
		return nil, true, ports.ErrIdempotencyConflict
	}
	order, err := s.repo.GetByID(ctx, existing.OrderID)
	return order, true, err
}

// idempotencyScope binds a client key to its user so two buyers never share one.
func idempotencyScope(userID, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return userID + ":" + key
}

// NotifyPlaced tells the buyer the order was received.
func (s *Service) NotifyPlaced(ctx context.Context, orderID string) error {
	if s.notifier == nil {
		return nil
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	return s.notifier.NotifyOrder(ctx, ports.OrderNotice{
		UserID:  order.UserID,
		OrderID: order.ID,
		Title:   "Order received",
		Message: fmt.Sprintf("Your order #%s with %d items (R$ %s) is awaiting confirmation.", shortID(order.ID), order.ItemCount, order.Total.StringFixed(2)),
	})
}

// ListOrders returns the buyer's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

// GetOrder loads one order. When a user is given, another user's order is reported as not found.
func (s *Service) GetOrder(ctx context.Context, id types.OrderIdentifier) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id.OrderID)
	if err != nil {
		return nil, err
	}
	if id.UserID != "" && order.UserID != id.UserID {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

// ListAllOrders returns every order, optionally filtered by status, newest first.
func (s *Service) ListAllOrders(ctx context.Context, status string) ([]*domain.Order, error) {
	var want domain.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseStatus(status)
		if err != nil {
			return nil, mapError(err)
		}
		want = parsed
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if want == "" || o.Status == want {
			result = append(result, o)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

// UpdateStatus moves an order along its lifecycle and notifies the owner.
func (s *Service) UpdateStatus(ctx context.Context, change types.StatusChange) (*domain.Order, error) {
	next, err := domain.ParseStatus(change.Status)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.GetByID(ctx, change.OrderID)
	if err != nil {
		return nil, err
	}
	if err := order.TransitionTo(next, s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.persistAndNotify(ctx, order)
}

// CancelOrder lets the buyer cancel while the order is pending or confirmed.
func (s *Service) CancelOrder(ctx context.Context, id types.OrderIdentifier) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.CustomerCancel(s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.persistAndNotify(ctx, order)
}

// SustainabilityStats aggregates the buyer's rescue impact and ranking.
func (s *Service) SustainabilityStats(ctx context.Context, userID string, now time.Time) (domain.SustainabilityStats, error) {
	if userID == "" {
		return domain.SustainabilityStats{}, mapError(domain.ErrEmptyUserID)
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return domain.SustainabilityStats{}, err
	}
	return domain.ComputeStats(userID, orders, now), nil
}

func (s *Service) persistAndNotify(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		notice := ports.OrderNotice{
			UserID:  saved.UserID,
			OrderID: saved.ID,
			Title:   "Order update",
			Message: fmt.Sprintf("Order #%s is now %s.", shortID(saved.ID), saved.Status),
		}
		if err := s.notifier.NotifyOrder(ctx, notice); err != nil {
			return saved, fmt.Errorf("order %s updated but owner not notified: %w", saved.ID, err)
		}
	}
	return saved, nil
}

// LoyaltyPointsFor awards one point per whole currency unit spent.
func LoyaltyPointsFor(order *domain.Order) int {
	return int(order.Total.Floor().IntPart())
}

func itemsFromCart(cart *cartdomain.Cart) []domain.Item {
	items := make([]domain.Item, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.Item{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Image:         line.Image,
			MarketID:      line.MarketID,
			MarketName:    line.MarketName,
			UnitPrice:     line.UnitPrice,
			OriginalPrice: line.OriginalPrice,
			Quantity:      line.SelectedQuantity,
		})
	}
	return items
}

func sortNewestFirst(orders []*domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

var _ ports.Service = (*Service)(nil)
