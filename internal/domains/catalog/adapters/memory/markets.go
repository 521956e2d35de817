package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

var _ ports.MarketRepository = (*MarketRepository)(nil)

// MarketRepository keeps partner markets in memory.
type MarketRepository struct {
	mu      sync.RWMutex
	markets map[string]domain.Market
}

func NewMarketRepository() *MarketRepository {
	return &MarketRepository{markets: map[string]domain.Market{}}
}

func (r *MarketRepository) Save(_ context.Context, market *domain.Market) (*domain.Market, error) {
	if market == nil {
		return nil, errors.New("cannot save nil market")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markets[market.ID] = *market
	clone := *market
	return &clone, nil
}

func (r *MarketRepository) GetByID(_ context.Context, id string) (*domain.Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	market, ok := r.markets[id]
	if !ok {
		return nil, ports.ErrMarketNotFound
	}
	return &market, nil
}

func (r *MarketRepository) List(_ context.Context) ([]*domain.Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Market, 0, len(r.markets))
	for _, m := range r.markets {
		clone := m
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
