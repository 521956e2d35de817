package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

var _ ports.MarketRepository = (*MarketRepository)(nil)

// MarketRepository persists partner markets.
type MarketRepository struct {
	db *gorm.DB
}

func NewMarketRepository(db *gorm.DB) *MarketRepository {
	repo := &MarketRepository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&MarketRecord{}); err != nil {
			log.Printf("catalog market migration failed: %v", err)
		}
	}
	return repo
}

// MarketRecord maps a market to the markets table.
type MarketRecord struct {
	ID                       string    `gorm:"primaryKey;column:id"`
	Name                     string    `gorm:"column:name"`
	Address                  string    `gorm:"column:address"`
	Lat                      float64   `gorm:"column:lat"`
	Lng                      float64   `gorm:"column:lng"`
	ReferenceDistanceKm      float64   `gorm:"column:reference_distance_km"`
	Rating                   float64   `gorm:"column:rating"`
	IsOpen                   bool      `gorm:"column:is_open"`
	OpeningHours             string    `gorm:"column:opening_hours"`
	DeliveryAvailable        bool      `gorm:"column:delivery_available"`
	PickupAvailable          bool      `gorm:"column:pickup_available"`
	EstimatedDeliveryMinutes int       `gorm:"column:estimated_delivery_minutes"`
	Phone                    string    `gorm:"column:phone"`
	Image                    string    `gorm:"column:image"`
	CreatedAt                time.Time `gorm:"column:created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at"`
}

func (MarketRecord) TableName() string { return "markets" }

var marketColumns = []string{
	"name", "address", "lat", "lng", "reference_distance_km", "rating", "is_open",
	"opening_hours", "delivery_available", "pickup_available", "estimated_delivery_minutes",
	"phone", "image",
}

func (r *MarketRepository) Save(ctx context.Context, market *domain.Market) (*domain.Market, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres market repository not configured")
	}
	if market == nil {
		return nil, errors.New("cannot save nil market")
	}
	record := MarketRecord{
		ID:                       market.ID,
		Name:                     market.Name,
		Address:                  market.Address,
		Lat:                      market.Location.Lat,
		Lng:                      market.Location.Lng,
		ReferenceDistanceKm:      market.ReferenceDistanceKm,
		Rating:                   market.Rating,
		IsOpen:                   market.IsOpen,
		OpeningHours:             market.OpeningHours,
		DeliveryAvailable:        market.DeliveryAvailable,
		PickupAvailable:          market.PickupAvailable,
		EstimatedDeliveryMinutes: market.EstimatedDeliveryMinutes,
		Phone:                    market.Phone,
		Image:                    market.Image,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: upsertColumns(marketColumns),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, market.ID)
}

func (r *MarketRepository) GetByID(ctx context.Context, id string) (*domain.Market, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres market repository not configured")
	}
	var record MarketRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrMarketNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *MarketRepository) List(ctx context.Context) ([]*domain.Market, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres market repository not configured")
	}
	var records []MarketRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Market, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r MarketRecord) toDomain() *domain.Market {
	return &domain.Market{
		ID:                       r.ID,
		Name:                     r.Name,
		Address:                  r.Address,
		Location:                 domain.Location{Lat: r.Lat, Lng: r.Lng},
		ReferenceDistanceKm:      r.ReferenceDistanceKm,
		Rating:                   r.Rating,
		IsOpen:                   r.IsOpen,
		OpeningHours:             r.OpeningHours,
		DeliveryAvailable:        r.DeliveryAvailable,
		PickupAvailable:          r.PickupAvailable,
		EstimatedDeliveryMinutes: r.EstimatedDeliveryMinutes,
		Phone:                    r.Phone,
		Image:                    r.Image,
	}
}
