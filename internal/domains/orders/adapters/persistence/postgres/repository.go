package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders with their lines, address and impact as JSON columns.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&OrderRecord{}, &IdempotencyRecord{}); err != nil {
			log.Printf("orders migration failed: %v", err)
		}
	}
	return repo
}

// OrderRecord maps an order to the orders table.
type OrderRecord struct {
	ID                string                      `gorm:"primaryKey;column:id"`
	UserID            string                      `gorm:"column:user_id;index"`
	Items             []domain.Item               `gorm:"column:items;serializer:json"`
	Total             decimal.Decimal             `gorm:"column:total;type:numeric(12,2)"`
	OriginalTotal     decimal.Decimal             `gorm:"column:original_total;type:numeric(12,2)"`
	Savings           decimal.Decimal             `gorm:"column:savings;type:numeric(12,2)"`
	ItemCount         int                         `gorm:"column:item_count"`
	Status            string                      `gorm:"column:status;index"`
	DeliveryType      string                      `gorm:"column:delivery_type"`
	DeliveryAddress   *domain.Address             `gorm:"column:delivery_address;serializer:json"`
	MarketID          string                      `gorm:"column:market_id"`
	MarketName        string                      `gorm:"column:market_name"`
	PaymentMethod     string                      `gorm:"column:payment_method"`
	Notes             string                      `gorm:"column:notes"`
	EstimatedDelivery time.Time                   `gorm:"column:estimated_delivery"`
	ActualDelivery    *time.Time                  `gorm:"column:actual_delivery"`
	Impact            domain.SustainabilityImpact `gorm:"column:sustainability_impact;serializer:json"`
	CreatedAt         time.Time                   `gorm:"column:created_at;index"`
	UpdatedAt         time.Time                   `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string { return "orders" }

func newOrderRecord(o *domain.Order) OrderRecord {
	return OrderRecord{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             o.Items,
		Total:             o.Total,
		OriginalTotal:     o.OriginalTotal,
		Savings:           o.Savings,
		ItemCount:         o.ItemCount,
		Status:            string(o.Status),
		DeliveryType:      string(o.DeliveryType),
		DeliveryAddress:   o.DeliveryAddress,
		MarketID:          o.MarketID,
		MarketName:        o.MarketName,
		PaymentMethod:     string(o.PaymentMethod),
		Notes:             o.Notes,
		EstimatedDelivery: o.EstimatedDelivery,
		ActualDelivery:    o.ActualDelivery,
		Impact:            o.SustainabilityImpact,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (r OrderRecord) toDomain() *domain.Order {
	o := &domain.Order{
		ID:                   r.ID,
		UserID:               r.UserID,
		Items:                r.Items,
		Total:                r.Total,
		OriginalTotal:        r.OriginalTotal,
		Savings:              r.Savings,
		ItemCount:            r.ItemCount,
		Status:               domain.Status(r.Status),
		DeliveryType:         domain.DeliveryType(r.DeliveryType),
		DeliveryAddress:      r.DeliveryAddress,
		MarketID:             r.MarketID,
		MarketName:           r.MarketName,
		PaymentMethod:        domain.PaymentMethod(r.PaymentMethod),
		Notes:                r.Notes,
		EstimatedDelivery:    r.EstimatedDelivery.UTC(),
		SustainabilityImpact: r.Impact,
		CreatedAt:            r.CreatedAt.UTC(),
		UpdatedAt:            r.UpdatedAt.UTC(),
	}
	if r.ActualDelivery != nil {
		at := r.ActualDelivery.UTC()
		o.ActualDelivery = &at
	}
	return o
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}
	record := newOrderRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "actual_delivery", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.find(ctx, r.db.Where("user_id = ?", userID))
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, r.db)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&OrderRecord{}, "id = ?", id).Error
}

func (r *Repository) find(ctx context.Context, scope *gorm.DB) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []OrderRecord
	if err := scope.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Order, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
