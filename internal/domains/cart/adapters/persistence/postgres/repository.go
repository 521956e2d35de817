package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository stores each cart as one row with its lines serialized as JSON.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&CartRecord{}); err != nil {
			log.Printf("cart migration failed: %v", err)
		}
	}
	return repo
}

// CartRecord maps a cart to the carts table.
type CartRecord struct {
	ID        string        `gorm:"primaryKey;column:id"`
	UserID    string        `gorm:"column:user_id;uniqueIndex"`
	Items     []domain.Item `gorm:"column:items;serializer:json"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (CartRecord) TableName() string { return "carts" }

func (r *Repository) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record CartRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	items := record.Items
	if items == nil {
		items = []domain.Item{}
	}
	return &domain.Cart{ID: record.ID, UserID: record.UserID, Items: items, UpdatedAt: record.UpdatedAt}, nil
}

func (r *Repository) Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.New("cannot save nil cart")
	}
	record := CartRecord{ID: cart.ID, UserID: cart.UserID, Items: cart.Items, UpdatedAt: cart.UpdatedAt}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, cart.UserID)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}
