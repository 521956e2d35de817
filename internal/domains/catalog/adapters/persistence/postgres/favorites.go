package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

var _ ports.FavoriteStore = (*FavoriteStore)(nil)

// FavoriteStore persists per-user favorites.
type FavoriteStore struct {
	db *gorm.DB
}

func NewFavoriteStore(db *gorm.DB) *FavoriteStore {
	store := &FavoriteStore{db: db}
	if db != nil {
		if err := db.AutoMigrate(&FavoriteRecord{}); err != nil {
			log.Printf("catalog favorite migration failed: %v", err)
		}
	}
	return store
}

// FavoriteRecord is one (user, product) pair.
type FavoriteRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id"`
	ProductID string    `gorm:"primaryKey;column:product_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (FavoriteRecord) TableName() string { return "favorites" }

// Toggle deletes the pair when present and inserts it otherwise, in one transaction.
func (s *FavoriteStore) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if err := s.ensureDB(); err != nil {
		return false, err
	}
	var added bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&FavoriteRecord{}, "user_id = ? AND product_id = ?", userID, productID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		added = true
		return tx.Create(&FavoriteRecord{UserID: userID, ProductID: productID}).Error
	})
	return added, err
}

func (s *FavoriteStore) List(ctx context.Context, userID string) ([]string, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var ids []string
	if err := s.db.WithContext(ctx).Model(&FavoriteRecord{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *FavoriteStore) RemoveProduct(ctx context.Context, productID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&FavoriteRecord{}, "product_id = ?", productID).Error
}

func (s *FavoriteStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres favorite store not configured")
	}
	return nil
}
