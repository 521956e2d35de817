package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	"github.com/levaja/marketplace-api/internal/domains/promotions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists promotions in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&PromotionRecord{}); err != nil {
			log.Printf("promotions migration failed: %v", err)
		}
	}
	return repo
}

// PromotionRecord maps a promotion to the promotions table.
type PromotionRecord struct {
	ID                 string                `gorm:"primaryKey;column:id"`
	ProductID          string                `gorm:"column:product_id;index"`
	Title              string                `gorm:"column:title"`
	Description        string                `gorm:"column:description"`
	DiscountPercentage int                   `gorm:"column:discount_percentage"`
	StartDate          time.Time             `gorm:"column:start_date"`
	EndDate            time.Time             `gorm:"column:end_date"`
	IsActive           bool                  `gorm:"column:is_active;index"`
	Reason             string                `gorm:"column:reason"`
	Effectiveness      *domain.Effectiveness `gorm:"column:effectiveness;serializer:json"`
	CreatedAt          time.Time             `gorm:"column:created_at"`
}

func (PromotionRecord) TableName() string { return "promotions" }

func newPromotionRecord(p *domain.Promotion) PromotionRecord {
	return PromotionRecord{
		ID:                 p.ID,
		ProductID:          p.ProductID,
		Title:              p.Title,
		Description:        p.Description,
		DiscountPercentage: p.DiscountPercentage,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		IsActive:           p.IsActive,
		Reason:             string(p.Reason),
		Effectiveness:      p.Effectiveness,
		CreatedAt:          p.CreatedAt,
	}
}

func (r PromotionRecord) toDomain() *domain.Promotion {
	return &domain.Promotion{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		Title:              r.Title,
		Description:        r.Description,
		DiscountPercentage: r.DiscountPercentage,
		StartDate:          r.StartDate.UTC(),
		EndDate:            r.EndDate.UTC(),
		IsActive:           r.IsActive,
		Reason:             domain.Reason(r.Reason),
		Effectiveness:      r.Effectiveness,
		CreatedAt:          r.CreatedAt.UTC(),
	}
}

func (r *Repository) Save(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, errors.New("cannot save nil promotion")
	}
	record := newPromotionRecord(promotion)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_id", "title", "description", "discount_percentage",
				"start_date", "end_date", "is_active", "reason", "effectiveness",
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Promotion, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record PromotionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&PromotionRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Promotion, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []PromotionRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Promotion, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres promotion repository not configured")
	}
	return nil
}
