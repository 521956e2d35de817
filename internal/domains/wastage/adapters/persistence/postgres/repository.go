package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	"github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository appends wastage records to PostgreSQL.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&WastageRecord{}); err != nil {
			log.Printf("wastage migration failed: %v", err)
		}
	}
	return repo
}

// WastageRecord maps a write-off to the wastage_records table.
type WastageRecord struct {
	ID          string          `gorm:"primaryKey;column:id"`
	ProductID   string          `gorm:"column:product_id;index"`
	ProductName string          `gorm:"column:product_name"`
	SectorID    string          `gorm:"column:sector_id;index"`
	Category    string          `gorm:"column:category"`
	Quantity    int             `gorm:"column:quantity"`
	Reason      string          `gorm:"column:reason"`
	Cost        decimal.Decimal `gorm:"column:cost;type:numeric(12,2)"`
	ReportedBy  string          `gorm:"column:reported_by"`
	ReportedAt  time.Time       `gorm:"column:reported_at;index"`
}

func (WastageRecord) TableName() string { return "wastage_records" }

func (r *Repository) Save(ctx context.Context, record *domain.Record) (*domain.Record, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("cannot save nil wastage record")
	}
	row := WastageRecord{
		ID:          record.ID,
		ProductID:   record.ProductID,
		ProductName: record.ProductName,
		SectorID:    record.SectorID,
		Category:    record.Category,
		Quantity:    record.Quantity,
		Reason:      string(record.Reason),
		Cost:        record.Cost,
		ReportedBy:  record.ReportedBy,
		ReportedAt:  record.ReportedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Record, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []WastageRecord
	if err := r.db.WithContext(ctx).Order("reported_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Record, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toDomain())
	}
	return list, nil
}

func (w WastageRecord) toDomain() *domain.Record {
	return &domain.Record{
		ID:          w.ID,
		ProductID:   w.ProductID,
		ProductName: w.ProductName,
		SectorID:    w.SectorID,
		Category:    w.Category,
		Quantity:    w.Quantity,
		Reason:      domain.Reason(w.Reason),
		Cost:        w.Cost,
		ReportedBy:  w.ReportedBy,
		ReportedAt:  w.ReportedAt.UTC(),
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres wastage repository not configured")
	}
	return nil
}
