package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/sectors/domain"
	"github.com/levaja/marketplace-api/internal/domains/sectors/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&SectorRecord{}); err != nil {
			log.Printf("sectors migration failed: %v", err)
		}
	}
	return repo
}

// SectorRecord maps a sector to the sectors table.
type SectorRecord struct {
	ID                string         `gorm:"primaryKey;column:id"`
	Name              string         `gorm:"column:name"`
	Description       string         `gorm:"column:description"`
	ManagerID         string         `gorm:"column:manager_id"`
	EmployeeIDs       pq.StringArray `gorm:"column:employee_ids;type:text[]"`
	ProductCategories pq.StringArray `gorm:"column:product_categories;type:text[]"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
}

func (SectorRecord) TableName() string { return "sectors" }

func (r SectorRecord) toDomain() *domain.Sector {
	return &domain.Sector{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		ManagerID:         r.ManagerID,
		EmployeeIDs:       append([]string(nil), r.EmployeeIDs...),
		ProductCategories: append([]string(nil), r.ProductCategories...),
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
}

func (r *Repository) Save(ctx context.Context, sector *domain.Sector) (*domain.Sector, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if sector == nil {
		return nil, errors.New("cannot save nil sector")
	}
	record := SectorRecord{
		ID:                sector.ID,
		Name:              sector.Name,
		Description:       sector.Description,
		ManagerID:         sector.ManagerID,
		EmployeeIDs:       pq.StringArray(append([]string{}, sector.EmployeeIDs...)),
		ProductCategories: pq.StringArray(append([]string{}, sector.ProductCategories...)),
		CreatedAt:         sector.CreatedAt,
		UpdatedAt:         sector.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "manager_id", "employee_ids", "product_categories", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Sector, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record SectorRecord
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
	result := r.db.WithContext(ctx).Delete(&SectorRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Sector, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []SectorRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Sector, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres sector repository not configured")
	}
	return nil
}
