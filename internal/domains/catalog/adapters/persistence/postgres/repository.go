package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/shared/projection"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository persists products in PostgreSQL using GORM-mapped columns.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	repo := &ProductRepository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&ProductRecord{}); err != nil {
			log.Printf("catalog product migration failed: %v", err)
		}
	}
	return repo
}

// ProductRecord maps the product aggregate to the products table.
type ProductRecord struct {
	ID            string                  `gorm:"primaryKey;column:id"`
	Name          string                  `gorm:"column:name"`
	Barcode       *string                 `gorm:"column:barcode;uniqueIndex"`
	Category      string                  `gorm:"column:category;index"`
	Brand         string                  `gorm:"column:brand"`
	SectorID      string                  `gorm:"column:sector_id;index"`
	MarketID      string                  `gorm:"column:market_id;index"`
	MarketName    string                  `gorm:"column:market_name"`
	Price         decimal.Decimal         `gorm:"column:price;type:numeric(12,2)"`
	OriginalPrice decimal.Decimal         `gorm:"column:original_price;type:numeric(12,2)"`
	Quantity      int                     `gorm:"column:quantity"`
	MinQuantity   int                     `gorm:"column:min_quantity"`
	ExpiryDate    time.Time               `gorm:"column:expiry_date;index"`
	EntryDate     time.Time               `gorm:"column:entry_date"`
	Images        pq.StringArray          `gorm:"column:images;type:text[]"`
	Description   string                  `gorm:"column:description"`
	Nutrition     *domain.NutritionalInfo `gorm:"column:nutritional_info;serializer:json"`
	Rating        float64                 `gorm:"column:rating"`
	ReviewCount   int                     `gorm:"column:review_count"`
	Tags          pq.StringArray          `gorm:"column:tags;type:text[]"`
	Supplier      string                  `gorm:"column:supplier"`
	PromotionID   string                  `gorm:"column:promotion_id"`
	CreatedAt     time.Time               `gorm:"column:created_at"`
	UpdatedAt     time.Time               `gorm:"column:updated_at"`
}

func (ProductRecord) TableName() string { return "products" }

func newProductRecord(p *domain.Product) ProductRecord {
	rec := ProductRecord{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		SectorID:      p.SectorID,
		MarketID:      p.MarketID,
		MarketName:    p.MarketName,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Quantity:      p.Quantity,
		MinQuantity:   p.MinQuantity,
		ExpiryDate:    p.ExpiryDate,
		EntryDate:     p.EntryDate,
		Images:        pq.StringArray(append([]string{}, p.Images...)),
		Description:   p.Description,
		Nutrition:     p.Nutrition,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		Tags:          pq.StringArray(append([]string{}, p.Tags...)),
		Supplier:      p.Supplier,
		PromotionID:   p.PromotionID,
	}
	if p.Barcode != "" {
		barcode := p.Barcode
		rec.Barcode = &barcode
	}
	return rec
}

func (r ProductRecord) toDomain() *domain.Product {
	p := &domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		Brand:         r.Brand,
		SectorID:      r.SectorID,
		MarketID:      r.MarketID,
		MarketName:    r.MarketName,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Quantity:      r.Quantity,
		MinQuantity:   r.MinQuantity,
		ExpiryDate:    r.ExpiryDate.UTC(),
		EntryDate:     r.EntryDate.UTC(),
		Images:        append([]string(nil), r.Images...),
		Description:   r.Description,
		Nutrition:     r.Nutrition,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		Tags:          append([]string(nil), r.Tags...),
		Supplier:      r.Supplier,
		PromotionID:   r.PromotionID,
	}
	if r.Barcode != nil {
		p.Barcode = *r.Barcode
	}
	return p
}

// Save inserts or updates a product.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	record := newProductRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: upsertColumns(productColumns),
		}).Create(&record).Error; err != nil {
		// id conflicts are upserts, so the only unique violation left is the barcode.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateBarcode
		}
		return nil, err
	}
	return r.GetByID(ctx, product.ID)
}

// GetByID fetches a product by identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Product], error) {
	return r.first(ctx, "id = ?", id)
}

// GetByBarcode fetches a product by its EAN-13 code.
func (r *ProductRepository) GetByBarcode(ctx context.Context, barcode string) (*projection.Projection[*domain.Product], error) {
	return r.first(ctx, "barcode = ?", barcode)
}

// Delete removes a product by identifier.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&ProductRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns every persisted product ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Product], 0, len(records))
	for i := range records {
		list = append(list, projection.New(records[i].toDomain(), records[i].CreatedAt, records[i].UpdatedAt))
	}
	return list, nil
}

func (r *ProductRepository) first(ctx context.Context, query string, arg any) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ProductRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return projection.New(record.toDomain(), record.CreatedAt, record.UpdatedAt), nil
}

var productColumns = []string{
	"name", "barcode", "category", "brand", "sector_id", "market_id", "market_name",
	"price", "original_price", "quantity", "min_quantity", "expiry_date", "entry_date",
	"images", "description", "nutritional_info", "rating", "review_count", "tags",
	"supplier", "promotion_id",
}

// upsertColumns copies the excluded row into the listed columns and bumps updated_at.
func upsertColumns(columns []string) clause.Set {
	set := clause.AssignmentColumns(columns)
	return append(set, clause.Assignment{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("NOW()")})
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}
