package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
	"github.com/levaja/marketplace-api/internal/domains/accounts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&UserRecord{}, &SessionRecord{}); err != nil {
			log.Printf("accounts migration failed: %v", err)
		}
	}
	return repo
}

// UserRecord maps a user to the users table.
type UserRecord struct {
	ID                  string             `gorm:"primaryKey;column:id"`
	Name                string             `gorm:"column:name"`
	Email               string             `gorm:"column:email;uniqueIndex"`
	PasswordHash        string             `gorm:"column:password_hash"`
	Role                string             `gorm:"column:role;index"`
	SectorID            string             `gorm:"column:sector_id"`
	Avatar              string             `gorm:"column:avatar"`
	Phone               string             `gorm:"column:phone"`
	Preferences         domain.Preferences `gorm:"column:preferences;serializer:json"`
	LoyaltyPoints       int                `gorm:"column:loyalty_points"`
	SustainabilityScore int                `gorm:"column:sustainability_score"`
	CreatedAt           time.Time          `gorm:"column:created_at"`
	UpdatedAt           time.Time          `gorm:"column:updated_at"`
}

func (UserRecord) TableName() string { return "users" }

// Save inserts or updates a user keyed by id. A taken email yields ErrEmailTaken.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "email", "password_hash", "role", "sector_id", "avatar", "phone",
				"preferences", "loyalty_points", "sustainability_score", "updated_at",
			}),
		}).
		Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", domain.NormalizeEmail(email))
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all users ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []UserRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record UserRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) UserRecord {
	return UserRecord{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               domain.NormalizeEmail(user.Email),
		PasswordHash:        user.PasswordHash,
		Role:                string(user.Role),
		SectorID:            user.SectorID,
		Avatar:              user.Avatar,
		Phone:               user.Phone,
		Preferences:         user.Preferences,
		LoyaltyPoints:       user.LoyaltyPoints,
		SustainabilityScore: user.SustainabilityScore,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}

func (r UserRecord) toDomain() *domain.User {
	return &domain.User{
		ID:                  r.ID,
		Name:                r.Name,
		Email:               r.Email,
		PasswordHash:        r.PasswordHash,
		Role:                domain.Role(r.Role),
		SectorID:            r.SectorID,
		Avatar:              r.Avatar,
		Phone:               r.Phone,
		Preferences:         r.Preferences,
		LoyaltyPoints:       r.LoyaltyPoints,
		SustainabilityScore: r.SustainabilityScore,
		CreatedAt:           r.CreatedAt.UTC(),
		UpdatedAt:           r.UpdatedAt.UTC(),
	}
}
