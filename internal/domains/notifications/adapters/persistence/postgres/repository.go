package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	"github.com/levaja/marketplace-api/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists notifications in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&NotificationRecord{}); err != nil {
			log.Printf("notifications migration failed: %v", err)
		}
	}
	return repo
}

// NotificationRecord maps a notification to the notifications table.
type NotificationRecord struct {
	ID        string    `gorm:"primaryKey;column:id"`
	UserID    string    `gorm:"column:user_id;index:idx_notifications_user_read"`
	Title     string    `gorm:"column:title"`
	Message   string    `gorm:"column:message"`
	Type      string    `gorm:"column:type"`
	IsRead    bool      `gorm:"column:is_read;index:idx_notifications_user_read"`
	ActionURL string    `gorm:"column:action_url"`
	ProductID string    `gorm:"column:product_id"`
	MarketID  string    `gorm:"column:market_id"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (NotificationRecord) TableName() string { return "notifications" }

func newNotificationRecord(n *domain.Notification) NotificationRecord {
	return NotificationRecord{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		ActionURL: n.ActionURL,
		ProductID: n.ProductID,
		MarketID:  n.MarketID,
		CreatedAt: n.CreatedAt,
	}
}

func (r NotificationRecord) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Message:   r.Message,
		Type:      domain.Type(r.Type),
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt.UTC(),
		ActionURL: r.ActionURL,
		ProductID: r.ProductID,
		MarketID:  r.MarketID,
	}
}

func (r *Repository) Save(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.New("cannot save nil notification")
	}
	record := newNotificationRecord(n)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_read"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record NotificationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []NotificationRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Notification, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Model(&NotificationRecord{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres notification repository not configured")
	}
	return nil
}
