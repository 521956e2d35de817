package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
	"github.com/levaja/marketplace-api/internal/domains/insights/ports"
)

var _ ports.ActivityRepository = (*ActivityLog)(nil)

// ActivityLog stores audit entries in PostgreSQL.
type ActivityLog struct {
	db *gorm.DB
}

func NewActivityLog(db *gorm.DB) *ActivityLog {
	repo := &ActivityLog{db: db}
	if db != nil {
		if err := db.AutoMigrate(&ActivityRecord{}); err != nil {
			log.Printf("activity log migration failed: %v", err)
		}
	}
	return repo
}

// ActivityRecord maps an audit entry to the activity_log table.
type ActivityRecord struct {
	ID          string            `gorm:"primaryKey;column:id"`
	UserID      string            `gorm:"column:user_id;index"`
	Action      string            `gorm:"column:action"`
	Description string            `gorm:"column:description"`
	Metadata    map[string]string `gorm:"column:metadata;serializer:json"`
	Timestamp   time.Time         `gorm:"column:timestamp;index"`
}

func (ActivityRecord) TableName() string { return "activity_log" }

func (a *ActivityLog) Append(ctx context.Context, entry domain.ActivityEntry) error {
	if a == nil || a.db == nil {
		return errors.New("postgres activity log not configured")
	}
	record := ActivityRecord{
		ID:          entry.ID,
		UserID:      entry.UserID,
		Action:      entry.Action,
		Description: entry.Description,
		Metadata:    entry.Metadata,
		Timestamp:   entry.Timestamp,
	}
	return a.db.WithContext(ctx).Create(&record).Error
}

func (a *ActivityLog) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if a == nil || a.db == nil {
		return nil, errors.New("postgres activity log not configured")
	}
	var records []ActivityRecord
	if err := a.db.WithContext(ctx).Order("timestamp DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	entries := make([]domain.ActivityEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.ActivityEntry{
			ID:          r.ID,
			UserID:      r.UserID,
			Action:      r.Action,
			Description: r.Description,
			Metadata:    r.Metadata,
			Timestamp:   r.Timestamp.UTC(),
		})
	}
	return entries, nil
}
