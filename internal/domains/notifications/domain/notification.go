package domain

import (
	"errors"
	"strings"
	"time"
)

// Type classifies a notification for the client's icon and colour.
type Type string

const (
	TypeNewOffer       Type = "new_offer"
	TypePriceDrop      Type = "price_drop"
	TypeExpiryReminder Type = "expiry_reminder"
	TypeOrderUpdate    Type = "order_update"
	TypeMarketNearby   Type = "market_nearby"
	TypeAchievement    Type = "achievement"

	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

var (
	ErrEmptyUserID  = errors.New("notification recipient is required")
	ErrEmptyTitle   = errors.New("notification title is required")
	ErrEmptyMessage = errors.New("notification message is required")
	ErrInvalidType  = errors.New("notification type is invalid")
)

// ParseType validates a raw notification type.
func ParseType(raw string) (Type, error) {
	switch t := Type(strings.TrimSpace(raw)); t {
	case TypeNewOffer, TypePriceDrop, TypeExpiryReminder, TypeOrderUpdate, TypeMarketNearby, TypeAchievement,
		TypeWarning, TypeInfo, TypeSuccess, TypeError:
		return t, nil
	}
	return "", ErrInvalidType
}

// Notification is a message addressed to one user.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      Type
	IsRead    bool
	CreatedAt time.Time
	ActionURL string
	ProductID string
	MarketID  string
}

func (n *Notification) Validate() error {
	n.Title = strings.TrimSpace(n.Title)
	n.Message = strings.TrimSpace(n.Message)
	switch {
	case n.UserID == "":
		return ErrEmptyUserID
	case n.Title == "":
		return ErrEmptyTitle
	case n.Message == "":
		return ErrEmptyMessage
	}
	_, err := ParseType(string(n.Type))
	return err
}

// MarkRead flips the read flag and reports whether it changed.
func (n *Notification) MarkRead() bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	return true
}
