package domain

import "time"

// NearExpiryWindowDays is the look-ahead window for near-expiry products.
const NearExpiryWindowDays = 7

// DaysUntil returns the whole days between now and expiry, truncated toward zero.
func DaysUntil(now, expiry time.Time) int {
	return int(expiry.Sub(now).Hours() / 24)
}

// ExpiryPriority ranks how urgently a product needs attention.
type ExpiryPriority string

const (
	PriorityHigh   ExpiryPriority = "high"
	PriorityMedium ExpiryPriority = "medium"
	PriorityLow    ExpiryPriority = "low"
)

// PriorityFor maps days to expiry onto an alert priority.
func PriorityFor(days int) ExpiryPriority {
	switch {
	case days <= 1:
		return PriorityHigh
	case days <= 3:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
