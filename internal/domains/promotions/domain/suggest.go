package domain

import (
	"fmt"
	"time"
)

const (
	NearExpiryDiscount = 30
	LowStockDiscount   = 15
	SuggestionPeriod   = 7 * 24 * time.Hour
)

// Candidate is the catalog state a suggestion rule looks at.
type Candidate struct {
	ProductID  string
	Name       string
	NearExpiry bool
	LowStock   bool
}

// Suggest proposes an inactive promotion for every near-expiry or low-stock candidate
// that is not already covered by a running promotion. Near-expiry wins when both apply.
func Suggest(candidates []Candidate, existing []*Promotion, now time.Time) []*Promotion {
	covered := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		if p.IsRunning(now) {
			covered[p.ProductID] = struct{}{}
		}
	}

	suggestions := make([]*Promotion, 0)
	for _, c := range candidates {
		if _, ok := covered[c.ProductID]; ok {
			continue
		}
		var (
			discount int
			reason   Reason
			why      string
		)
		switch {
		case c.NearExpiry:
			discount, reason, why = NearExpiryDiscount, ReasonNearExpiry, "product close to its expiry date"
		case c.LowStock:
			discount, reason, why = LowStockDiscount, ReasonExcessStock, "product with low stock"
		default:
			continue
		}
		suggestions = append(suggestions, &Promotion{
			ID:                 "suggestion-" + c.ProductID,
			ProductID:          c.ProductID,
			Title:              "Suggested promotion - " + c.Name,
			Description:        fmt.Sprintf("Automatic %d%% discount for %s", discount, why),
			DiscountPercentage: discount,
			StartDate:          now,
			EndDate:            now.Add(SuggestionPeriod),
			IsActive:           false,
			Reason:             reason,
			CreatedAt:          now,
		})
	}
	return suggestions
}
