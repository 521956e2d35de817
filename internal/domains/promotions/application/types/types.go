package types

import (
	"time"

	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
)

// PromotionInput carries create and partial-update fields. Nil pointers are left untouched on update.
// IsActive defaults to true on create.
type PromotionInput struct {
	ID                 string
	ProductID          *string
	Title              *string
	Description        *string
	DiscountPercentage *int
	StartDate          *time.Time
	EndDate            *time.Time
	Reason             *string
	IsActive           *bool
	Effectiveness      *domain.Effectiveness
}
