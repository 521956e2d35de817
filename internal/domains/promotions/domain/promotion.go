package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Reason records why a promotion exists.
type Reason string

const (
	ReasonNearExpiry  Reason = "near_expiry"
	ReasonExcessStock Reason = "excess_stock"
	ReasonSeasonal    Reason = "seasonal"
	ReasonManual      Reason = "manual"
)

const (
	MinDiscount = 1
	MaxDiscount = 90
)

var (
	ErrEmptyPromotionID = errors.New("promotion id is required")
	ErrEmptyProductID   = errors.New("promotion product is required")
	ErrEmptyTitle       = errors.New("promotion title is required")
	ErrInvalidDiscount  = errors.New("discount percentage must be between 1 and 90")
	ErrInvalidPeriod    = errors.New("promotion start date must be before end date")
	ErrInvalidReason    = errors.New("promotion reason is invalid")
)

// Effectiveness summarises how a finished promotion performed.
type Effectiveness struct {
	SalesIncrease  float64
	ProductsSold   int
	Revenue        decimal.Decimal
	WasteReduction float64
}

type Promotion struct {
	ID                 string
	ProductID          string
	Title              string
	Description        string
	DiscountPercentage int
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool
	Reason             Reason
	Effectiveness      *Effectiveness
	CreatedAt          time.Time
}

func (p *Promotion) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	switch {
	case p.ID == "":
		return ErrEmptyPromotionID
	case p.ProductID == "":
		return ErrEmptyProductID
	case p.Title == "":
		return ErrEmptyTitle
	case p.DiscountPercentage < MinDiscount || p.DiscountPercentage > MaxDiscount:
		return ErrInvalidDiscount
	case p.StartDate.IsZero() || p.EndDate.IsZero() || !p.StartDate.Before(p.EndDate):
		return ErrInvalidPeriod
	}
	_, err := ParseReason(string(p.Reason))
	return err
}

// IsRunning reports whether the promotion is active and now falls inside its period.
func (p *Promotion) IsRunning(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartDate) && !now.After(p.EndDate)
}

func (p *Promotion) Clone() *Promotion {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Effectiveness != nil {
		eff := *p.Effectiveness
		clone.Effectiveness = &eff
	}
	return &clone
}

func ParseReason(raw string) (Reason, error) {
	switch r := Reason(strings.TrimSpace(raw)); r {
	case ReasonNearExpiry, ReasonExcessStock, ReasonSeasonal, ReasonManual:
		return r, nil
	}
	return "", ErrInvalidReason
}
