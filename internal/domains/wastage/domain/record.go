package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

// Reason explains why stock was written off.
type Reason string

const (
	ReasonExpired  Reason = "expired"
	ReasonDamaged  Reason = "damaged"
	ReasonStolen   Reason = "stolen"
	ReasonReturned Reason = "returned"
	ReasonOther    Reason = "other"
)

var (
	ErrEmptyRecordID    = errors.New("wastage record id is required")
	ErrEmptyProductID   = errors.New("wastage product is required")
	ErrInvalidQuantity  = errors.New("wastage quantity must be at least 1")
	ErrInvalidReason    = errors.New("wastage reason is invalid")
	ErrNegativeCost     = errors.New("wastage cost must not be negative")
	ErrMissingReporter  = errors.New("wastage reporter is required")
	ErrInvalidDateRange = errors.New("report start must not be after its end")
)

// Record is one stock write-off. Product name, sector and category are snapshots.
type Record struct {
	ID          string
	ProductID   string
	ProductName string
	SectorID    string
	Category    string
	Quantity    int
	Reason      Reason
	Cost        decimal.Decimal
	ReportedBy  string
	ReportedAt  time.Time
}

func (r *Record) Validate() error {
	switch {
	case r.ID == "":
		return ErrEmptyRecordID
	case r.ProductID == "":
		return ErrEmptyProductID
	case r.Quantity < 1:
		return ErrInvalidQuantity
	case r.Cost.IsNegative():
		return ErrNegativeCost
	case r.ReportedBy == "":
		return ErrMissingReporter
	}
	_, err := ParseReason(string(r.Reason))
	return err
}

func ParseReason(raw string) (Reason, error) {
	switch r := Reason(strings.TrimSpace(raw)); r {
	case ReasonExpired, ReasonDamaged, ReasonStolen, ReasonReturned, ReasonOther:
		return r, nil
	}
	return "", ErrInvalidReason
}

// DefaultCost values a write-off at the current unit price.
func DefaultCost(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return money.Mul(unitPrice, quantity)
}

// Filter narrows records; zero fields match everything. From and To are inclusive.
type Filter struct {
	From     *time.Time
	To       *time.Time
	SectorID string
	Reason   Reason
}

func (f Filter) Validate() error {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return ErrInvalidDateRange
	}
	if f.Reason != "" {
		if _, err := ParseReason(string(f.Reason)); err != nil {
			return err
		}
	}
	return nil
}

func (f Filter) Matches(r *Record) bool {
	if f.From != nil && r.ReportedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.ReportedAt.After(*f.To) {
		return false
	}
	if f.SectorID != "" && r.SectorID != f.SectorID {
		return false
	}
	if f.Reason != "" && r.Reason != f.Reason {
		return false
	}
	return true
}

// ReasonTotal aggregates records sharing a reason.
type ReasonTotal struct {
	Quantity int
	Cost     decimal.Decimal
}

type Report struct {
	Records       []*Record
	TotalQuantity int
	TotalCost     decimal.Decimal
	ByReason      map[Reason]ReasonTotal
}

// BuildReport filters records and totals them, newest first.
func BuildReport(records []*Record, filter Filter) Report {
	report := Report{
		Records:   make([]*Record, 0, len(records)),
		TotalCost: money.Zero,
		ByReason:  map[Reason]ReasonTotal{},
	}
	for _, r := range records {
		if !filter.Matches(r) {
			continue
		}
		report.Records = append(report.Records, r)
		report.TotalQuantity += r.Quantity
		report.TotalCost = report.TotalCost.Add(r.Cost)
		total := report.ByReason[r.Reason]
		total.Quantity += r.Quantity
		total.Cost = total.Cost.Add(r.Cost)
		report.ByReason[r.Reason] = total
	}
	sort.SliceStable(report.Records, func(i, j int) bool {
		return report.Records[i].ReportedAt.After(report.Records[j].ReportedAt)
	})
	return report
}
