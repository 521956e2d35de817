package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductFact is the catalog state the dashboards read.
type ProductFact struct {
	ID           string
	Name         string
	SectorID     string
	Category     string
	Quantity     int
	ExpiryDate   time.Time
	DaysToExpiry int
	NearExpiry   bool
	LowStock     bool
}

// SaleLine is one line of a non-cancelled order.
type SaleLine struct {
	OrderID       string
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	OriginalPrice decimal.Decimal
	SoldAt        time.Time
}

// Revenue is unit price times quantity.
func (l SaleLine) Revenue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Promotional reports whether the line sold below its original price.
func (l SaleLine) Promotional() bool {
	return l.UnitPrice.LessThan(l.OriginalPrice)
}

// WastageFact is a written-off quantity with its cost.
type WastageFact struct {
	ID          string
	ProductID   string
	ProductName string
	SectorID    string
	Quantity    int
	Reason      string
	Cost        decimal.Decimal
	ReportedBy  string
	ReportedAt  time.Time
}
