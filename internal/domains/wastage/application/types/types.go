package types

import "github.com/shopspring/decimal"

// RecordInput describes a write-off. Cost defaults to unit price times quantity when nil.
type RecordInput struct {
	ProductID string
	Quantity  int
	Reason    string
	Cost      *decimal.Decimal
}
