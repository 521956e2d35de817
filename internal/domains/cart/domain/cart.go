package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

var (
	ErrEmptyUserID      = errors.New("cart owner is required")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrItemNotFound     = errors.New("cart item not found")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrEmptyProductID   = errors.New("product id is required")
)

// Item is one cart line. Prices and stock are snapshots taken when the line was added.
type Item struct {
	ID                string
	ProductID         string
	ProductName       string
	Image             string
	MarketID          string
	MarketName        string
	UnitPrice         decimal.Decimal
	OriginalPrice     decimal.Decimal
	AvailableQuantity int
	SelectedQuantity  int
}

// Subtotal is unit price times selected quantity.
func (i Item) Subtotal() decimal.Decimal {
	return money.Mul(i.UnitPrice, i.SelectedQuantity)
}

// Totals are always derived from the items.
type Totals struct {
	Total         decimal.Decimal
	OriginalTotal decimal.Decimal
	Savings       decimal.Decimal
	ItemCount     int
}

// Cart is the per-user shopping cart aggregate.
type Cart struct {
	ID        string
	UserID    string
	Items     []Item
	UpdatedAt time.Time
}

// New creates an empty cart owned by userID.
func New(id, userID string, now time.Time) (*Cart, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return &Cart{ID: id, UserID: userID, Items: []Item{}, UpdatedAt: now}, nil
}

// Totals sums the lines with decimal arithmetic.
func (c *Cart) Totals() Totals {
	t := Totals{Total: money.Zero, OriginalTotal: money.Zero}
	for _, item := range c.Items {
		t.Total = t.Total.Add(money.Mul(item.UnitPrice, item.SelectedQuantity))
		t.OriginalTotal = t.OriginalTotal.Add(money.Mul(item.OriginalPrice, item.SelectedQuantity))
		t.ItemCount += item.SelectedQuantity
	}
	t.Savings = t.OriginalTotal.Sub(t.Total)
	return t
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Add merges qty units of the line's product into the cart, capped by available stock.
// The line's ID is used only when a new line is created. It returns the resulting line.
func (c *Cart) Add(line Item, qty int, now time.Time) (Item, error) {
	if line.ProductID == "" {
		return Item{}, ErrEmptyProductID
	}
	if qty < 1 {
		return Item{}, ErrInvalidQuantity
	}
	if line.AvailableQuantity <= 0 {
		return Item{}, ErrOutOfStock
	}
	for i := range c.Items {
		existing := &c.Items[i]
		if existing.ProductID != line.ProductID {
			continue
		}
		existing.AvailableQuantity = line.AvailableQuantity
		existing.UnitPrice = line.UnitPrice
		existing.OriginalPrice = line.OriginalPrice
		existing.SelectedQuantity = min(existing.SelectedQuantity+qty, line.AvailableQuantity)
		c.UpdatedAt = now
		return *existing, nil
	}
	line.SelectedQuantity = min(qty, line.AvailableQuantity)
	c.Items = append(c.Items, line)
	c.UpdatedAt = now
	return line, nil
}

// UpdateQuantity clamps qty to the available stock. A line at zero is removed.
func (c *Cart) UpdateQuantity(itemID string, qty int, now time.Time) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	idx := c.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	qty = min(qty, c.Items[idx].AvailableQuantity)
	if qty == 0 {
		c.removeAt(idx)
	} else {
		c.Items[idx].SelectedQuantity = qty
	}
	c.UpdatedAt = now
	return nil
}

// Remove deletes a line.
func (c *Cart) Remove(itemID string, now time.Time) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.removeAt(idx)
	c.UpdatedAt = now
	return nil
}

// Clear drops every line.
func (c *Cart) Clear(now time.Time) {
	c.Items = []Item{}
	c.UpdatedAt = now
}

// Clone returns a copy that shares no slices with c.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = append([]Item{}, c.Items...)
	return &clone
}

func (c *Cart) indexOf(itemID string) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}
