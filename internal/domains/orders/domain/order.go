package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// DeliveryType selects pickup at the market or home delivery.
type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "pickup"
	DeliveryDelivery DeliveryType = "delivery"
)

// PaymentMethod is recorded only; no capture happens.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentCash       PaymentMethod = "cash"
)

const (
	DeliveryLeadTime = 60 * time.Minute
	PickupLeadTime   = 30 * time.Minute
)

var (
	ErrEmptyOrderID          = errors.New("order id is required")
	ErrEmptyUserID           = errors.New("order owner is required")
	ErrNoItems               = errors.New("order must contain at least one item")
	ErrInvalidItemQuantity   = errors.New("order item quantity must be at least 1")
	ErrInvalidDeliveryType   = errors.New("delivery type must be pickup or delivery")
	ErrMissingAddress        = errors.New("delivery address is required for delivery orders")
	ErrInvalidPaymentMethod  = errors.New("payment method is invalid")
	ErrInvalidStatus         = errors.New("order status is invalid")
	ErrIllegalTransition     = errors.New("order status transition is not allowed")
	ErrCancellationForbidden = errors.New("order can no longer be cancelled")
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered},
}

// Item is a snapshot of a cart line at checkout.
type Item struct {
	ProductID     string
	ProductName   string
	Image         string
	MarketID      string
	MarketName    string
	UnitPrice     decimal.Decimal
	OriginalPrice decimal.Decimal
	Quantity      int
}

// Subtotal is unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return money.Mul(i.UnitPrice, i.Quantity)
}

// Address is a delivery destination.
type Address struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
}

func (a *Address) complete() bool {
	return a != nil && strings.TrimSpace(a.Street) != "" && strings.TrimSpace(a.City) != ""
}

// Order is a placed purchase.
type Order struct {
	ID                   string
	UserID               string
	Items                []Item
	Total                decimal.Decimal
	OriginalTotal        decimal.Decimal
	Savings              decimal.Decimal
	ItemCount            int
	Status               Status
	DeliveryType         DeliveryType
	DeliveryAddress      *Address
	MarketID             string
	MarketName           string
	PaymentMethod        PaymentMethod
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	EstimatedDelivery    time.Time
	ActualDelivery       *time.Time
	SustainabilityImpact SustainabilityImpact
}

// New builds a pending order from item snapshots and derives every total.
func New(id, userID string, items []Item, delivery DeliveryType, address *Address, payment PaymentMethod, notes string, now time.Time) (*Order, error) {
	o := &Order{
		ID:              id,
		UserID:          userID,
		Items:           append([]Item(nil), items...),
		Status:          StatusPending,
		DeliveryType:    delivery,
		DeliveryAddress: address,
		PaymentMethod:   payment,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if len(items) > 0 {
		o.MarketID = items[0].MarketID
		o.MarketName = items[0].MarketName
	}
	o.recalculate()
	if delivery == DeliveryDelivery {
		o.EstimatedDelivery = now.Add(DeliveryLeadTime)
	} else {
		o.EstimatedDelivery = now.Add(PickupLeadTime)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) recalculate() {
	o.Total, o.OriginalTotal, o.ItemCount = money.Zero, money.Zero, 0
	for _, item := range o.Items {
		o.Total = o.Total.Add(item.Subtotal())
		o.OriginalTotal = o.OriginalTotal.Add(money.Mul(item.OriginalPrice, item.Quantity))
		o.ItemCount += item.Quantity
	}
	o.Savings = o.OriginalTotal.Sub(o.Total)
	o.SustainabilityImpact = ImpactFor(o.ItemCount, o.Savings)
}

// Validate enforces the order invariants.
func (o *Order) Validate() error {
	if o.ID == "" {
		return ErrEmptyOrderID
	}
	if o.UserID == "" {
		return ErrEmptyUserID
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return ErrInvalidItemQuantity
		}
	}
	switch o.DeliveryType {
	case DeliveryPickup:
	case DeliveryDelivery:
		if !o.DeliveryAddress.complete() {
			return ErrMissingAddress
		}
	default:
		return ErrInvalidDeliveryType
	}
	if _, err := ParsePaymentMethod(string(o.PaymentMethod)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	return nil
}

// CanTransition reports whether the lifecycle allows moving to next.
func (o *Order) CanTransition(next Status) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the order along its lifecycle. Delivering stamps the actual delivery time.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if !o.CanTransition(next) {
		return ErrIllegalTransition
	}
	o.Status = next
	o.UpdatedAt = now
	if next == StatusDelivered {
		delivered := now
		o.ActualDelivery = &delivered
	}
	return nil
}

// CustomerCancel cancels on behalf of the buyer, allowed only before preparation starts.
func (o *Order) CustomerCancel(now time.Time) error {
	if o.Status != StatusPending && o.Status != StatusConfirmed {
		return ErrCancellationForbidden
	}
	return o.TransitionTo(StatusCancelled, now)
}

// IsCancelled reports whether the order was cancelled.
func (o *Order) IsCancelled() bool { return o.Status == StatusCancelled }

// Clone returns a copy sharing no mutable state with o.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]Item(nil), o.Items...)
	if o.DeliveryAddress != nil {
		addr := *o.DeliveryAddress
		clone.DeliveryAddress = &addr
	}
	if o.ActualDelivery != nil {
		at := *o.ActualDelivery
		clone.ActualDelivery = &at
	}
	return &clone
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.TrimSpace(raw)); s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// ParseDeliveryType validates a raw delivery type.
func ParseDeliveryType(raw string) (DeliveryType, error) {
	switch d := DeliveryType(strings.TrimSpace(raw)); d {
	case DeliveryPickup, DeliveryDelivery:
		return d, nil
	}
	return "", ErrInvalidDeliveryType
}

// ParsePaymentMethod validates a raw payment method.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch p := PaymentMethod(strings.TrimSpace(raw)); p {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentCash:
		return p, nil
	}
	return "", ErrInvalidPaymentMethod
}
