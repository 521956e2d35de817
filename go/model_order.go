package marketplaceserver

import (
	"time"

	cartdomain "github.com/levaja/marketplace-api/internal/domains/cart/domain"
	orderstypes "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	ordersdomain "github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

type CartItem struct {
	Id                string  `json:"id"`
	ProductId         string  `json:"productId"`
	ProductName       string  `json:"productName"`
	Image             string  `json:"image,omitempty"`
	MarketId          string  `json:"marketId"`
	MarketName        string  `json:"marketName"`
	Price             float64 `json:"price"`
	OriginalPrice     float64 `json:"originalPrice"`
	AvailableQuantity int     `json:"availableQuantity"`
	SelectedQuantity  int     `json:"selectedQuantity"`
	Subtotal          float64 `json:"subtotal"`
}

// Cart carries the totals derived from its items.
type Cart struct {
	Id            string     `json:"id"`
	UserId        string     `json:"userId"`
	Items         []CartItem `json:"items"`
	Total         float64    `json:"total"`
	OriginalTotal float64    `json:"originalTotal"`
	Savings       float64    `json:"savings"`
	ItemCount     int        `json:"itemCount"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type AddCartItemRequest struct {
	ProductId string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
}

type CheckoutRequest struct {
	DeliveryType    string   `json:"deliveryType"`
	DeliveryAddress *Address `json:"deliveryAddress"`
	PaymentMethod   string   `json:"paymentMethod"`
	Notes           string   `json:"notes"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderItem struct {
	ProductId     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Image         string  `json:"image,omitempty"`
	MarketId      string  `json:"marketId"`
	MarketName    string  `json:"marketName"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Quantity      int     `json:"quantity"`
}

type SustainabilityImpact struct {
	FoodWastePrevented float64 `json:"foodWastePrevented"`
	Co2Saved           float64 `json:"co2Saved"`
	WaterSaved         float64 `json:"waterSaved"`
	MoneySaved         float64 `json:"moneySaved"`
	ItemsRescued       int     `json:"itemsRescued"`
}

type Order struct {
	Id                   string               `json:"id"`
	UserId               string               `json:"userId"`
	Items                []OrderItem          `json:"items"`
	Total                float64              `json:"total"`
	OriginalTotal        float64              `json:"originalTotal"`
	Savings              float64              `json:"savings"`
	ItemCount            int                  `json:"itemCount"`
	Status               string               `json:"status"`
	DeliveryType         string               `json:"deliveryType"`
	DeliveryAddress      *Address             `json:"deliveryAddress,omitempty"`
	MarketId             string               `json:"marketId"`
	MarketName           string               `json:"marketName"`
	PaymentMethod        string               `json:"paymentMethod"`
	Notes                string               `json:"notes,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
	EstimatedDelivery    time.Time            `json:"estimatedDelivery"`
	ActualDelivery       *time.Time           `json:"actualDelivery,omitempty"`
	SustainabilityImpact SustainabilityImpact `json:"sustainabilityImpact"`
}

type Badge struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
	Category    string    `json:"category"`
}

type SustainabilityStats struct {
	TotalImpact          SustainabilityImpact `json:"totalImpact"`
	MonthlyImpact        SustainabilityImpact `json:"monthlyImpact"`
	WeeklyImpact         SustainabilityImpact `json:"weeklyImpact"`
	Badges               []Badge              `json:"badges"`
	Level                int                  `json:"level"`
	NextLevelRequirement float64              `json:"nextLevelRequirement"`
	GlobalRanking        int                  `json:"globalRanking"`
}

func fromCart(c *cartdomain.Cart) Cart {
	totals := c.Totals()
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItem{
			Id:                item.ID,
			ProductId:         item.ProductID,
			ProductName:       item.ProductName,
			Image:             item.Image,
			MarketId:          item.MarketID,
			MarketName:        item.MarketName,
			Price:             money.ToFloat(item.UnitPrice),
			OriginalPrice:     money.ToFloat(item.OriginalPrice),
			AvailableQuantity: item.AvailableQuantity,
			SelectedQuantity:  item.SelectedQuantity,
			Subtotal:          money.ToFloat(item.Subtotal()),
		})
	}
	return Cart{
		Id:            c.ID,
		UserId:        c.UserID,
		Items:         items,
		Total:         money.ToFloat(totals.Total),
		OriginalTotal: money.ToFloat(totals.OriginalTotal),
		Savings:       money.ToFloat(totals.Savings),
		ItemCount:     totals.ItemCount,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r CheckoutRequest) toInput(userID, idempotencyKey string) orderstypes.CheckoutInput {
	input := orderstypes.CheckoutInput{
		UserID:         userID,
		DeliveryType:   r.DeliveryType,
		PaymentMethod:  r.PaymentMethod,
		Notes:          r.Notes,
		IdempotencyKey: idempotencyKey,
	}
	if a := r.DeliveryAddress; a != nil {
		input.DeliveryAddress = &ordersdomain.Address{
			Street:       a.Street,
			Number:       a.Number,
			Complement:   a.Complement,
			Neighborhood: a.Neighborhood,
			City:         a.City,
			State:        a.State,
			ZipCode:      a.ZipCode,
		}
	}
	return input
}

func fromImpact(i ordersdomain.SustainabilityImpact) SustainabilityImpact {
	return SustainabilityImpact{
		FoodWastePrevented: money.ToFloat(i.FoodWastePreventedKg),
		Co2Saved:           money.ToFloat(i.CO2SavedKg),
		WaterSaved:         money.ToFloat(i.WaterSavedLiters),
		MoneySaved:         money.ToFloat(i.MoneySaved),
		ItemsRescued:       i.ItemsRescued,
	}
}

func fromOrder(o *ordersdomain.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ProductId:     item.ProductID,
			ProductName:   item.ProductName,
			Image:         item.Image,
			MarketId:      item.MarketID,
			MarketName:    item.MarketName,
			Price:         money.ToFloat(item.UnitPrice),
			OriginalPrice: money.ToFloat(item.OriginalPrice),
			Quantity:      item.Quantity,
		})
	}
	out := Order{
		Id:                   o.ID,
		UserId:               o.UserID,
		Items:                items,
		Total:                money.ToFloat(o.Total),
		OriginalTotal:        money.ToFloat(o.OriginalTotal),
		Savings:              money.ToFloat(o.Savings),
		ItemCount:            o.ItemCount,
		Status:               string(o.Status),
		DeliveryType:         string(o.DeliveryType),
		MarketId:             o.MarketID,
		MarketName:           o.MarketName,
		PaymentMethod:        string(o.PaymentMethod),
		Notes:                o.Notes,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
		EstimatedDelivery:    o.EstimatedDelivery,
		ActualDelivery:       o.ActualDelivery,
		SustainabilityImpact: fromImpact(o.SustainabilityImpact),
	}
	if a := o.DeliveryAddress; a != nil {
		out.DeliveryAddress = &Address{
			Street:       a.Street,
			Number:       a.Number,
			Complement:   a.Complement,
			Neighborhood: a.Neighborhood,
			City:         a.City,
			State:        a.State,
			ZipCode:      a.ZipCode,
		}
	}
	return out
}

func fromOrders(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, fromOrder(o))
	}
	return out
}

func fromStats(s ordersdomain.SustainabilityStats) SustainabilityStats {
	badges := make([]Badge, 0, len(s.Badges))
	for _, b := range s.Badges {
		badges = append(badges, Badge{
			Id:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			EarnedAt:    b.EarnedAt,
			Category:    string(b.Category),
		})
	}
	return SustainabilityStats{
		TotalImpact:          fromImpact(s.TotalImpact),
		MonthlyImpact:        fromImpact(s.MonthlyImpact),
		WeeklyImpact:         fromImpact(s.WeeklyImpact),
		Badges:               badges,
		Level:                s.Level,
		NextLevelRequirement: money.ToFloat(s.NextLevelRequirement),
		GlobalRanking:        s.GlobalRanking,
	}
}
