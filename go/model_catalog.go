package marketplaceserver

import (
	"time"

	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
}

// Product is the consumer and back-office product shape, derived fields included.
type Product struct {
	Id                 string           `json:"id"`
	Name               string           `json:"name"`
	Barcode            string           `json:"barcode,omitempty"`
	Category           string           `json:"category"`
	Brand              string           `json:"brand,omitempty"`
	SectorId           string           `json:"sectorId,omitempty"`
	MarketId           string           `json:"marketId"`
	MarketName         string           `json:"marketName"`
	Price              float64          `json:"price"`
	OriginalPrice      float64          `json:"originalPrice"`
	DiscountPercentage int              `json:"discountPercentage"`
	Quantity           int              `json:"quantity"`
	MinQuantity        int              `json:"minQuantity"`
	ExpiryDate         time.Time        `json:"expiryDate"`
	EntryDate          time.Time        `json:"entryDate"`
	DaysToExpiry       int              `json:"daysToExpiry"`
	IsNearExpiry       bool             `json:"isNearExpiry"`
	Status             string           `json:"status"`
	Images             []string         `json:"images"`
	Description        string           `json:"description,omitempty"`
	NutritionalInfo    *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	Rating             float64          `json:"rating"`
	ReviewCount        int              `json:"reviewCount"`
	Tags               []string         `json:"tags"`
	Supplier           string           `json:"supplier,omitempty"`
	PromotionId        string           `json:"promotionId,omitempty"`
	MarketDistance     float64          `json:"marketDistance"`
	IsFavorite         bool             `json:"isFavorite"`
}

// ProductRequest is the admin create and partial update body.
type ProductRequest struct {
	Name            *string          `json:"name"`
	Barcode         *string          `json:"barcode"`
	Category        *string          `json:"category"`
	Brand           *string          `json:"brand"`
	SectorId        *string          `json:"sectorId"`
	MarketId        *string          `json:"marketId"`
	Price           *float64         `json:"price"`
	OriginalPrice   *float64         `json:"originalPrice"`
	Quantity        *int             `json:"quantity"`
	MinQuantity     *int             `json:"minQuantity"`
	ExpiryDate      *time.Time       `json:"expiryDate"`
	EntryDate       *time.Time       `json:"entryDate"`
	Images          *[]string        `json:"images"`
	Description     *string          `json:"description"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo"`
	Rating          *float64         `json:"rating"`
	ReviewCount     *int             `json:"reviewCount"`
	Tags            *[]string        `json:"tags"`
	Supplier        *string          `json:"supplier"`
}

type StockRequest struct {
	Delta int `json:"delta"`
}

// ProductQuery is the catalog listing query string.
type ProductQuery struct {
	Category       string   `form:"category"`
	Search         string   `form:"search"`
	MaxPrice       *float64 `form:"maxPrice"`
	MaxDistance    *float64 `form:"maxDistance"`
	MarketId       string   `form:"marketId"`
	SectorId       string   `form:"sectorId"`
	Status         string   `form:"status"`
	OnlyNearExpiry bool     `form:"onlyNearExpiry"`
	OnlyFavorites  bool     `form:"onlyFavorites"`
	SortBy         string   `form:"sortBy"`
	SortOrder      string   `form:"sortOrder"`
	Page           int      `form:"page"`
	Limit          int      `form:"limit"`
	LocationQuery
}

// LocationQuery is the caller's position. Both coordinates must be sent to count.
type LocationQuery struct {
	Lat *float64 `form:"lat"`
	Lng *float64 `form:"lng"`
}

type ProductPage struct {
	Data       []Product `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
	HasMore    bool      `json:"hasMore"`
}

type SearchSuggestion struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type FavoriteResponse struct {
	ProductId  string `json:"productId"`
	IsFavorite bool   `json:"isFavorite"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Market struct {
	Id                string   `json:"id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Location          Location `json:"location"`
	Distance          float64  `json:"distance"`
	Rating            float64  `json:"rating"`
	IsOpen            bool     `json:"isOpen"`
	OpeningHours      string   `json:"openingHours"`
	DeliveryAvailable bool     `json:"deliveryAvailable"`
	PickupAvailable   bool     `json:"pickupAvailable"`
	EstimatedDelivery int      `json:"estimatedDeliveryTime"`
	Phone             string   `json:"phone,omitempty"`
	Image             string   `json:"image,omitempty"`
}

func (q LocationQuery) toDomain() *catalogdomain.Location {
	if q.Lat == nil || q.Lng == nil {
		return nil
	}
	return &catalogdomain.Location{Lat: *q.Lat, Lng: *q.Lng}
}

func (q ProductQuery) toFilter() catalogdomain.ProductFilter {
	filter := catalogdomain.ProductFilter{
		Category:       q.Category,
		SearchTerm:     q.Search,
		MaxDistance:    q.MaxDistance,
		MarketID:       q.MarketId,
		SectorID:       q.SectorId,
		Status:         catalogdomain.Status(q.Status),
		OnlyNearExpiry: q.OnlyNearExpiry,
		OnlyFavorites:  q.OnlyFavorites,
		SortBy:         catalogdomain.SortField(q.SortBy),
		SortOrder:      catalogdomain.SortOrder(q.SortOrder),
		Page:           q.Page,
		Limit:          q.Limit,
	}
	if q.MaxPrice != nil {
		price := money.FromFloat(*q.MaxPrice)
		filter.MaxPrice = &price
	}
	return filter
}

func fromProductView(v catalogdomain.ProductView) Product {
	p := v.Product
	out := Product{
		Id:                 p.ID,
		Name:               p.Name,
		Barcode:            p.Barcode,
		Category:           p.Category,
		Brand:              p.Brand,
		SectorId:           p.SectorID,
		MarketId:           p.MarketID,
		MarketName:         p.MarketName,
		Price:              money.ToFloat(p.Price),
		OriginalPrice:      money.ToFloat(p.OriginalPrice),
		DiscountPercentage: v.DiscountPercentage,
		Quantity:           p.Quantity,
		MinQuantity:        p.MinQuantity,
		ExpiryDate:         p.ExpiryDate,
		EntryDate:          p.EntryDate,
		DaysToExpiry:       v.DaysToExpiry,
		IsNearExpiry:       v.IsNearExpiry,
		Status:             string(v.Status),
		Images:             nonNil(p.Images),
		Description:        p.Description,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		Tags:               nonNil(p.Tags),
		Supplier:           p.Supplier,
		PromotionId:        p.PromotionID,
		MarketDistance:     v.MarketDistance,
		IsFavorite:         v.IsFavorite,
	}
	if n := p.Nutrition; n != nil {
		out.NutritionalInfo = &NutritionalInfo{
			Calories: n.Calories, Protein: n.Protein, Carbs: n.Carbs,
			Fat: n.Fat, Fiber: n.Fiber, Sodium: n.Sodium,
		}
	}
	return out
}

func fromProductViews(views []catalogdomain.ProductView) []Product {
	out := make([]Product, 0, len(views))
	for _, v := range views {
		out = append(out, fromProductView(v))
	}
	return out
}

func fromProductPage(page catalogdomain.Page[catalogdomain.ProductView]) ProductPage {
	return ProductPage{
		Data:       fromProductViews(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		HasMore:    page.HasMore,
	}
}

func fromSuggestions(list []catalogdomain.SearchSuggestion) []SearchSuggestion {
	out := make([]SearchSuggestion, 0, len(list))
	for _, s := range list {
		out = append(out, SearchSuggestion{Type: string(s.Type), Text: s.Text, Count: s.Count})
	}
	return out
}

func fromMarketView(v catalogtypes.MarketView) Market {
	m := v.Market
	return Market{
		Id:                m.ID,
		Name:              m.Name,
		Address:           m.Address,
		Location:          Location{Lat: m.Location.Lat, Lng: m.Location.Lng},
		Distance:          v.DistanceKm,
		Rating:            m.Rating,
		IsOpen:            m.IsOpen,
		OpeningHours:      m.OpeningHours,
		DeliveryAvailable: m.DeliveryAvailable,
		PickupAvailable:   m.PickupAvailable,
		EstimatedDelivery: m.EstimatedDeliveryMinutes,
		Phone:             m.Phone,
		Image:             m.Image,
	}
}

func (r ProductRequest) toInput(id string) catalogtypes.ProductInput {
	input := catalogtypes.ProductInput{
		ID:          id,
		Name:        r.Name,
		Barcode:     r.Barcode,
		Category:    r.Category,
		Brand:       r.Brand,
		SectorID:    r.SectorId,
		MarketID:    r.MarketId,
		Quantity:    r.Quantity,
		MinQuantity: r.MinQuantity,
		ExpiryDate:  r.ExpiryDate,
		EntryDate:   r.EntryDate,
		Images:      r.Images,
		Description: r.Description,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		Tags:        r.Tags,
		Supplier:    r.Supplier,
	}
	if r.Price != nil {
		price := money.FromFloat(*r.Price)
		input.Price = &price
	}
	if r.OriginalPrice != nil {
		original := money.FromFloat(*r.OriginalPrice)
		input.OriginalPrice = &original
	}
	if n := r.NutritionalInfo; n != nil {
		input.Nutrition = &catalogdomain.NutritionalInfo{
			Calories: n.Calories, Protein: n.Protein, Carbs: n.Carbs,
			Fat: n.Fat, Fiber: n.Fiber, Sodium: n.Sodium,
		}
	}
	return input
}
