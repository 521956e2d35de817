package marketplaceserver

import (
	"time"

	insightsdomain "github.com/levaja/marketplace-api/internal/domains/insights/domain"
	notificationsdomain "github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	promotionstypes "github.com/levaja/marketplace-api/internal/domains/promotions/application/types"
	promotionsdomain "github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	sectorstypes "github.com/levaja/marketplace-api/internal/domains/sectors/application/types"
	sectorsdomain "github.com/levaja/marketplace-api/internal/domains/sectors/domain"
	wastagetypes "github.com/levaja/marketplace-api/internal/domains/wastage/application/types"
	wastagedomain "github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

type Sector struct {
	Id                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	ManagerId         string    `json:"managerId,omitempty"`
	Employees         []string  `json:"employees"`
	ProductCategories []string  `json:"productCategories"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type SectorRequest struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	ManagerId         *string   `json:"managerId"`
	Employees         *[]string `json:"employees"`
	ProductCategories *[]string `json:"productCategories"`
}

type Effectiveness struct {
	SalesIncrease  float64 `json:"salesIncrease"`
	ProductsSold   int     `json:"productsSold"`
	Revenue        float64 `json:"revenue"`
	WasteReduction float64 `json:"wasteReduction"`
}

type Promotion struct {
	Id                 string         `json:"id"`
	ProductId          string         `json:"productId"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	DiscountPercentage int            `json:"discountPercentage"`
	StartDate          time.Time      `json:"startDate"`
	EndDate            time.Time      `json:"endDate"`
	IsActive           bool           `json:"isActive"`
	Reason             string         `json:"reason"`
	Effectiveness      *Effectiveness `json:"effectiveness,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type PromotionRequest struct {
	ProductId          *string        `json:"productId"`
	Title              *string        `json:"title"`
	Description        *string        `json:"description"`
	DiscountPercentage *int           `json:"discountPercentage"`
	StartDate          *time.Time     `json:"startDate"`
	EndDate            *time.Time     `json:"endDate"`
	IsActive           *bool          `json:"isActive"`
	Reason             *string        `json:"reason"`
	Effectiveness      *Effectiveness `json:"effectiveness"`
}

type WastageRecord struct {
	Id          string    `json:"id"`
	ProductId   string    `json:"productId"`
	ProductName string    `json:"productName"`
	SectorId    string    `json:"sectorId,omitempty"`
	Category    string    `json:"category,omitempty"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Cost        float64   `json:"cost"`
	ReportedBy  string    `json:"reportedBy"`
	ReportedAt  time.Time `json:"reportedAt"`
}

type WastageRequest struct {
	ProductId string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Reason    string   `json:"reason"`
	Cost      *float64 `json:"cost"`
}

// RangeQuery filters reports by inclusive RFC 3339 bounds and scope.
type RangeQuery struct {
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	SectorId string     `form:"sectorId"`
	Category string     `form:"category"`
	Reason   string     `form:"reason"`
}

type ReasonTotal struct {
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

type WastageReport struct {
	Records       []WastageRecord        `json:"records"`
	TotalQuantity int                    `json:"totalQuantity"`
	TotalCost     float64                `json:"totalCost"`
	ByReason      map[string]ReasonTotal `json:"byReason"`
}

type Notification struct {
	Id        string    `json:"id"`
	UserId    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	ActionUrl string    `json:"actionUrl,omitempty"`
	ProductId string    `json:"productId,omitempty"`
	MarketId  string    `json:"marketId,omitempty"`
}

type NotificationList struct {
	Data        []Notification `json:"data"`
	UnreadCount int            `json:"unreadCount"`
}

type TopProduct struct {
	ProductId   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitsSold   int     `json:"unitsSold"`
	Revenue     float64 `json:"revenue"`
}

type Activity struct {
	Id          string            `json:"id"`
	UserId      string            `json:"userId"`
	Action      string            `json:"action"`
	Description string            `json:"description"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type DashboardMetrics struct {
	TotalProducts      int          `json:"totalProducts"`
	NearExpiryProducts int          `json:"nearExpiryProducts"`
	LowStockProducts   int          `json:"lowStockProducts"`
	ActivePromotions   int          `json:"activePromotions"`
	MonthlyRevenue     float64      `json:"monthlyRevenue"`
	WastageValue       float64      `json:"wastageValue"`
	TopSellingProducts []TopProduct `json:"topSellingProducts"`
	RecentActivity     []Activity   `json:"recentActivity"`
}

type ExpiryAlert struct {
	ProductId    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	ExpiryDate   time.Time `json:"expiryDate"`
	DaysToExpiry int       `json:"daysToExpiry"`
	Quantity     int       `json:"quantity"`
	SectorId     string    `json:"sectorId,omitempty"`
	Priority     string    `json:"priority"`
}

type SalesReport struct {
	Period           string       `json:"period"`
	TotalSales       int          `json:"totalSales"`
	TotalRevenue     float64      `json:"totalRevenue"`
	PromotionalSales int          `json:"promotionalSales"`
	TopProducts      []TopProduct `json:"topProducts"`
}

func fromSector(s *sectorsdomain.Sector) Sector {
	return Sector{
		Id:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		ManagerId:         s.ManagerID,
		Employees:         nonNil(s.EmployeeIDs),
		ProductCategories: nonNil(s.ProductCategories),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (r SectorRequest) toInput(id string) sectorstypes.SectorInput {
	return sectorstypes.SectorInput{
		ID:                id,
		Name:              r.Name,
		Description:       r.Description,
		ManagerID:         r.ManagerId,
		EmployeeIDs:       r.Employees,
		ProductCategories: r.ProductCategories,
	}
}

func fromPromotion(p *promotionsdomain.Promotion) Promotion {
	out := Promotion{
		Id:                 p.ID,
		ProductId:          p.ProductID,
		Title:              p.Title,
		Description:        p.Description,
		DiscountPercentage: p.DiscountPercentage,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		IsActive:           p.IsActive,
		Reason:             string(p.Reason),
		CreatedAt:          p.CreatedAt,
	}
	if e := p.Effectiveness; e != nil {
		out.Effectiveness = &Effectiveness{
			SalesIncrease:  e.SalesIncrease,
			ProductsSold:   e.ProductsSold,
			Revenue:        money.ToFloat(e.Revenue),
			WasteReduction: e.WasteReduction,
		}
	}
	return out
}

func fromPromotions(list []*promotionsdomain.Promotion) []Promotion {
	out := make([]Promotion, 0, len(list))
	for _, p := range list {
		out = append(out, fromPromotion(p))
	}
	return out
}

func (r PromotionRequest) toInput(id string) promotionstypes.PromotionInput {
	input := promotionstypes.PromotionInput{
		ID:                 id,
		ProductID:          r.ProductId,
		Title:              r.Title,
		Description:        r.Description,
		DiscountPercentage: r.DiscountPercentage,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		Reason:             r.Reason,
		IsActive:           r.IsActive,
	}
	if e := r.Effectiveness; e != nil {
		input.Effectiveness = &promotionsdomain.Effectiveness{
			SalesIncrease:  e.SalesIncrease,
			ProductsSold:   e.ProductsSold,
			Revenue:        money.FromFloat(e.Revenue),
			WasteReduction: e.WasteReduction,
		}
	}
	return input
}

func fromWastage(r *wastagedomain.Record) WastageRecord {
	return WastageRecord{
		Id:          r.ID,
		ProductId:   r.ProductID,
		ProductName: r.ProductName,
		SectorId:    r.SectorID,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Reason:      string(r.Reason),
		Cost:        money.ToFloat(r.Cost),
		ReportedBy:  r.ReportedBy,
		ReportedAt:  r.ReportedAt,
	}
}

func fromWastageRecords(list []*wastagedomain.Record) []WastageRecord {
	out := make([]WastageRecord, 0, len(list))
	for _, r := range list {
		out = append(out, fromWastage(r))
	}
	return out
}

func fromWastageReport(r wastagedomain.Report) WastageReport {
	byReason := make(map[string]ReasonTotal, len(r.ByReason))
	for reason, total := range r.ByReason {
		byReason[string(reason)] = ReasonTotal{Quantity: total.Quantity, Cost: money.ToFloat(total.Cost)}
	}
	return WastageReport{
		Records:       fromWastageRecords(r.Records),
		TotalQuantity: r.TotalQuantity,
		TotalCost:     money.ToFloat(r.TotalCost),
		ByReason:      byReason,
	}
}

func (r WastageRequest) toInput() wastagetypes.RecordInput {
	input := wastagetypes.RecordInput{ProductID: r.ProductId, Quantity: r.Quantity, Reason: r.Reason}
	if r.Cost != nil {
		cost := money.FromFloat(*r.Cost)
		input.Cost = &cost
	}
	return input
}

func (q RangeQuery) wastageFilter() wastagedomain.Filter {
	return wastagedomain.Filter{From: q.From, To: q.To, SectorID: q.SectorId, Reason: wastagedomain.Reason(q.Reason)}
}

func (q RangeQuery) reportFilter() insightsdomain.ReportFilter {
	return insightsdomain.ReportFilter{From: q.From, To: q.To, SectorID: q.SectorId, Category: q.Category}
}

func fromNotification(n *notificationsdomain.Notification) Notification {
	return Notification{
		Id:        n.ID,
		UserId:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		ActionUrl: n.ActionURL,
		ProductId: n.ProductID,
		MarketId:  n.MarketID,
	}
}

func fromNotifications(list []*notificationsdomain.Notification, unread int) NotificationList {
	data := make([]Notification, 0, len(list))
	for _, n := range list {
		data = append(data, fromNotification(n))
	}
	return NotificationList{Data: data, UnreadCount: unread}
}

func fromTopProducts(list []insightsdomain.TopProduct) []TopProduct {
	out := make([]TopProduct, 0, len(list))
	for _, p := range list {
		out = append(out, TopProduct{
			ProductId:   p.ProductID,
			ProductName: p.ProductName,
			UnitsSold:   p.UnitsSold,
			Revenue:     money.ToFloat(p.Revenue),
		})
	}
	return out
}

func fromActivity(list []insightsdomain.ActivityEntry) []Activity {
	out := make([]Activity, 0, len(list))
	for _, a := range list {
		out = append(out, Activity{
			Id:          a.ID,
			UserId:      a.UserID,
			Action:      a.Action,
			Description: a.Description,
			Timestamp:   a.Timestamp,
			Metadata:    a.Metadata,
		})
	}
	return out
}

func fromDashboard(m insightsdomain.DashboardMetrics) DashboardMetrics {
	return DashboardMetrics{
		TotalProducts:      m.TotalProducts,
		NearExpiryProducts: m.NearExpiryProducts,
		LowStockProducts:   m.LowStockProducts,
		ActivePromotions:   m.ActivePromotions,
		MonthlyRevenue:     money.ToFloat(m.MonthlyRevenue),
		WastageValue:       money.ToFloat(m.WastageValue),
		TopSellingProducts: fromTopProducts(m.TopSellingProducts),
		RecentActivity:     fromActivity(m.RecentActivity),
	}
}

func fromExpiryAlerts(list []insightsdomain.ExpiryAlert) []ExpiryAlert {
	out := make([]ExpiryAlert, 0, len(list))
	for _, a := range list {
		out = append(out, ExpiryAlert{
			ProductId:    a.ProductID,
			ProductName:  a.ProductName,
			ExpiryDate:   a.ExpiryDate,
			DaysToExpiry: a.DaysToExpiry,
			Quantity:     a.Quantity,
			SectorId:     a.SectorID,
			Priority:     string(a.Priority),
		})
	}
	return out
}

func fromSalesReport(r insightsdomain.SalesReport) SalesReport {
	return SalesReport{
		Period:           r.Period,
		TotalSales:       r.TotalSales,
		TotalRevenue:     money.ToFloat(r.TotalRevenue),
		PromotionalSales: r.PromotionalSales,
		TopProducts:      fromTopProducts(r.TopProducts),
	}
}
