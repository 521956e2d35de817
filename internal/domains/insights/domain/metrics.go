package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TopProductsLimit caps the best-seller lists.
	TopProductsLimit = 5
	// RecentActivityLimit caps the dashboard activity feed.
	RecentActivityLimit = 10
	// AlertWindowDays is the expiry look-ahead for alerts.
	AlertWindowDays = 7
)

var ErrInvalidDateRange = errors.New("report start must not be after its end")

// Priority ranks an expiry alert.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func PriorityFor(days int) Priority {
	switch {
	case days <= 1:
		return PriorityHigh
	case days <= 3:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

type ExpiryAlert struct {
	ProductID    string
	ProductName  string
	ExpiryDate   time.Time
	DaysToExpiry int
	Quantity     int
	SectorID     string
	Priority     Priority
}

// ExpiryAlerts lists products expiring within the alert window, soonest first.
func ExpiryAlerts(products []ProductFact, sectorID string) []ExpiryAlert {
	alerts := make([]ExpiryAlert, 0)
	for _, p := range products {
		if sectorID != "" && p.SectorID != sectorID {
			continue
		}
		if p.DaysToExpiry < 0 || p.DaysToExpiry > AlertWindowDays {
			continue
		}
		alerts = append(alerts, ExpiryAlert{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ExpiryDate:   p.ExpiryDate,
			DaysToExpiry: p.DaysToExpiry,
			Quantity:     p.Quantity,
			SectorID:     p.SectorID,
			Priority:     PriorityFor(p.DaysToExpiry),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysToExpiry == alerts[j].DaysToExpiry {
			return alerts[i].ProductID < alerts[j].ProductID
		}
		return alerts[i].DaysToExpiry < alerts[j].DaysToExpiry
	})
	return alerts
}

type TopProduct struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// TopSelling ranks products by units sold, then revenue, then id.
func TopSelling(lines []SaleLine, limit int) []TopProduct {
	byProduct := map[string]*TopProduct{}
	for _, l := range lines {
		top, ok := byProduct[l.ProductID]
		if !ok {
			top = &TopProduct{ProductID: l.ProductID, ProductName: l.ProductName}
			byProduct[l.ProductID] = top
		}
		top.UnitsSold += l.Quantity
		top.Revenue = top.Revenue.Add(l.Revenue())
	}
	ranked := make([]TopProduct, 0, len(byProduct))
	for _, top := range byProduct {
		ranked = append(ranked, *top)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.UnitsSold != b.UnitsSold {
			return a.UnitsSold > b.UnitsSold
		}
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.ProductID < b.ProductID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DashboardMetrics is the back-office landing summary.
type DashboardMetrics struct {
	TotalProducts      int
	NearExpiryProducts int
	LowStockProducts   int
	ActivePromotions   int
	MonthlyRevenue     decimal.Decimal
	WastageValue       decimal.Decimal
	TopSellingProducts []TopProduct
	RecentActivity     []ActivityEntry
}

// MonthBounds returns the first instant of now's calendar month and of the next one.
func MonthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// Within reports whether t is in [from, to).
func Within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// ReportFilter narrows a report; zero fields match everything. Both bounds are inclusive.
type ReportFilter struct {
	From     *time.Time
	To       *time.Time
	SectorID string
	Category string
}

func (f ReportFilter) Validate() error {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return ErrInvalidDateRange
	}
	return nil
}

func (f ReportFilter) inPeriod(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

// PeriodLabel renders the filter's date range for report headers.
func (f ReportFilter) PeriodLabel() string {
	const layout = "2006-01-02"
	switch {
	case f.From != nil && f.To != nil:
		return fmt.Sprintf("%s to %s", f.From.Format(layout), f.To.Format(layout))
	case f.From != nil:
		return "since " + f.From.Format(layout)
	case f.To != nil:
		return "until " + f.To.Format(layout)
	}
	return "all time"
}

type SalesReport struct {
	Period           string
	TotalSales       int
	TotalRevenue     decimal.Decimal
	PromotionalSales int
	TopProducts      []TopProduct
}

// BuildSalesReport totals sale lines matching the filter.
func BuildSalesReport(lines []SaleLine, products []ProductFact, filter ReportFilter) SalesReport {
	matched := filterSales(lines, products, filter)
	report := SalesReport{Period: filter.PeriodLabel()}
	for _, l := range matched {
		report.TotalSales += l.Quantity
		report.TotalRevenue = report.TotalRevenue.Add(l.Revenue())
		if l.Promotional() {
			report.PromotionalSales += l.Quantity
		}
	}
	report.TopProducts = TopSelling(matched, TopProductsLimit)
	return report
}

// SalesBreakdown ranks every product sold under the filter.
func SalesBreakdown(lines []SaleLine, products []ProductFact, filter ReportFilter) []TopProduct {
	return TopSelling(filterSales(lines, products, filter), 0)
}

// filterSales resolves sector and category through the product facts. Lines for
// unknown products only match when neither is filtered.
func filterSales(lines []SaleLine, products []ProductFact, filter ReportFilter) []SaleLine {
	index := make(map[string]ProductFact, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	matched := make([]SaleLine, 0, len(lines))
	for _, l := range lines {
		if !filter.inPeriod(l.SoldAt) {
			continue
		}
		if filter.SectorID != "" || filter.Category != "" {
			p, ok := index[l.ProductID]
			if !ok {
				continue
			}
			if filter.SectorID != "" && p.SectorID != filter.SectorID {
				continue
			}
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
		}
		matched = append(matched, l)
	}
	return matched
}
