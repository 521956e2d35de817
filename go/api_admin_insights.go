package marketplaceserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	insightstypes "github.com/levaja/marketplace-api/internal/domains/insights/application/types"
	insightsdomain "github.com/levaja/marketplace-api/internal/domains/insights/domain"
	insightsports "github.com/levaja/marketplace-api/internal/domains/insights/ports"
)

// InsightsAPI serves the back-office dashboard, alerts and reports.
type InsightsAPI struct {
	insights insightsports.Service
	audit    *AuditTrail
}

func NewInsightsAPI(insights insightsports.Service, audit *AuditTrail) InsightsAPI {
	return InsightsAPI{insights: insights, audit: audit}
}

// Get /api/admin/dashboard/metrics
func (api *InsightsAPI) DashboardMetrics(c *gin.Context) {
	metrics, err := api.insights.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDashboard(metrics))
}

// Get /api/admin/dashboard/expiry-alerts
// ?sectorId= narrows to one sector
func (api *InsightsAPI) ExpiryAlerts(c *gin.Context) {
	alerts, err := api.insights.ExpiryAlerts(c.Request.Context(), c.Query("sectorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromExpiryAlerts(alerts))
}

// Get /api/admin/reports/sales
func (api *InsightsAPI) SalesReport(c *gin.Context) {
	var query RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	report, err := api.insights.SalesReport(c.Request.Context(), query.reportFilter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSalesReport(report))
}

// Get /api/admin/reports/export
// ?report=sales|wastage&format=csv streams an attachment
func (api *InsightsAPI) ExportReport(c *gin.Context) {
	var query RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	export, err := api.insights.Export(c.Request.Context(), insightstypes.ExportRequest{
		Report: c.Query("report"),
		Format: c.Query("format"),
		Filter: query.reportFilter(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "report.exported", "Exported "+export.Filename, map[string]string{"report": c.Query("report")})
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Body)
}

// Get /api/admin/activity
// ?limit= defaults to the dashboard's window
func (api *InsightsAPI) RecentActivity(c *gin.Context) {
	limit := insightsdomain.RecentActivityLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			problems.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	entries, err := api.insights.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromActivity(entries))
}
