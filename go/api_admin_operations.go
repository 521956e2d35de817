package marketplaceserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	orderstypes "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	ordersports "github.com/levaja/marketplace-api/internal/domains/orders/ports"
	wastageports "github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

// AdminOrderAPI lets staff follow and advance orders.
type AdminOrderAPI struct {
	orders ordersports.Service
	audit  *AuditTrail
}

func NewAdminOrderAPI(orders ordersports.Service, audit *AuditTrail) AdminOrderAPI {
	return AdminOrderAPI{orders: orders, audit: audit}
}

// Get /api/admin/orders
// ?status= narrows to one lifecycle state
func (api *AdminOrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.orders.ListAllOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrders(orders))
}

// Patch /api/admin/orders/:id/status
func (api *AdminOrderAPI) UpdateStatus(c *gin.Context) {
	var payload OrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.orders.UpdateStatus(c.Request.Context(), orderstypes.StatusChange{
		OrderID: c.Param("id"),
		Status:  payload.Status,
	})
	if !respondPartial(c, order != nil, err) {
		return
	}
	api.audit.record(c, "order.status_changed",
		fmt.Sprintf("Order %s moved to %s", order.ID, order.Status),
		map[string]string{"orderId": order.ID, "status": string(order.Status)})
	c.JSON(http.StatusOK, fromOrder(order))
}

// WastageAPI records and reports stock write-offs.
type WastageAPI struct {
	wastage wastageports.Service
	audit   *AuditTrail
}

func NewWastageAPI(wastage wastageports.Service, audit *AuditTrail) WastageAPI {
	return WastageAPI{wastage: wastage, audit: audit}
}

// Get /api/admin/wastage
func (api *WastageAPI) ListWastage(c *gin.Context) {
	var query RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	records, err := api.wastage.List(c.Request.Context(), query.wastageFilter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromWastageRecords(records))
}

// Post /api/admin/wastage
// Write stock off; the product's quantity drops accordingly
func (api *WastageAPI) RecordWastage(c *gin.Context) {
	var payload WastageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	record, err := api.wastage.Record(c.Request.Context(), principal(c).UserID, payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "wastage.recorded",
		fmt.Sprintf("Wrote off %d x %s (%s)", record.Quantity, record.ProductName, record.Reason),
		map[string]string{"productId": record.ProductID, "recordId": record.ID})
	c.JSON(http.StatusCreated, fromWastage(record))
}

// Get /api/admin/reports/wastage
func (api *WastageAPI) WastageReport(c *gin.Context) {
	var query RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	report, err := api.wastage.Report(c.Request.Context(), query.wastageFilter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromWastageReport(report))
}
