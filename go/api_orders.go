package marketplaceserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	orderstypes "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	ordersdomain "github.com/levaja/marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets clients retry checkout without placing the order twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires checkout and the buyer's order history.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
	now       func() time.Time
}

func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows, now: time.Now}
}

// Post /api/orders
// Check out the caller's cart
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	order, err := api.checkout(c.Request.Context(), payload.toInput(principal(c).UserID, key))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromOrder(order))
}

func (api *OrderAPI) checkout(ctx context.Context, input orderstypes.CheckoutInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.Checkout(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /api/orders
// The caller's orders, newest first
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrders(orders))
}

// Get /api/orders/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), orderstypes.OrderIdentifier{
		OrderID: c.Param("id"),
		UserID:  principal(c).UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Post /api/orders/:id/cancel
// Cancel an order that is not yet being prepared
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	order, err := api.service.CancelOrder(c.Request.Context(), orderstypes.OrderIdentifier{
		OrderID: c.Param("id"),
		UserID:  principal(c).UserID,
	})
	if !respondPartial(c, order != nil, err) {
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Get /api/sustainability/stats
func (api *OrderAPI) SustainabilityStats(c *gin.Context) {
	stats, err := api.service.SustainabilityStats(c.Request.Context(), principal(c).UserID, api.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromStats(stats))
}

// respondPartial handles a mutation that may have been saved before a follow-up step failed.
// A saved result is still returned; the follow-up error is attached to the request for logging.
func respondPartial(c *gin.Context, saved bool, err error) bool {
	if err == nil {
		return true
	}
	if saved {
		_ = c.Error(err)
		return true
	}
	respondError(c, err)
	return false
}
