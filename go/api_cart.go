package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartports "github.com/levaja/marketplace-api/internal/domains/cart/ports"
)

// CartAPI serves the caller's server-side cart.
type CartAPI struct {
	carts cartports.Service
}

func NewCartAPI(carts cartports.Service) CartAPI {
	return CartAPI{carts: carts}
}

// Get /api/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, err := api.carts.Get(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCart(cart))
}

// Post /api/cart/items
// Add units of a product, merging with an existing line
func (api *CartAPI) AddItem(c *gin.Context) {
	payload := AddCartItemRequest{Quantity: 1}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	cart, err := api.carts.AddItem(c.Request.Context(), principal(c).UserID, payload.ProductId, payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCart(cart))
}

// Patch /api/cart/items/:itemId
// Set the selected quantity; zero removes the line
func (api *CartAPI) UpdateItem(c *gin.Context) {
	var payload CartQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	cart, err := api.carts.UpdateQuantity(c.Request.Context(), principal(c).UserID, c.Param("itemId"), payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCart(cart))
}

// Delete /api/cart/items/:itemId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	cart, err := api.carts.RemoveItem(c.Request.Context(), principal(c).UserID, c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCart(cart))
}

// Delete /api/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	cart, err := api.carts.Clear(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCart(cart))
}
