package marketplaceserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

// AdminProductAPI is the back-office product registry and stock control.
type AdminProductAPI struct {
	catalog catalogports.Service
	audit   *AuditTrail
}

func NewAdminProductAPI(catalog catalogports.Service, audit *AuditTrail) AdminProductAPI {
	return AdminProductAPI{catalog: catalog, audit: audit}
}

// Get /api/admin/products
func (api *AdminProductAPI) ListProducts(c *gin.Context) {
	var query ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	page, err := api.catalog.ListProducts(c.Request.Context(), query.toFilter(), catalogtypes.Viewer{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductPage(page))
}

// Get /api/admin/products/:id
func (api *AdminProductAPI) GetProduct(c *gin.Context) {
	product, err := api.catalog.GetProduct(c.Request.Context(), c.Param("id"), catalogtypes.Viewer{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductView(product.Entity))
}

// Get /api/admin/products/barcode/:barcode
// Resolve a scanned EAN-13 code
func (api *AdminProductAPI) FindByBarcode(c *gin.Context) {
	product, err := api.catalog.FindByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductView(product.Entity))
}

// Post /api/admin/products
func (api *AdminProductAPI) CreateProduct(c *gin.Context) {
	var payload ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.catalog.CreateProduct(c.Request.Context(), payload.toInput(""))
	if err != nil {
		respondError(c, err)
		return
	}
	product := created.Entity.Product
	api.audit.record(c, "product.created", "Registered product "+product.Name, map[string]string{"productId": product.ID})
	c.JSON(http.StatusCreated, fromProductView(created.Entity))
}

// Put /api/admin/products/:id
// Partial update; omitted fields are kept
func (api *AdminProductAPI) UpdateProduct(c *gin.Context) {
	var payload ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.catalog.UpdateProduct(c.Request.Context(), payload.toInput(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	product := updated.Entity.Product
	api.audit.record(c, "product.updated", "Updated product "+product.Name, map[string]string{"productId": product.ID})
	c.JSON(http.StatusOK, fromProductView(updated.Entity))
}

// Delete /api/admin/products/:id
func (api *AdminProductAPI) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := api.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "product.deleted", "Removed product "+id, map[string]string{"productId": id})
	c.Status(http.StatusNoContent)
}

// Post /api/admin/products/:id/stock
// Apply a signed stock delta
func (api *AdminProductAPI) AdjustStock(c *gin.Context) {
	var payload StockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	adjusted, err := api.catalog.AdjustStock(c.Request.Context(), c.Param("id"), payload.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	product := adjusted.Entity.Product
	api.audit.record(c, "stock.adjusted",
		fmt.Sprintf("Adjusted stock of %s by %+d", product.Name, payload.Delta),
		map[string]string{"productId": product.ID, "quantity": fmt.Sprint(product.Quantity)})
	c.JSON(http.StatusOK, fromProductView(adjusted.Entity))
}
