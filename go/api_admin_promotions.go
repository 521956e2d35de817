package marketplaceserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	promotionsdomain "github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	promotionsports "github.com/levaja/marketplace-api/internal/domains/promotions/ports"
)

type PromotionAPI struct {
	promotions promotionsports.Service
	audit      *AuditTrail
}

func NewPromotionAPI(promotions promotionsports.Service, audit *AuditTrail) PromotionAPI {
	return PromotionAPI{promotions: promotions, audit: audit}
}

// Get /api/admin/promotions
func (api *PromotionAPI) ListPromotions(c *gin.Context) {
	list, err := api.promotions.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromPromotions(list))
}

// Get /api/admin/promotions/:id
func (api *PromotionAPI) GetPromotion(c *gin.Context) {
	promotion, err := api.promotions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromPromotion(promotion))
}

// Post /api/admin/promotions
// Created promotions are active unless isActive is false
func (api *PromotionAPI) CreatePromotion(c *gin.Context) {
	var payload PromotionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	promotion, err := api.promotions.Create(c.Request.Context(), payload.toInput(""))
	if !respondPartial(c, promotion != nil, err) {
		return
	}
	api.audit.record(c, "promotion.created", "Created promotion "+promotion.Title,
		map[string]string{"promotionId": promotion.ID, "productId": promotion.ProductID})
	c.JSON(http.StatusCreated, fromPromotion(promotion))
}

// Put /api/admin/promotions/:id
func (api *PromotionAPI) UpdatePromotion(c *gin.Context) {
	var payload PromotionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	promotion, err := api.promotions.Update(c.Request.Context(), payload.toInput(c.Param("id")))
	if !respondPartial(c, promotion != nil, err) {
		return
	}
	api.audit.record(c, "promotion.updated", "Updated promotion "+promotion.Title, map[string]string{"promotionId": promotion.ID})
	c.JSON(http.StatusOK, fromPromotion(promotion))
}

// Delete /api/admin/promotions/:id
func (api *PromotionAPI) DeletePromotion(c *gin.Context) {
	id := c.Param("id")
	if err := api.promotions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "promotion.deleted", "Deleted promotion "+id, map[string]string{"promotionId": id})
	c.Status(http.StatusNoContent)
}

// Post /api/admin/promotions/:id/activate
func (api *PromotionAPI) ActivatePromotion(c *gin.Context) {
	api.toggle(c, "promotion.activated", api.promotions.Activate)
}

// Post /api/admin/promotions/:id/deactivate
func (api *PromotionAPI) DeactivatePromotion(c *gin.Context) {
	api.toggle(c, "promotion.deactivated", api.promotions.Deactivate)
}

func (api *PromotionAPI) toggle(c *gin.Context, action string, apply func(context.Context, string) (*promotionsdomain.Promotion, error)) {
	promotion, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, action, promotion.Title, map[string]string{"promotionId": promotion.ID})
	c.JSON(http.StatusOK, fromPromotion(promotion))
}

// Post /api/admin/promotions/suggestions
// Propose promotions for near-expiry and low-stock products without saving them
func (api *PromotionAPI) GenerateSuggestions(c *gin.Context) {
	suggestions, err := api.promotions.GenerateSuggestions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromPromotions(suggestions))
}
