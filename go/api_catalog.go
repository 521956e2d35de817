package marketplaceserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

const defaultSuggestionLimit = 8

// ProductAPI serves the consumer catalog and favorites.
type ProductAPI struct {
	catalog catalogports.Service
}

func NewProductAPI(catalog catalogports.Service) ProductAPI {
	return ProductAPI{catalog: catalog}
}

// Get /api/products
// Filter, sort and page the catalog
func (api *ProductAPI) ListProducts(c *gin.Context) {
	var query ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	viewer := catalogtypes.Viewer{UserID: principal(c).UserID, Location: query.LocationQuery.toDomain()}
	page, err := api.catalog.ListProducts(c.Request.Context(), query.toFilter(), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductPage(page))
}

// Get /api/products/:id
func (api *ProductAPI) GetProduct(c *gin.Context) {
	var location LocationQuery
	if err := c.ShouldBindQuery(&location); err != nil {
		respondBadRequest(c, err)
		return
	}
	viewer := catalogtypes.Viewer{UserID: principal(c).UserID, Location: location.toDomain()}
	product, err := api.catalog.GetProduct(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductView(product.Entity))
}

// Get /api/products/suggestions
// Search-as-you-type over products, categories and markets
func (api *ProductAPI) Suggestions(c *gin.Context) {
	limit := defaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			problems.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	suggestions, err := api.catalog.Suggestions(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSuggestions(suggestions))
}

// Post /api/products/:id/favorite
// Toggle the product in the caller's favorites
func (api *ProductAPI) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	favorite, err := api.catalog.ToggleFavorite(c.Request.Context(), principal(c).UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FavoriteResponse{ProductId: id, IsFavorite: favorite})
}

// Get /api/favorites
func (api *ProductAPI) ListFavorites(c *gin.Context) {
	var location LocationQuery
	if err := c.ShouldBindQuery(&location); err != nil {
		respondBadRequest(c, err)
		return
	}
	favorites, err := api.catalog.ListFavorites(c.Request.Context(), catalogtypes.Viewer{
		UserID:   principal(c).UserID,
		Location: location.toDomain(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductViews(favorites))
}

// MarketAPI serves partner markets.
type MarketAPI struct {
	catalog catalogports.Service
}

func NewMarketAPI(catalog catalogports.Service) MarketAPI {
	return MarketAPI{catalog: catalog}
}

// Get /api/markets
// Markets nearest first
func (api *MarketAPI) ListMarkets(c *gin.Context) {
	var location LocationQuery
	if err := c.ShouldBindQuery(&location); err != nil {
		respondBadRequest(c, err)
		return
	}
	views, err := api.catalog.ListMarkets(c.Request.Context(), location.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]Market, 0, len(views))
	for _, v := range views {
		out = append(out, fromMarketView(v))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/markets/:id
func (api *MarketAPI) GetMarket(c *gin.Context) {
	var location LocationQuery
	if err := c.ShouldBindQuery(&location); err != nil {
		respondBadRequest(c, err)
		return
	}
	view, err := api.catalog.GetMarket(c.Request.Context(), c.Param("id"), location.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromMarketView(*view))
}
