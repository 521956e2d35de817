package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Access is the least privileged caller admitted.
	Access Access
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	guard := handleFunctions.Guard
	if guard == nil {
		guard = NewGuard(nil)
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := []gin.HandlerFunc{route.HandlerFunc}
		if mw := guard.For(route.Access); mw != nil {
			chain = append([]gin.HandlerFunc{mw}, chain...)
		}
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	problems.Respond(c, problemNotImplemented)
}

// ApiHandleFunctions groups the handlers per API area.
type ApiHandleFunctions struct {
	Guard *Guard

	AuthAPI         AuthAPI
	ProductAPI      ProductAPI
	MarketAPI       MarketAPI
	CartAPI         CartAPI
	OrderAPI        OrderAPI
	NotificationAPI NotificationAPI

	AdminUserAPI    AdminUserAPI
	AdminProductAPI AdminProductAPI
	AdminOrderAPI   AdminOrderAPI
	SectorAPI       SectorAPI
	PromotionAPI    PromotionAPI
	WastageAPI      WastageAPI
	InsightsAPI     InsightsAPI
	SystemAPI       SystemAPI
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", AccessPublic, h.SystemAPI.Healthz},
		{"Metrics", http.MethodGet, "/metrics", AccessPublic, h.SystemAPI.Metrics},
		{"OpenAPISpec", http.MethodGet, "/openapi.yaml", AccessPublic, h.SystemAPI.OpenAPISpec},
		{"Docs", http.MethodGet, "/docs/*any", AccessPublic, h.SystemAPI.Docs},

		{"Register", http.MethodPost, "/api/auth/register", AccessPublic, h.AuthAPI.Register},
		{"Login", http.MethodPost, "/api/auth/login", AccessPublic, h.AuthAPI.Login},
		{"Logout", http.MethodPost, "/api/auth/logout", AccessUser, h.AuthAPI.Logout},
		{"Me", http.MethodGet, "/api/auth/me", AccessUser, h.AuthAPI.Me},
		{"UpdateMe", http.MethodPut, "/api/auth/me", AccessUser, h.AuthAPI.UpdateMe},
		{"ChangePassword", http.MethodPut, "/api/auth/me/password", AccessUser, h.AuthAPI.ChangePassword},

		{"ListProducts", http.MethodGet, "/api/products", AccessOptional, h.ProductAPI.ListProducts},
		{"ProductSuggestions", http.MethodGet, "/api/products/suggestions", AccessPublic, h.ProductAPI.Suggestions},
		{"GetProduct", http.MethodGet, "/api/products/:id", AccessOptional, h.ProductAPI.GetProduct},
		{"ToggleFavorite", http.MethodPost, "/api/products/:id/favorite", AccessUser, h.ProductAPI.ToggleFavorite},
		{"ListFavorites", http.MethodGet, "/api/favorites", AccessUser, h.ProductAPI.ListFavorites},
		{"ListMarkets", http.MethodGet, "/api/markets", AccessPublic, h.MarketAPI.ListMarkets},
		{"GetMarket", http.MethodGet, "/api/markets/:id", AccessPublic, h.MarketAPI.GetMarket},

		{"GetCart", http.MethodGet, "/api/cart", AccessUser, h.CartAPI.GetCart},
		{"ClearCart", http.MethodDelete, "/api/cart", AccessUser, h.CartAPI.ClearCart},
		{"AddCartItem", http.MethodPost, "/api/cart/items", AccessUser, h.CartAPI.AddItem},
		{"UpdateCartItem", http.MethodPatch, "/api/cart/items/:itemId", AccessUser, h.CartAPI.UpdateItem},
		{"RemoveCartItem", http.MethodDelete, "/api/cart/items/:itemId", AccessUser, h.CartAPI.RemoveItem},

		{"PlaceOrder", http.MethodPost, "/api/orders", AccessUser, h.OrderAPI.PlaceOrder},
		{"ListOrders", http.MethodGet, "/api/orders", AccessUser, h.OrderAPI.ListOrders},
		{"GetOrder", http.MethodGet, "/api/orders/:id", AccessUser, h.OrderAPI.GetOrder},
		{"CancelOrder", http.MethodPost, "/api/orders/:id/cancel", AccessUser, h.OrderAPI.CancelOrder},
		{"SustainabilityStats", http.MethodGet, "/api/sustainability/stats", AccessUser, h.OrderAPI.SustainabilityStats},

		{"ListNotifications", http.MethodGet, "/api/notifications", AccessUser, h.NotificationAPI.ListNotifications},
		{"MarkAllNotificationsRead", http.MethodPost, "/api/notifications/read-all", AccessUser, h.NotificationAPI.MarkAllAsRead},
		{"MarkNotificationRead", http.MethodPost, "/api/notifications/:id/read", AccessUser, h.NotificationAPI.MarkAsRead},

		{"AdminListUsers", http.MethodGet, "/api/admin/users", AccessAdmin, h.AdminUserAPI.ListUsers},
		{"AdminCreateUser", http.MethodPost, "/api/admin/users", AccessAdmin, h.AdminUserAPI.CreateUser},
		{"AdminGetUser", http.MethodGet, "/api/admin/users/:id", AccessAdmin, h.AdminUserAPI.GetUser},
		{"AdminUpdateUser", http.MethodPut, "/api/admin/users/:id", AccessAdmin, h.AdminUserAPI.UpdateUser},
		{"AdminDeleteUser", http.MethodDelete, "/api/admin/users/:id", AccessAdmin, h.AdminUserAPI.DeleteUser},

		{"ListSectors", http.MethodGet, "/api/admin/sectors", AccessViewer, h.SectorAPI.ListSectors},
		{"CreateSector", http.MethodPost, "/api/admin/sectors", AccessManager, h.SectorAPI.CreateSector},
		{"GetSector", http.MethodGet, "/api/admin/sectors/:id", AccessViewer, h.SectorAPI.GetSector},
		{"UpdateSector", http.MethodPut, "/api/admin/sectors/:id", AccessManager, h.SectorAPI.UpdateSector},
		{"DeleteSector", http.MethodDelete, "/api/admin/sectors/:id", AccessManager, h.SectorAPI.DeleteSector},

		{"AdminListProducts", http.MethodGet, "/api/admin/products", AccessViewer, h.AdminProductAPI.ListProducts},
		{"AdminCreateProduct", http.MethodPost, "/api/admin/products", AccessEmployee, h.AdminProductAPI.CreateProduct},
		{"AdminFindByBarcode", http.MethodGet, "/api/admin/products/barcode/:barcode", AccessViewer, h.AdminProductAPI.FindByBarcode},
		{"AdminGetProduct", http.MethodGet, "/api/admin/products/:id", AccessViewer, h.AdminProductAPI.GetProduct},
		{"AdminUpdateProduct", http.MethodPut, "/api/admin/products/:id", AccessEmployee, h.AdminProductAPI.UpdateProduct},
		{"AdminDeleteProduct", http.MethodDelete, "/api/admin/products/:id", AccessEmployee, h.AdminProductAPI.DeleteProduct},
		{"AdminAdjustStock", http.MethodPost, "/api/admin/products/:id/stock", AccessEmployee, h.AdminProductAPI.AdjustStock},

		{"ListPromotions", http.MethodGet, "/api/admin/promotions", AccessViewer, h.PromotionAPI.ListPromotions},
		{"CreatePromotion", http.MethodPost, "/api/admin/promotions", AccessManager, h.PromotionAPI.CreatePromotion},
		{"GeneratePromotionSuggestions", http.MethodPost, "/api/admin/promotions/suggestions", AccessManager, h.PromotionAPI.GenerateSuggestions},
		{"GetPromotion", http.MethodGet, "/api/admin/promotions/:id", AccessViewer, h.PromotionAPI.GetPromotion},
		{"UpdatePromotion", http.MethodPut, "/api/admin/promotions/:id", AccessManager, h.PromotionAPI.UpdatePromotion},
		{"DeletePromotion", http.MethodDelete, "/api/admin/promotions/:id", AccessManager, h.PromotionAPI.DeletePromotion},
		{"ActivatePromotion", http.MethodPost, "/api/admin/promotions/:id/activate", AccessManager, h.PromotionAPI.ActivatePromotion},
		{"DeactivatePromotion", http.MethodPost, "/api/admin/promotions/:id/deactivate", AccessManager, h.PromotionAPI.DeactivatePromotion},

		{"AdminListOrders", http.MethodGet, "/api/admin/orders", AccessEmployee, h.AdminOrderAPI.ListOrders},
		{"AdminUpdateOrderStatus", http.MethodPatch, "/api/admin/orders/:id/status", AccessEmployee, h.AdminOrderAPI.UpdateStatus},

		{"ListWastage", http.MethodGet, "/api/admin/wastage", AccessViewer, h.WastageAPI.ListWastage},
		{"RecordWastage", http.MethodPost, "/api/admin/wastage", AccessEmployee, h.WastageAPI.RecordWastage},

		{"DashboardMetrics", http.MethodGet, "/api/admin/dashboard/metrics", AccessViewer, h.InsightsAPI.DashboardMetrics},
		{"ExpiryAlerts", http.MethodGet, "/api/admin/dashboard/expiry-alerts", AccessViewer, h.InsightsAPI.ExpiryAlerts},
		{"SalesReport", http.MethodGet, "/api/admin/reports/sales", AccessViewer, h.InsightsAPI.SalesReport},
		{"WastageReport", http.MethodGet, "/api/admin/reports/wastage", AccessViewer, h.WastageAPI.WastageReport},
		{"ExportReport", http.MethodGet, "/api/admin/reports/export", AccessManager, h.InsightsAPI.ExportReport},
		{"RecentActivity", http.MethodGet, "/api/admin/activity", AccessViewer, h.InsightsAPI.RecentActivity},
		{"AdminNotifications", http.MethodGet, "/api/admin/notifications", AccessViewer, h.NotificationAPI.ListNotifications},
	}
}
