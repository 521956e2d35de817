package marketplaceserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	accountsmemory "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/levaja/marketplace-api/internal/domains/accounts/application"
	accountstypes "github.com/levaja/marketplace-api/internal/domains/accounts/application/types"
	cartcatalog "github.com/levaja/marketplace-api/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/levaja/marketplace-api/internal/domains/cart/adapters/memory"
	cartapp "github.com/levaja/marketplace-api/internal/domains/cart/application"
	catalogmemory "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/levaja/marketplace-api/internal/domains/catalog/application"
	catalogdomain "github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	insightsmemory "github.com/levaja/marketplace-api/internal/domains/insights/adapters/memory"
	"github.com/levaja/marketplace-api/internal/domains/insights/adapters/sources"
	insightsapp "github.com/levaja/marketplace-api/internal/domains/insights/application"
	notificationsmemory "github.com/levaja/marketplace-api/internal/domains/notifications/adapters/memory"
	notificationsapp "github.com/levaja/marketplace-api/internal/domains/notifications/application"
	"github.com/levaja/marketplace-api/internal/domains/orders/adapters/gateways"
	ordersmemory "github.com/levaja/marketplace-api/internal/domains/orders/adapters/memory"
	"github.com/levaja/marketplace-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/levaja/marketplace-api/internal/domains/orders/application"
	promotionscatalog "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/catalog"
	promotionsmemory "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/memory"
	promotionsapp "github.com/levaja/marketplace-api/internal/domains/promotions/application"
	sectorsmemory "github.com/levaja/marketplace-api/internal/domains/sectors/adapters/memory"
	sectorsapp "github.com/levaja/marketplace-api/internal/domains/sectors/application"
	wastagecatalog "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/catalog"
	wastagememory "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/memory"
	wastageapp "github.com/levaja/marketplace-api/internal/domains/wastage/application"
	platformauth "github.com/levaja/marketplace-api/internal/platform/auth"
	apierrors "github.com/levaja/marketplace-api/internal/shared/errors"
)

const (
	testMarketID  = "market-centro"
	testProductID = "prod-iogurte"
	staffPassword = "demo123"
)

type testServer struct {
	engine   *gin.Engine
	accounts *accountsapp.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	issuer, err := platformauth.NewTokenIssuer("test-secret", "levaja-test", time.Hour)
	require.NoError(t, err)
	accounts := accountsapp.NewService(
		accountsmemory.NewRepository(),
		accountsmemory.NewSessionStore(),
		platformauth.BcryptHasher{Cost: bcrypt.MinCost},
		issuer,
	)

	markets := catalogmemory.NewMarketRepository()
	products := catalogmemory.NewProductRepository()
	catalog := catalogapp.NewService(products, markets, catalogmemory.NewFavoriteStore())
	_, err = markets.Save(ctx, &catalogdomain.Market{ID: testMarketID, Name: "Mercado Centro", IsOpen: true})
	require.NoError(t, err)
	_, err = products.Save(ctx, &catalogdomain.Product{
		ID:            testProductID,
		Name:          "Iogurte Natural",
		Category:      "laticinios",
		MarketID:      testMarketID,
		MarketName:    "Mercado Centro",
		Price:         decimal.RequireFromString("4.50"),
		OriginalPrice: decimal.RequireFromString("6.00"),
		Quantity:      10,
		MinQuantity:   2,
		ExpiryDate:    time.Now().AddDate(0, 0, 20),
		EntryDate:     time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	carts := cartapp.NewService(cartmemory.NewRepository(), cartcatalog.NewLookup(catalog))
	notifications := notificationsapp.NewService(notificationsmemory.NewRepository())
	orders := ordersapp.NewService(
		ordersmemory.NewRepository(),
		gateways.NewCarts(carts),
		ordersapp.WithIdempotencyStore(ordersmemory.NewIdempotencyStore()),
		ordersapp.WithNotifier(gateways.NewNotifications(notifications)),
	)
	promotions := promotionsapp.NewService(promotionsmemory.NewRepository(), promotionscatalog.NewProducts(catalog, time.Now))
	wastage := wastageapp.NewService(wastagememory.NewRepository(), wastagecatalog.NewInventory(catalog))
	insights := insightsapp.NewService(insightsapp.Sources{
		Products:   sources.NewCatalog(catalog),
		Sales:      sources.NewOrders(orders),
		Promotions: promotions,
		Wastage:    sources.NewWastage(wastage),
	}, insightsmemory.NewActivityLog(50))
	audit := NewAuditTrail(insights, nil)

	engine := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		Guard:           NewGuard(accounts),
		AuthAPI:         NewAuthAPI(accounts),
		ProductAPI:      NewProductAPI(catalog),
		MarketAPI:       NewMarketAPI(catalog),
		CartAPI:         NewCartAPI(carts),
		OrderAPI:        NewOrderAPI(orders, workflows.NewInlineOrderWorkflows(orders)),
		NotificationAPI: NewNotificationAPI(notifications),
		AdminUserAPI:    NewAdminUserAPI(accounts, audit),
		AdminProductAPI: NewAdminProductAPI(catalog, audit),
		AdminOrderAPI:   NewAdminOrderAPI(orders, audit),
		SectorAPI:       NewSectorAPI(sectorsapp.NewService(sectorsmemory.NewRepository()), audit),
		PromotionAPI:    NewPromotionAPI(promotions, audit),
		WastageAPI:      NewWastageAPI(wastage, audit),
		InsightsAPI:     NewInsightsAPI(insights, audit),
		SystemAPI:       NewSystemAPI(),
	})
	return &testServer{engine: engine, accounts: accounts}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, email string) AuthResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name:            "Ana Souza",
		Email:           email,
		Password:        "Sup3rSecret",
		ConfirmPassword: "Sup3rSecret",
		AcceptTerms:     true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *testServer) staffToken(t *testing.T, email, role string) string {
	t.Helper()
	name, password := "Staff", staffPassword
	_, err := s.accounts.CreateUser(context.Background(), accountstypes.UserInput{
		Name:     &name,
		Email:    &email,
		Password: &password,
		Role:     &role,
	})
	require.NoError(t, err)
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Token
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestGetRoutes_EveryRouteHasHandlerAndUniqueName(t *testing.T) {
	srv := NewSystemAPI()
	routes := getRoutes(ApiHandleFunctions{SystemAPI: srv})
	seen := map[string]bool{}
	for _, route := range routes {
		assert.NotNil(t, route.HandlerFunc, route.Name)
		assert.False(t, seen[route.Name], "duplicate route name %s", route.Name)
		seen[route.Name] = true
		assert.NotEmpty(t, route.Access, route.Name)
	}
}

func TestAuthFlow_RegisterMeLogout(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "ana@example.com")
	require.NotEmpty(t, auth.Token)
	assert.Equal(t, "consumer", auth.User.Role)

	rec := s.do(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "ana@example.com", me.Email)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", auth.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@example.com")

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "ana@example.com", Password: "nope"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apierrors.TypeInvalidLogin, decodeProblem(t, rec).Type)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@example.com")

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret", AcceptTerms: true,
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGuard_MissingTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/cart", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeUnauthorized, problem.Type)
	assert.Equal(t, "/api/cart", problem.Instance)
}

func TestGuard_ConsumerCannotReachAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "ana@example.com")

	rec := s.do(t, http.MethodGet, "/api/admin/users", auth.Token, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "admin", problem.Extensions["requiredRole"])
}

func TestGuard_RoleHierarchy(t *testing.T) {
	s := newTestServer(t)
	viewer := s.staffToken(t, "viewer@levaja.com", "viewer")
	manager := s.staffToken(t, "gerente@levaja.com", "manager")

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/admin/sectors", viewer, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/admin/sectors", viewer, SectorRequest{}).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/admin/orders", manager, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/admin/users", manager, nil).Code)
}

func TestListProducts_IgnoresInvalidOptionalToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products?sortBy=price", "not-a-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var page ProductPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, testProductID, page.Data[0].Id)
	assert.Equal(t, 25, page.Data[0].DiscountPercentage)
	assert.False(t, page.HasMore)
}

func TestGetProduct_UnknownIsNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/missing", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeNotFound, decodeProblem(t, rec).Type)
}

func TestCartAndCheckout(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "ana@example.com")

	rec := s.do(t, http.MethodPost, "/api/cart/items", auth.Token, AddCartItemRequest{ProductId: testProductID, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cart Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 2, cart.ItemCount)
	assert.InDelta(t, 9.0, cart.Total, 0.001)
	assert.InDelta(t, 12.0, cart.OriginalTotal, 0.001)
	assert.InDelta(t, 3.0, cart.Savings, 0.001)

	checkout := CheckoutRequest{DeliveryType: "pickup", PaymentMethod: "pix"}
	rec = s.do(t, http.MethodPost, "/api/orders", auth.Token, checkout, IdempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "pending", order.Status)
	assert.InDelta(t, 9.0, order.Total, 0.001)

	rec = s.do(t, http.MethodPost, "/api/orders", auth.Token, checkout, IdempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var replay Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &replay))
	assert.Equal(t, order.Id, replay.Id)

	rec = s.do(t, http.MethodGet, "/api/cart", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)

	rec = s.do(t, http.MethodGet, "/api/notifications", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list NotificationList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.UnreadCount)
}

func TestCheckout_EmptyCartIsUnprocessable(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "ana@example.com")

	rec := s.do(t, http.MethodPost, "/api/orders", auth.Token, CheckoutRequest{DeliveryType: "pickup", PaymentMethod: "pix"})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apierrors.TypeEmptyCart, decodeProblem(t, rec).Type)
}

func TestAddItem_BeyondStockIsClamped(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "ana@example.com")

	rec := s.do(t, http.MethodPost, "/api/cart/items", auth.Token, AddCartItemRequest{ProductId: testProductID, Quantity: 11})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cart Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 10, cart.Items[0].SelectedQuantity)
	assert.Equal(t, 10, cart.ItemCount)
}

func TestAddItem_SoldOutConflicts(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "ana@example.com")
	employee := s.staffToken(t, "func@levaja.com", "employee")

	rec := s.do(t, http.MethodPost, "/api/admin/products/"+testProductID+"/stock", employee, StockRequest{Delta: -10})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/cart/items", auth.Token, AddCartItemRequest{ProductId: testProductID, Quantity: 1})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.TypeOutOfStock, decodeProblem(t, rec).Type)
}

func TestExportReport(t *testing.T) {
	s := newTestServer(t)
	manager := s.staffToken(t, "gerente@levaja.com", "manager")

	rec := s.do(t, http.MethodGet, "/api/admin/reports/export?report=sales&format=csv", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=\"sales-report-")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	rec = s.do(t, http.MethodGet, "/api/admin/reports/export?report=sales&format=pdf", manager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/activity", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var activity []Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activity))
	require.Len(t, activity, 1)
	assert.Equal(t, "report.exported", activity[0].Action)
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/openapi.yaml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
