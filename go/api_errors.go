package marketplaceserver

import (
	"github.com/gin-gonic/gin"

	accountsapp "github.com/levaja/marketplace-api/internal/domains/accounts/application"
	accountsports "github.com/levaja/marketplace-api/internal/domains/accounts/ports"
	cartapp "github.com/levaja/marketplace-api/internal/domains/cart/application"
	cartdomain "github.com/levaja/marketplace-api/internal/domains/cart/domain"
	cartports "github.com/levaja/marketplace-api/internal/domains/cart/ports"
	catalogapp "github.com/levaja/marketplace-api/internal/domains/catalog/application"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	insightsapp "github.com/levaja/marketplace-api/internal/domains/insights/application"
	notificationsapp "github.com/levaja/marketplace-api/internal/domains/notifications/application"
	notificationsports "github.com/levaja/marketplace-api/internal/domains/notifications/ports"
	ordersapp "github.com/levaja/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/levaja/marketplace-api/internal/domains/orders/ports"
	promotionsapp "github.com/levaja/marketplace-api/internal/domains/promotions/application"
	promotionsports "github.com/levaja/marketplace-api/internal/domains/promotions/ports"
	sectorsapp "github.com/levaja/marketplace-api/internal/domains/sectors/application"
	sectorsports "github.com/levaja/marketplace-api/internal/domains/sectors/ports"
	wastageapp "github.com/levaja/marketplace-api/internal/domains/wastage/application"
	apierrors "github.com/levaja/marketplace-api/internal/shared/errors"
)

// problems resolves every context's sentinels. Specific problems come before the generic ones they wrap.
var problems = apierrors.NewChainedResponder("",
	// accounts
	apierrors.Match(apierrors.ErrInvalidCredentials, accountsapp.ErrInvalidCredentials),
	apierrors.Match(apierrors.ErrUnauthorized, accountsapp.ErrUnauthenticated, catalogapp.ErrAuthenticationRequired),
	apierrors.Match(apierrors.ErrConflict, accountsapp.ErrConflict),
	apierrors.Match(apierrors.ErrValidation, accountsapp.ErrInvalidInput),
	apierrors.Match(apierrors.ErrNotFound, accountsports.ErrNotFound),

	// catalog and cart
	apierrors.Match(apierrors.ErrOutOfStock, cartdomain.ErrOutOfStock),
	apierrors.Match(apierrors.ErrConflict, catalogapp.ErrConflict, cartapp.ErrConflict),
	apierrors.Match(apierrors.ErrValidation, catalogapp.ErrInvalidInput, cartapp.ErrInvalidInput),
	apierrors.Match(apierrors.ErrNotFound,
		catalogports.ErrNotFound, catalogports.ErrMarketNotFound,
		cartports.ErrNotFound, cartports.ErrProductNotFound, cartdomain.ErrItemNotFound),

	// orders
	apierrors.Match(apierrors.ErrEmptyCart, ordersapp.ErrEmptyCart),
	apierrors.Match(apierrors.ErrIdempotencyConflict, ordersports.ErrIdempotencyConflict),
	apierrors.Match(apierrors.ErrConflict, ordersapp.ErrConflict),
	apierrors.Match(apierrors.ErrValidation, ordersapp.ErrInvalidInput),
	apierrors.Match(apierrors.ErrNotFound, ordersports.ErrNotFound),

	// back office
	apierrors.Match(apierrors.ErrConflict, wastageapp.ErrConflict),
	apierrors.Match(apierrors.ErrValidation,
		sectorsapp.ErrInvalidInput, promotionsapp.ErrInvalidInput, wastageapp.ErrInvalidInput,
		notificationsapp.ErrInvalidInput, insightsapp.ErrInvalidInput),
	apierrors.Match(apierrors.ErrNotFound,
		sectorsports.ErrNotFound, promotionsports.ErrNotFound, notificationsports.ErrNotFound),
)

// respondError writes err as a problem document through the shared chain.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

// respondBadRequest reports a payload or query gin could not bind.
func respondBadRequest(c *gin.Context, err error) {
	problems.BadRequest(c, err.Error())
}
