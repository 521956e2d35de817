package marketplaceserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	accountsdomain "github.com/levaja/marketplace-api/internal/domains/accounts/domain"
)

// Access is the minimum caller a route admits.
type Access string

const (
	AccessPublic   Access = "public"
	AccessOptional Access = "optional"
	AccessUser     Access = "user"
	AccessViewer   Access = "viewer"
	AccessEmployee Access = "employee"
	AccessManager  Access = "manager"
	AccessAdmin    Access = "admin"
)

var accessRoles = map[Access]accountsdomain.Role{
	AccessUser:     accountsdomain.RoleConsumer,
	AccessViewer:   accountsdomain.RoleViewer,
	AccessEmployee: accountsdomain.RoleEmployee,
	AccessManager:  accountsdomain.RoleManager,
	AccessAdmin:    accountsdomain.RoleAdmin,
}

const principalKey = "levaja.principal"

// Authenticator resolves a bearer token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (accountsdomain.Principal, error)
}

// Guard enforces route access levels.
type Guard struct {
	auth Authenticator
}

func NewGuard(auth Authenticator) *Guard {
	return &Guard{auth: auth}
}

// For returns the middleware for access, or nil for public routes.
func (g *Guard) For(access Access) gin.HandlerFunc {
	switch access {
	case AccessPublic, "":
		return nil
	case AccessOptional:
		return g.optional
	}
	required := accessRoles[access]
	return func(c *gin.Context) {
		principal, ok := g.authenticate(c)
		if !ok {
			return
		}
		if !principal.Role.HasPermission(required) {
			problems.Forbidden(c, string(required))
			return
		}
		c.Next()
	}
}

// optional attaches the caller when a valid token is sent and ignores bad or missing ones.
func (g *Guard) optional(c *gin.Context) {
	token := bearerToken(c)
	if token != "" && g.auth != nil {
		if principal, err := g.auth.Authenticate(c.Request.Context(), token); err == nil {
			c.Set(principalKey, principal)
		}
	}
	c.Next()
}

func (g *Guard) authenticate(c *gin.Context) (accountsdomain.Principal, bool) {
	token := bearerToken(c)
	if token == "" {
		problems.Unauthorized(c, "missing bearer token")
		return accountsdomain.Principal{}, false
	}
	if g.auth == nil {
		problems.Unauthorized(c, "authentication is not configured")
		return accountsdomain.Principal{}, false
	}
	principal, err := g.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return accountsdomain.Principal{}, false
	}
	c.Set(principalKey, principal)
	return principal, true
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// principal returns the caller attached by the guard; anonymous when none.
func principal(c *gin.Context) accountsdomain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(accountsdomain.Principal); ok {
			return p
		}
	}
	return accountsdomain.Principal{}
}
