package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountsports "github.com/levaja/marketplace-api/internal/domains/accounts/ports"
)

// AdminUserAPI manages staff and consumer accounts.
type AdminUserAPI struct {
	accounts accountsports.Service
	audit    *AuditTrail
}

func NewAdminUserAPI(accounts accountsports.Service, audit *AuditTrail) AdminUserAPI {
	return AdminUserAPI{accounts: accounts, audit: audit}
}

// Get /api/admin/users
// ?role= narrows to one role
func (api *AdminUserAPI) ListUsers(c *gin.Context) {
	users, err := api.accounts.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUsers(users))
}

// Get /api/admin/users/:id
func (api *AdminUserAPI) GetUser(c *gin.Context) {
	user, err := api.accounts.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUser(user))
}

// Post /api/admin/users
func (api *AdminUserAPI) CreateUser(c *gin.Context) {
	var payload UserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := api.accounts.CreateUser(c.Request.Context(), payload.toInput(""))
	if err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "user.created", "Created user "+user.Email, map[string]string{"userId": user.ID, "role": string(user.Role)})
	c.JSON(http.StatusCreated, fromUser(user))
}

// Put /api/admin/users/:id
func (api *AdminUserAPI) UpdateUser(c *gin.Context) {
	var payload UserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := api.accounts.UpdateUser(c.Request.Context(), payload.toInput(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "user.updated", "Updated user "+user.Email, map[string]string{"userId": user.ID})
	c.JSON(http.StatusOK, fromUser(user))
}

// Delete /api/admin/users/:id
// Also revokes the user's sessions
func (api *AdminUserAPI) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := api.accounts.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "user.deleted", "Deleted user "+id, map[string]string{"userId": id})
	c.Status(http.StatusNoContent)
}
