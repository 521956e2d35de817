package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountstypes "github.com/levaja/marketplace-api/internal/domains/accounts/application/types"
	accountsports "github.com/levaja/marketplace-api/internal/domains/accounts/ports"
)

// AuthAPI serves sign-up, sign-in and the caller's own profile.
type AuthAPI struct {
	accounts accountsports.Service
}

func NewAuthAPI(accounts accountsports.Service) AuthAPI {
	return AuthAPI{accounts: accounts}
}

// Post /api/auth/register
// Create a consumer account and sign it in
func (api *AuthAPI) Register(c *gin.Context) {
	var payload RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.accounts.Register(c.Request.Context(), accountstypes.RegisterInput{
		Name:            payload.Name,
		Email:           payload.Email,
		Password:        payload.Password,
		ConfirmPassword: payload.ConfirmPassword,
		Phone:           payload.Phone,
		AcceptTerms:     payload.AcceptTerms,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromAuthResult(result))
}

// Post /api/auth/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.accounts.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAuthResult(result))
}

// Post /api/auth/logout
// Revoke the presented token
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.accounts.Logout(c.Request.Context(), principal(c).Token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/auth/me
func (api *AuthAPI) Me(c *gin.Context) {
	user, err := api.accounts.Me(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUser(user))
}

// Put /api/auth/me
// Update name, phone, avatar or preferences
func (api *AuthAPI) UpdateMe(c *gin.Context) {
	var payload ProfileRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := api.accounts.UpdateProfile(c.Request.Context(), principal(c).UserID, accountstypes.ProfileUpdate{
		Name:        payload.Name,
		Phone:       payload.Phone,
		Avatar:      payload.Avatar,
		Preferences: payload.Preferences.toDomain(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUser(user))
}

// Put /api/auth/me/password
func (api *AuthAPI) ChangePassword(c *gin.Context) {
	var payload PasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	change := accountstypes.PasswordChange{Current: payload.CurrentPassword, New: payload.NewPassword}
	if err := api.accounts.ChangePassword(c.Request.Context(), principal(c).UserID, change); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
