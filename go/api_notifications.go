package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	notificationsports "github.com/levaja/marketplace-api/internal/domains/notifications/ports"
)

// NotificationAPI serves the caller's inbox. Staff read theirs through the admin route.
type NotificationAPI struct {
	notifications notificationsports.Service
}

func NewNotificationAPI(notifications notificationsports.Service) NotificationAPI {
	return NotificationAPI{notifications: notifications}
}

// Get /api/notifications
// Newest first; ?unread=true keeps only unread ones
func (api *NotificationAPI) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	userID := principal(c).UserID
	list, err := api.notifications.List(ctx, userID, c.Query("unread") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := api.notifications.UnreadCount(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromNotifications(list, unread))
}

// Post /api/notifications/:id/read
func (api *NotificationAPI) MarkAsRead(c *gin.Context) {
	notification, err := api.notifications.MarkAsRead(c.Request.Context(), principal(c).UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromNotification(notification))
}

// Post /api/notifications/read-all
func (api *NotificationAPI) MarkAllAsRead(c *gin.Context) {
	updated, err := api.notifications.MarkAllAsRead(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
