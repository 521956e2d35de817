package marketplaceserver

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	insightstypes "github.com/levaja/marketplace-api/internal/domains/insights/application/types"
	insightsports "github.com/levaja/marketplace-api/internal/domains/insights/ports"
)

// AuditTrail appends back-office mutations to the activity log. A nil trail records nothing.
type AuditTrail struct {
	insights insightsports.Service
	logger   *slog.Logger
}

func NewAuditTrail(insights insightsports.Service, logger *slog.Logger) *AuditTrail {
	return &AuditTrail{insights: insights, logger: logger}
}

// record never fails the request; a lost entry is only logged.
func (a *AuditTrail) record(c *gin.Context, action, description string, metadata map[string]string) {
	if a == nil || a.insights == nil {
		return
	}
	err := a.insights.RecordActivity(c.Request.Context(), insightstypes.ActivityInput{
		UserID:      principal(c).UserID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
	})
	if err != nil && a.logger != nil {
		a.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "activity not recorded",
			slog.String("activity.action", action), slog.String("error", err.Error()))
	}
}
