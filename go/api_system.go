package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"

	apispec "github.com/levaja/marketplace-api/api"
	apierrors "github.com/levaja/marketplace-api/internal/shared/errors"
)

const (
	openAPIPath = "/openapi.yaml"
	docsPath    = "/docs/"
)

var problemNotImplemented = apierrors.ProblemDetail{
	Type:   "/problems/not-implemented",
	Title:  "Not Implemented",
	Status: http.StatusNotImplemented,
}

// SystemAPI exposes liveness, metrics and the API description.
type SystemAPI struct {
	metrics http.Handler
	docs    http.Handler
}

func NewSystemAPI() SystemAPI {
	return SystemAPI{
		metrics: promhttp.Handler(),
		docs:    v5emb.New("LevaJá Marketplace API", openAPIPath, docsPath),
	}
}

// Get /healthz
func (api *SystemAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /metrics
func (api *SystemAPI) Metrics(c *gin.Context) {
	if api.metrics == nil {
		DefaultHandleFunc(c)
		return
	}
	api.metrics.ServeHTTP(c.Writer, c.Request)
}

// Get /openapi.yaml
func (api *SystemAPI) OpenAPISpec(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", apispec.OpenAPI)
}

// Get /docs/*any
func (api *SystemAPI) Docs(c *gin.Context) {
	if api.docs == nil {
		DefaultHandleFunc(c)
		return
	}
	api.docs.ServeHTTP(c.Writer, c.Request)
}
