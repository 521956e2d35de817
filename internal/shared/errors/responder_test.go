package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("thing not found")

func respond(t *testing.T, responder *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/things/7", nil)
	responder.RespondError(c, err)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_MapsWrappedSentinel(t *testing.T) {
	responder := NewChainedResponder("", Match(ErrNotFound, errGone))
	rec, problem := respond(t, responder, fmt.Errorf("load: %w", errGone))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, TypeNotFound, problem.Type)
	require.Equal(t, "load: thing not found", problem.Detail)
	require.Equal(t, "/api/things/7", problem.Instance)
}

func TestChainedResponder_UnknownErrorIsInternal(t *testing.T) {
	responder := NewChainedResponder("https://levaja.example", Match(ErrNotFound, errGone))
	rec, problem := respond(t, responder, errors.New("db exploded"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "https://levaja.example"+TypeInternal, problem.Type)
	require.NotContains(t, problem.Detail, "db exploded")
}

func TestChainedResponder_FirstMapperWins(t *testing.T) {
	responder := NewChainedResponder("")
	responder.AddMapper(Match(ErrConflict, errGone), Match(ErrNotFound, errGone))
	require.Equal(t, http.StatusConflict, responder.HTTPStatusFromError(errGone))
	require.Equal(t, http.StatusInternalServerError, responder.HTTPStatusFromError(errors.New("x")))
	require.Equal(t, http.StatusForbidden, responder.HTTPStatusFromError(NewForbiddenProblem("admin")))
}

func TestWithExtensionDoesNotShareMaps(t *testing.T) {
	base := ErrValidation.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)
	require.Len(t, base.Extensions, 1)
	require.Len(t, derived.Extensions, 2)
}
