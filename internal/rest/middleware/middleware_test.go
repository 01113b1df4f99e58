package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	ierr "github.com/harborview/membership/internal/errors"
	"github.com/harborview/membership/internal/types"
	"github.com/stretchr/testify/suite"
)

type MiddlewareSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestMiddleware(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.router = gin.New()
	s.router.Use(RequestIDMiddleware, CORSMiddleware, ErrorHandler())

	s.router.GET("/missing", func(c *gin.Context) {
		c.Error(ierr.NewError("product not found in catalog").
			WithHint("No membership product configured for id space_camp").
			WithReportableDetails(map[string]any{"provided_value": "space_camp"}).
			Mark(ierr.ErrNotFound))
	})
	s.router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": types.GetRequestID(c.Request.Context())})
	})
}

func (s *MiddlewareSuite) TestErrorHandlerSurfacesHintAndDetails() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Success)
	s.Equal("No membership product configured for id space_camp", resp.Error.Display)
	s.Equal("space_camp", resp.Error.Details["provided_value"])
	s.NotEmpty(resp.RequestID)
}

func (s *MiddlewareSuite) TestErrorHandlerHidesInternalText() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	s.router.ServeHTTP(w, req)

	s.NotContains(w.Body.String(), "product not found in catalog")
}

func (s *MiddlewareSuite) TestRequestIDEchoedWhenSupplied() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(types.HeaderRequestID, "caller-supplied-id")
	s.router.ServeHTTP(w, req)

	s.Equal("caller-supplied-id", w.Header().Get(types.HeaderRequestID))
	s.Contains(w.Body.String(), "caller-supplied-id")
}

func (s *MiddlewareSuite) TestRequestIDGeneratedWhenMissingOrOverlong() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	s.router.ServeHTTP(w, req)
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))

	overlong := strings.Repeat("x", maxRequestIDLength+1)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(types.HeaderRequestID, overlong)
	s.router.ServeHTTP(w, req)

	echoed := w.Header().Get(types.HeaderRequestID)
	s.NotEmpty(echoed)
	s.NotEqual(overlong, echoed)
}

func (s *MiddlewareSuite) TestCORSPreflight() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	s.Contains(w.Header().Get("Access-Control-Allow-Headers"), types.HeaderRequestID)
}
