package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func TestRequestIDSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func (s *RequestIDTestSuite) serve(req *http.Request) (*httptest.ResponseRecorder, string) {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var seenInContext string
	handler := RequestID()(func(c echo.Context) error {
		seenInContext = GetTraceID(c)
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	return rec, seenInContext
}

func (s *RequestIDTestSuite) TestAssignsFreshTraceID() {
	req := httptest.NewRequest(http.MethodPost, "/categorize", strings.NewReader(`{}`))
	rec, fromContext := s.serve(req)

	s.NotEmpty(fromContext)
	s.Equal(fromContext, rec.Header().Get(TraceIDHeader), "context and response header must agree")
	s.Regexp(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, fromContext)
}

func (s *RequestIDTestSuite) TestPropagatesClientTraceID() {
	req := httptest.NewRequest(http.MethodPost, "/detect-anomaly", strings.NewReader(`{}`))
	req.Header.Set(TraceIDHeader, "caller-supplied-7f3a")

	rec, fromContext := s.serve(req)

	s.Equal("caller-supplied-7f3a", fromContext)
	s.Equal("caller-supplied-7f3a", rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestDistinctRequestsGetDistinctIDs() {
	_, first := s.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	_, second := s.serve(httptest.NewRequest(http.MethodGet, "/health", nil))

	s.NotEqual(first, second)
}

func (s *RequestIDTestSuite) TestGetTraceIDWithoutMiddleware() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	c := s.echo.NewContext(req, httptest.NewRecorder())

	s.Empty(GetTraceID(c))
}
