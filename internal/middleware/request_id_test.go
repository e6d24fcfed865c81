package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

// serve runs RequestID with the given incoming header and returns the trace
// IDs seen by the handler (echo context, request context) and the response.
func (s *RequestIDTestSuite) serve(incoming string) (string, string, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(TraceIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var fromEcho, fromCtx string
	handler := RequestID()(func(c echo.Context) error {
		fromEcho = GetTraceID(c)
		fromCtx = TraceIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	s.Require().NoError(handler(c))

	return fromEcho, fromCtx, rec
}

func (s *RequestIDTestSuite) TestGeneratesUUID() {
	fromEcho, fromCtx, rec := s.serve("")

	_, err := uuid.Parse(fromEcho)
	s.NoError(err)
	s.Equal(fromEcho, fromCtx)
	s.Equal(fromEcho, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestKeepsCallerTraceID() {
	for _, incoming := range []string{"existing-trace-id-12345", uuid.NewString(), "job_42.retry"} {
		fromEcho, fromCtx, rec := s.serve(incoming)

		s.Equal(incoming, fromEcho)
		s.Equal(incoming, fromCtx)
		s.Equal(incoming, rec.Header().Get(TraceIDHeader))
	}
}

func (s *RequestIDTestSuite) TestReplacesUnsafeTraceID() {
	for _, incoming := range []string{"bad id with spaces", "<script>", "x\r\ny", strings.Repeat("a", 65)} {
		fromEcho, _, rec := s.serve(incoming)

		s.NotEqual(incoming, fromEcho)
		_, err := uuid.Parse(rec.Header().Get(TraceIDHeader))
		s.NoError(err, incoming)
	}
}

func (s *RequestIDTestSuite) TestGetTraceID_Unset() {
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	s.Empty(GetTraceID(c))
	s.Empty(TraceIDFromContext(c.Request().Context()))
}

func (s *RequestIDTestSuite) TestRequestLogger_RendersErrorsBeforeLogging() {
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := RequestLogger()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad input")
	})

	s.NoError(handler(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_001")
}

func (s *RequestIDTestSuite) TestRequestLogger_PassesThrough() {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := RequestLogger()(func(c echo.Context) error {
		return c.String(http.StatusAccepted, "queued")
	})

	s.NoError(handler(c))
	s.Equal(http.StatusAccepted, rec.Code)
	s.Equal("queued", rec.Body.String())
}
