package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

// handle runs the error handler on a fresh context and decodes the envelope
func (s *ErrorHandlerTestSuite) handle(err error, traceID string) (*httptest.ResponseRecorder, apierrors.ErrorResponse) {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if traceID != "" {
		c.Set(TraceIDContextKey, traceID)
	}

	CustomHTTPErrorHandler(err, c)

	var body apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func (s *ErrorHandlerTestSuite) TestFrameworkErrors() {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, "VALIDATION_001"},
		{http.StatusMethodNotAllowed, "VALIDATION_001"},
		{http.StatusUnsupportedMediaType, "VALIDATION_001"},
		{http.StatusNotFound, "SYSTEM_007"},
		{http.StatusUnprocessableEntity, "VALIDATION_006"},
		{http.StatusTooManyRequests, "SYSTEM_006"},
		{http.StatusInternalServerError, "SYSTEM_001"},
		{http.StatusServiceUnavailable, "SYSTEM_003"},
		{http.StatusTeapot, "SYSTEM_005"},
	}

	for _, tc := range tests {
		s.Run(fmt.Sprint(tc.status), func() {
			rec, body := s.handle(echo.NewHTTPError(tc.status, "framework says no"), "trace-1")

			s.Equal(tc.status, rec.Code)
			s.Equal(tc.code, body.Error.Code)
			s.Equal("framework says no", body.Error.Message)
			s.Equal("trace-1", body.Error.TraceID)
		})
	}
}

func (s *ErrorHandlerTestSuite) TestWrappedHTTPError() {
	err := fmt.Errorf("binding: %w", echo.NewHTTPError(http.StatusBadRequest, "bad json"))

	rec, body := s.handle(err, "trace-2")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_001", body.Error.Code)
}

func (s *ErrorHandlerTestSuite) TestPlainErrorIsHidden() {
	rec, body := s.handle(errors.New("dial tcp 10.0.0.5:5432: connection refused"), "trace-3")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("SYSTEM_001", body.Error.Code)
	s.NotContains(rec.Body.String(), "10.0.0.5")
	s.Contains(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func (s *ErrorHandlerTestSuite) TestMissingTraceID() {
	_, body := s.handle(errors.New("boom"), "")

	s.Equal("unknown", body.Error.TraceID)
}

func (s *ErrorHandlerTestSuite) TestValidationErrors() {
	input := struct {
		Ticker string `json:"ticker_symbol" validate:"required,ticker"`
	}{}
	err := validation.NewValidator().Struct(input)
	s.Require().Error(err)

	rec, body := s.handle(err, "trace-4")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_001", body.Error.Code)
	s.Equal([]string{"ticker_symbol: is required"}, body.Error.Details)
}

func (s *ErrorHandlerTestSuite) TestCommittedResponseIsKept() {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	s.Require().NoError(c.String(http.StatusOK, "done"))

	CustomHTTPErrorHandler(errors.New("late failure"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("done", rec.Body.String())
}

func (s *ErrorHandlerTestSuite) TestUnknownRoute() {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_007")
}
