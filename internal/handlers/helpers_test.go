package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"portfolio-tracker/internal/repositories"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testTraceID = "550e8400-e29b-41d4-a716-446655440000"

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context; body is JSON-encoded unless it is nil
// or already a string.
func newContext(e *echo.Echo, method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(TraceIDContextKey, testTraceID)
	return c, rec
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

type successEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) successEnvelope {
	t.Helper()
	var env successEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// constraintErr mimics what a repository returns when an insert references a
// missing parent row.
func constraintErr(op string, parent error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, repositories.ErrConstraintViolation, parent)
}
