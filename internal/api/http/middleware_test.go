package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	transport "github.com/ebolarium/baplikasyon/internal/api/http"
	"github.com/ebolarium/baplikasyon/internal/observability"
	apperrors "github.com/ebolarium/baplikasyon/pkg/util"
)

type errorEnvelope struct {
	Error struct {
		Code     string         `json:"code"`
		Message  string         `json:"message"`
		Details  map[string]any `json:"details"`
		Internal string         `json:"internal"`
	} `json:"error"`
}

func newTestApp(devMode bool) *fiber.App {
	app := fiber.New()
	transport.RegisterMiddlewares(app, transport.MiddlewareConfig{
		Logger:  zap.NewNop(),
		Metrics: observability.NewMetrics(),
		DevMode: devMode,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, errorEnvelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestErrorMiddlewareMapsDomainErrors(t *testing.T) {
	app := newTestApp(false)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("support case", nil)
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("invalid case payload", map[string]any{"topic": "required"})
	})

	status, envelope := doRequest(t, app, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", envelope.Error.Code)
	require.Equal(t, "support case not found", envelope.Error.Message)

	status, envelope = doRequest(t, app, http.MethodGet, "/invalid")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	require.Equal(t, "required", envelope.Error.Details["topic"])
}

func TestErrorMiddlewareWrapsUnknownErrors(t *testing.T) {
	app := newTestApp(false)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("connection refused")
	})

	status, envelope := doRequest(t, app, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
	require.Empty(t, envelope.Error.Internal, "internal detail stays hidden outside dev mode")
}

func TestErrorMiddlewareExposesDetailInDevMode(t *testing.T) {
	app := newTestApp(true)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("connection refused")
	})

	status, envelope := doRequest(t, app, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "connection refused", envelope.Error.Internal)
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := newTestApp(false)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected state")
	})

	status, envelope := doRequest(t, app, http.MethodGet, "/panic")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
}
