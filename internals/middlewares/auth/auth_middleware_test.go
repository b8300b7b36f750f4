package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kursusku_backend/internals/configs"
	helper "kursusku_backend/internals/helpers"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: helper.FiberErrorHandler,
	})
	app.Use("/api", AuthMiddleware())
	app.Get("/api/wallet/balance", func(c *fiber.Ctx) error {
		return helper.Success(c, "", fiber.Map{"balance": 0})
	})
	app.Post("/api/wallet/topup/notification", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope), "body bukan JSON: %s", raw)
	return envelope
}

func TestMissingTokenReturnsEnvelope(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/wallet/balance", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	envelope := decodeEnvelope(t, resp.Body)
	assert.Equal(t, false, envelope["success"])
	assert.NotEmpty(t, envelope["message"])
}

func TestInvalidTokenReturnsEnvelope(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/wallet/balance", nil)
	req.Header.Set("Authorization", "Bearer bukan.token.valid")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	envelope := decodeEnvelope(t, resp.Body)
	assert.Equal(t, false, envelope["success"])
	assert.NotEmpty(t, envelope["message"])
}

func TestWebhookPathSkipsAuth(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("POST", "/api/wallet/topup/notification", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
