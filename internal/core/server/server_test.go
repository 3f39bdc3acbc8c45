package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmacart/internal/core/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersMiddleware(t *testing.T) {
	cfg := &config.AppConfig{ServerPort: 8080}
	srv := New(cfg)
	require.NotNil(t, srv.App)

	srv.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	resp, err := srv.App.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))
}

func TestNew_RayIDPassthrough(t *testing.T) {
	cfg := &config.AppConfig{ServerPort: 8080}
	srv := New(cfg)

	srv.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Ray-ID", "ray-123")
	resp, err := srv.App.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "ray-123", resp.Header.Get("X-Ray-ID"))
}
