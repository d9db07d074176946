package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func TestRequestLogger_NivelSegunEstado(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewWithWriter(&buf, "debug")))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/falta", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/falla", func(c *fiber.Ctx) error { return errors.New("db caída") })

	cases := []struct {
		path   string
		status int
		level  string
	}{
		{"/ok?q=cola", http.StatusOK, "info"},
		{"/falta", http.StatusNotFound, "warn"},
		{"/falla", http.StatusInternalServerError, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			buf.Reset()
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.level, entry["level"])
			assert.Equal(t, "HTTP request", entry["message"])
			assert.Equal(t, float64(tc.status), entry["status"])
			assert.Equal(t, http.MethodGet, entry["method"])
		})
	}
}

func TestRequestLogger_RegistraQuery(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewWithWriter(&buf, "info")))
	app.Get("/productos", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/productos?role=vendedor", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/productos", entry["path"])
	assert.Equal(t, "role=vendedor", entry["query"])
	assert.NotContains(t, entry, "user_id")
}
