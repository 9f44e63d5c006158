package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusServiceUnavailable) })

	for path, want := range map[string]int{"/ok": 200, "/missing": 404, "/boom": 503} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}

	require.Equal(t, 3, logs.Len())
	for _, entry := range logs.All() {
		fields := entry.ContextMap()
		switch fields["path"] {
		case "/ok":
			assert.Equal(t, zapcore.InfoLevel, entry.Level)
		case "/missing":
			assert.Equal(t, zapcore.WarnLevel, entry.Level)
			assert.Contains(t, fields, "error")
		case "/boom":
			assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		}
		assert.NotEmpty(t, fields["request_id"])
	}
}
