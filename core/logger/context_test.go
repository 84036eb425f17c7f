package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequest_RequestID(t *testing.T) {
	require.NoError(t, Init(&LogConfig{Level: "debug", Format: "text", Output: "stdout"}))

	app := fiber.New()
	app.Use(requestid.New())

	var generatedID string
	app.Get("/ping", func(c fiber.Ctx) error {
		entry := WithRequest(c)
		generatedID, _ = entry.Data["request_id"].(string)
		assert.Equal(t, "GET", entry.Data["method"])
		assert.Equal(t, "/ping", entry.Data["path"])
		return c.SendString("ok")
	})

	// Client không gửi header: ID do middleware sinh vẫn phải vào log
	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotEmpty(t, generatedID, "request_id phải có mặt kể cả khi client không gửi header")
	assert.Equal(t, generatedID, resp.Header.Get("X-Request-ID"))
}

func TestWithRequest_ClientSuppliedRequestID(t *testing.T) {
	require.NoError(t, Init(&LogConfig{Level: "debug", Format: "text", Output: "stdout"}))

	app := fiber.New()
	app.Use(requestid.New())

	app.Get("/ping", func(c fiber.Ctx) error {
		entry := WithRequest(c)
		assert.Equal(t, "rid-from-client", entry.Data["request_id"])
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-from-client")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
}
