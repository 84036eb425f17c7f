package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// WithRequest trả về logger entry với thông tin request từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})

	// Middleware requestid lưu ID dưới key riêng, đọc qua FromContext
	if requestID := requestid.FromContext(c); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	return entry
}
