package realtime

import (
	"time"

	"road_watch/core/logger"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.FastHTTPUpgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS đã được kiểm soát ở middleware, origin check tại đây nới lỏng
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true
	},
}

// StreamHandler trả về fiber handler mở kênh websocket cho một user.
// FE join room bằng query userId; sự kiện được đẩy dạng JSON Event.
// Kênh này không replay: sau reconnect FE phải fetch backlog qua REST.
func StreamHandler(hub *Hub) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Ưu tiên claim từ middleware auth, fallback query cho môi trường dev
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			userID = c.Query("userId")
		}
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing userId")
		}

		err := upgrader.Upgrade(c.RequestCtx(), func(conn *websocket.Conn) {
			defer conn.Close()

			client := hub.Register(userID, 32)
			defer hub.Unregister(client)

			log := logger.GetAppLogger().WithField("user_id", userID)
			log.Debug("Realtime stream opened")
			defer log.Debug("Realtime stream closed")

			// Goroutine đọc để phát hiện client đóng kết nối
			done := make(chan struct{})
			go func() {
				defer close(done)
				for {
					if _, _, err := conn.ReadMessage(); err != nil {
						return
					}
				}
			}()

			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()

			for {
				select {
				case payload, ok := <-client.Receive():
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		})
		if err != nil {
			logger.WithRequest(c).WithError(err).Warn("Websocket upgrade failed")
			return fiber.NewError(fiber.StatusUpgradeRequired, "Websocket upgrade failed")
		}
		return nil
	}
}
