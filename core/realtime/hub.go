// Package realtime cung cấp kênh đẩy thông báo trực tiếp tới phiên làm việc
// của từng user. Giao nhận trên kênh trực tiếp là at-most-once: client rớt
// kết nối thì không replay, backlog được FE lấy lại qua REST khi reconnect.
package realtime

import (
	"encoding/json"
	"sync"

	"road_watch/core/logger"
)

// Event là payload đẩy qua kênh trực tiếp khi có thông báo mới
type Event struct {
	EntityID  string `json:"entityId"` // reportNumber của báo cáo liên quan
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}

// Client là một kết nối websocket đang mở của một user
type Client struct {
	userID string
	send   chan []byte
}

// Receive trả về channel nhận payload đã serialize để ghi xuống websocket
func (c *Client) Receive() <-chan []byte {
	return c.send
}

// Hub quản lý các room theo userId. Một user có thể mở nhiều tab,
// mỗi tab là một Client riêng trong cùng một room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewHub tạo hub mới
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Register thêm một kết nối mới vào room của user
func (h *Hub) Register(userID string, bufferSize int) *Client {
	if bufferSize <= 0 {
		bufferSize = 32
	}
	client := &Client{
		userID: userID,
		send:   make(chan []byte, bufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[userID] = room
	}
	room[client] = struct{}{}
	return client
}

// Unregister gỡ kết nối khỏi room và đóng channel gửi.
// Gọi nhiều lần cho cùng một client là no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.userID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.userID)
	}
	close(client.send)
}

// ConnectionCount trả về số kết nối đang mở của một user
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

// Deliver đẩy event tới mọi kết nối đang mở của user.
// Gửi non-blocking: client nào đầy buffer thì bỏ qua event đó,
// backlog REST sẽ bù lại khi FE fetch.
func (h *Hub) Deliver(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Failed to marshal realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[userID] {
		select {
		case client.send <- payload:
		default:
			logger.GetAppLogger().WithField("user_id", userID).
				Warn("Realtime client buffer full, dropping event")
		}
	}
}
