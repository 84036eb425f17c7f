package handler

import (
	"road_watch/core/api/dto"
	"road_watch/core/api/services"
	"road_watch/core/utility"

	"github.com/gofiber/fiber/v3"
)

// NotificationHandler xử lý backlog thông báo qua REST.
// Kênh trực tiếp (websocket) nằm ở core/realtime, không đi qua handler này.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler tạo mới NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// HandleList trả về backlog thông báo của user hiện tại, mới nhất trước,
// kèm unread count suy ra từ isReadBy
func (h *NotificationHandler) HandleList(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		userID, err := GetUserID(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		notifications, unread, err := h.notificationService.FetchAll(c.Context(), userID)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		items := make([]dto.NotificationItem, 0, len(notifications))
		for i := range notifications {
			n := &notifications[i]
			items = append(items, dto.NotificationItem{
				ID:        utility.ObjectID2String(n.ID),
				EntityID:  n.EntityID,
				Message:   n.Message,
				CreatedAt: n.CreatedAt,
				Read:      n.IsReadByUser(userID),
			})
		}

		HandleResponse(c, dto.NotificationListOutput{
			Items:       items,
			UnreadCount: unread,
		}, nil)
		return nil
	})
}

// HandleMarkOne đánh dấu một thông báo là đã đọc. Idempotent.
func (h *NotificationHandler) HandleMarkOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		userID, err := GetUserID(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		id, err := GetIDParam(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		notification, err := h.notificationService.MarkRead(c.Context(), id, userID)
		HandleResponse(c, notification, err)
		return nil
	})
}
