package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReadReceipt ghi nhận một người nhận đã đọc thông báo
type ReadReceipt struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	ReadAt int64              `json:"readAt" bson:"readAt"`
}

// Notification là thông báo sinh ra khi phiếu phân công thay đổi.
// Một thông báo có thể có nhiều người nhận, mỗi người đọc độc lập qua IsReadBy.
// Số lượng chưa đọc luôn được suy ra từ IsReadBy, không lưu riêng.
// Thông báo không bao giờ bị xóa, chỉ được append read receipt.
type Notification struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	EntityID   string               `json:"entityId" bson:"entityId" index:"single:1"` // reportNumber của báo cáo liên quan
	Message    string               `json:"message" bson:"message"`
	Recipients []primitive.ObjectID `json:"recipients" bson:"recipients" index:"single:1"`
	IsReadBy   []ReadReceipt        `json:"isReadBy" bson:"isReadBy"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// IsReadByUser kiểm tra user đã đọc thông báo này chưa
func (n *Notification) IsReadByUser(userID primitive.ObjectID) bool {
	for _, receipt := range n.IsReadBy {
		if receipt.UserID == userID {
			return true
		}
	}
	return false
}

// CountUnread đếm số thông báo mà userID chưa đọc.
// Đây là cách duy nhất hệ thống tính unread count.
func CountUnread(notifications []Notification, userID primitive.ObjectID) int {
	count := 0
	for i := range notifications {
		if !notifications[i].IsReadByUser(userID) {
			count++
		}
	}
	return count
}
