package dto

// NotificationItem là thông báo trả về cho FE, kèm trạng thái đọc
// đã tính sẵn cho user đang đăng nhập để FE không phải duyệt isReadBy.
type NotificationItem struct {
	ID        string `json:"id"`
	EntityID  string `json:"entityId"` // reportNumber để FE điều hướng tới worklist
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
	Read      bool   `json:"read"`
}

// NotificationListOutput là kết quả fetch backlog thông báo.
// UnreadCount luôn được suy ra từ isReadBy tại thời điểm fetch.
type NotificationListOutput struct {
	Items       []NotificationItem `json:"items"`
	UnreadCount int                `json:"unreadCount"`
}
