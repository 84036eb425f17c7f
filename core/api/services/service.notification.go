package services

import (
	"context"
	"errors"
	"time"

	models "road_watch/core/api/models/mongodb"
	"road_watch/core/common"
	"road_watch/core/global"
	"road_watch/core/logger"
	"road_watch/core/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationService là cấu trúc chứa các phương thức liên quan đến thông báo.
// Mỗi thông báo được ghi xuống database (backlog cho REST) rồi đẩy qua bus
// tới kênh trực tiếp. Kênh trực tiếp là at-most-once, backlog là nguồn sự thật.
type NotificationService struct {
	*BaseServiceMongoImpl[models.Notification]
	bus *realtime.Bus
}

// NewNotificationService tạo mới NotificationService
func NewNotificationService(bus *realtime.Bus) *NotificationService {
	notificationCollection := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Notifications)
	return &NotificationService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Notification](notificationCollection),
		bus:                  bus,
	}
}

// Notify ghi một thông báo mới và đẩy qua kênh trực tiếp cho các người nhận.
// Ghi database thất bại thì trả lỗi; đẩy kênh trực tiếp thất bại chỉ log warn,
// người nhận vẫn thấy thông báo qua backlog REST.
func (s *NotificationService) Notify(ctx context.Context, entityID, message string, recipients []primitive.ObjectID) (models.Notification, error) {
	var zero models.Notification

	if len(recipients) == 0 {
		return zero, nil
	}

	notification := models.Notification{
		EntityID:   entityID,
		Message:    message,
		Recipients: recipients,
		IsReadBy:   []models.ReadReceipt{},
	}

	created, err := s.InsertOne(ctx, notification)
	if err != nil {
		return zero, err
	}

	userIDs := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		userIDs = append(userIDs, recipient.Hex())
	}

	event := realtime.Event{
		EntityID:  created.EntityID,
		Message:   created.Message,
		CreatedAt: created.CreatedAt,
	}
	if err := s.bus.Publish(ctx, userIDs, event); err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("entity_id", entityID).
			Warn("Failed to publish notification event, backlog still persisted")
	}

	return created, nil
}

// FetchAll trả về backlog thông báo của một user, mới nhất trước,
// kèm số lượng chưa đọc suy ra từ isReadBy.
func (s *NotificationService) FetchAll(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, int, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	notifications, err := s.Find(ctx, bson.M{"recipients": userID}, opts)
	if err != nil {
		return nil, 0, err
	}
	return notifications, models.CountUnread(notifications, userID), nil
}

// MarkRead đánh dấu một thông báo là đã đọc bởi user. Idempotent:
// gọi lại trên thông báo đã đọc không thêm receipt mới, không trả lỗi.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID primitive.ObjectID) (models.Notification, error) {
	var zero models.Notification

	// Filter loại trừ trường hợp đã có receipt của user này,
	// nên $push không bao giờ tạo receipt trùng
	filter := bson.M{
		"_id":             notificationID,
		"recipients":      userID,
		"isReadBy.userId": bson.M{"$ne": userID},
	}
	update := &UpdateData{
		Push: map[string]interface{}{
			"isReadBy": models.ReadReceipt{
				UserID: userID,
				ReadAt: time.Now().UnixMilli(),
			},
		},
	}

	// Dùng FindOneAndUpdate vì filter tự vô hiệu sau khi push receipt
	updated, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Không khớp filter: hoặc đã đọc rồi (idempotent, trả bản ghi hiện tại),
	// hoặc thông báo không tồn tại / không thuộc user này
	return s.FindOne(ctx, bson.M{"_id": notificationID, "recipients": userID}, nil)
}
