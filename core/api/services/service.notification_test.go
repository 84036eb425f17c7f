package services

import (
	"context"
	"errors"
	"testing"
	"time"

	models "road_watch/core/api/models/mongodb"
	"road_watch/core/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNotificationMarkRead_Idempotent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("gọi lần hai không thêm receipt, unread giữ nguyên", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		svc := &NotificationService{
			BaseServiceMongoImpl: NewBaseServiceMongo[models.Notification](mt.Coll),
		}

		userID := primitive.NewObjectID()
		notificationID := primitive.NewObjectID()

		// Bản ghi sau lần đánh dấu đầu tiên: đúng một receipt của user
		afterFirstMark := bson.D{
			{Key: "_id", Value: notificationID},
			{Key: "entityId", Value: "RPT-042"},
			{Key: "message", Value: "Report RPT-042 has been assigned to you."},
			{Key: "recipients", Value: bson.A{userID}},
			{Key: "isReadBy", Value: bson.A{bson.D{
				{Key: "userId", Value: userID},
				{Key: "readAt", Value: time.Now().UnixMilli()},
			}}},
		}

		// Lần một: filter khớp, findAndModify push receipt và trả bản ghi sau update
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: afterFirstMark}))

		first, err := svc.MarkRead(context.Background(), notificationID, userID)
		require.NoError(mt, err)
		require.Len(mt, first.IsReadBy, 1)
		assert.True(mt, first.IsReadByUser(userID))

		// Lần hai: receipt đã tồn tại nên filter loại trừ không khớp nữa
		// (value null), fallback đọc lại bản ghi hiện tại
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, afterFirstMark),
		)

		second, err := svc.MarkRead(context.Background(), notificationID, userID)
		require.NoError(mt, err)
		require.Len(mt, second.IsReadBy, 1, "gọi lại không được thêm receipt")
		assert.Equal(mt, first.IsReadBy[0].UserID, second.IsReadBy[0].UserID)

		// Unread count suy ra từ isReadBy phải giữ nguyên giữa hai lần gọi
		assert.Equal(mt,
			models.CountUnread([]models.Notification{first}, userID),
			models.CountUnread([]models.Notification{second}, userID),
		)
		assert.Zero(mt, models.CountUnread([]models.Notification{second}, userID))
	})

	mt.Run("thông báo không tồn tại trả về not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		svc := &NotificationService{
			BaseServiceMongoImpl: NewBaseServiceMongo[models.Notification](mt.Coll),
		}

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)

		_, err := svc.MarkRead(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.True(mt, errors.Is(err, common.ErrNotFound))
	})
}
