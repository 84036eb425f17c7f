package main

import (
	"context"
	"time"

	models "road_watch/core/api/models/mongodb"
	"road_watch/core/global"
	"road_watch/core/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InitDefaultData khởi tạo dữ liệu mặc định khi database còn trống.
// Chỉ seed bộ đếm số phiếu; reports và employees do các module khác
// của portal quản lý.
func InitDefaultData() {
	log := logger.GetAppLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counters := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Counters)

	count, err := counters.CountDocuments(ctx, bson.M{"_id": "assignment_number"})
	if err != nil {
		log.WithError(err).Warn("Failed to check assignment counter, it will be created on first use")
		return
	}
	if count > 0 {
		return
	}

	if _, err := counters.InsertOne(ctx, models.Counter{ID: "assignment_number", Seq: 0}); err != nil {
		log.WithError(err).Warn("Failed to seed assignment counter, it will be created on first use")
		return
	}
	log.Info("Seeded assignment number counter")
}
