package main

import (
	"context"

	"road_watch/config"
	models "road_watch/core/api/models/mongodb"
	"road_watch/core/database"
	"road_watch/core/global"

	"github.com/sirupsen/logrus"
)

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Reports = "reports"
	global.MongoDB_ColNames.Assignments = "assignments"
	global.MongoDB_ColNames.Employees = "employees"
	global.MongoDB_ColNames.Notifications = "notifications"
	global.MongoDB_ColNames.Counters = "counters"
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo database và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Reports), models.Report{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Assignments), models.Assignment{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Employees), models.Employee{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Notifications), models.Notification{})
	logrus.Info("Created indexes for collections")
}
