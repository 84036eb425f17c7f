package global

import (
	"road_watch/config"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Reports       string // Tên collection cho báo cáo hư hỏng đường của người dân
	Assignments   string // Tên collection cho phiếu phân công xử lý
	Employees     string // Tên collection cho nhân sự phòng kỹ thuật
	Notifications string // Tên collection cho thông báo
	Counters      string // Tên collection cho bộ đếm sinh số phiếu phân công
}

// Các biến toàn cục
var Validate *validator.Validate                  // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                 // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration            // Cấu hình của server
var MongoDB_ColNames CollectionName               // Tên các collection

// Các Registry
var RegistryCollections = NewRegistry[*mongo.Collection]() // Registry chứa các collections
