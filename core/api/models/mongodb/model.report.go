package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report là báo cáo hư hỏng đường do người dân gửi lên.
// ReportNumber là business key, không đổi sau khi tạo.
// Status là bản sao trạng thái xử lý, chỉ được cập nhật thông qua
// mutation của phiếu phân công, không bao giờ sửa trực tiếp.
type Report struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReportNumber     string             `json:"reportNumber" bson:"reportNumber" index:"unique"`
	Classification   string             `json:"classification" bson:"classification"`
	Measurement      string             `json:"measurement" bson:"measurement"`
	Location         string             `json:"location" bson:"location"`
	District         string             `json:"district" bson:"district" index:"single:1"`
	Status           string             `json:"status" bson:"status" index:"single:1"`
	Timestamp        int64              `json:"timestamp" bson:"timestamp" index:"single:1,order:-1"`
	DuplicateCounter int                `json:"duplicateCounter" bson:"duplicateCounter"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
