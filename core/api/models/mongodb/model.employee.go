package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee là nhân sự phòng kỹ thuật. Subsystem này chỉ đọc,
// việc tạo/sửa tài khoản thuộc module quản trị nhân sự.
// Position quyết định khả năng được phân công (district engineer)
// và quyền chỉnh sửa field assignedTo (nhóm ngoài pool phân công).
type Employee struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName string             `json:"fullName" bson:"fullName"`
	Email    string             `json:"email" bson:"email,omitempty" index:"unique,sparse"`
	Position string             `json:"position" bson:"position" index:"single:1"`
	Role     string             `json:"role" bson:"role"`
	District string             `json:"district" bson:"district,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
