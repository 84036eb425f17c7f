package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment là phiếu phân công xử lý một báo cáo hư hỏng đường.
// Mỗi reportNumber có tối đa một phiếu (unique index), phiếu bị xóa hẳn
// khi quay về Submitted nên không cần phân biệt active/inactive.
// Archive=true khi và chỉ khi phiếu đã đóng ở Completed/Rejected
// kèm biên bản nghiệm thu đã upload thành công.
type Assignment struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReportNumber     string             `json:"reportNumber" bson:"reportNumber" index:"unique"`
	AssignmentNumber string             `json:"assignmentNumber" bson:"assignmentNumber,omitempty" index:"unique,sparse"`
	AssignedTo       string             `json:"assignedTo" bson:"assignedTo,omitempty" index:"single:1"` // Employee id hex, rỗng = chưa phân công
	Status           string             `json:"status" bson:"status" index:"single:1"`
	Archive          bool               `json:"archive" bson:"archive" index:"single:1"`

	// Các field chỉ được set khi đóng phiếu (Completed/Rejected)
	SiteInspectionReport string `json:"siteInspectionReport,omitempty" bson:"siteInspectionReport,omitempty"` // Tên file đã lưu trên server
	OriginalFileName     string `json:"originalFileName,omitempty" bson:"originalFileName,omitempty"`
	AccomplishmentDate   int64  `json:"accomplishmentDate,omitempty" bson:"accomplishmentDate,omitempty"`
	Remarks              string `json:"remarks,omitempty" bson:"remarks,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// HasAssignee kiểm tra phiếu đã có người được phân công chưa
func (a *Assignment) HasAssignee() bool {
	return a.AssignedTo != ""
}
