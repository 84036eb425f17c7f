// Package dto định nghĩa cấu trúc dữ liệu request giữa Frontend và Backend.
package dto

// AssignmentCreateInput dùng khi phân công một báo cáo lần đầu.
// Phiếu được tạo lazy: chỉ tồn tại từ lúc báo cáo có người xử lý.
// Lưu ý: KHÔNG gửi assignmentNumber - Backend tự sinh từ bộ đếm.
type AssignmentCreateInput struct {
	ReportNumber string `json:"reportNumber" validate:"required"`            // Business key của báo cáo
	AssignedTo   string `json:"assignedTo" validate:"required,object_id"`    // Employee id được phân công
	Status       string `json:"status,omitempty" validate:"omitempty"`       // Optional, mặc định Submitted
}

// AssignmentUpdateInput dùng khi đổi trạng thái hoặc đổi người được phân công.
// Các field đều optional, chỉ field có mặt mới được cập nhật.
// Lưu ý: chuyển sang Completed/Rejected KHÔNG đi qua endpoint này
// mà phải qua upload-report (yêu cầu file + remarks).
type AssignmentUpdateInput struct {
	AssignedTo *string `json:"assignedTo,omitempty" validate:"omitempty,object_id"`
	Status     *string `json:"status,omitempty"`
}

// AssignmentUploadInput là phần form field đi kèm file trong request
// multipart đóng phiếu (upload-report). File nằm ở field "report".
type AssignmentUploadInput struct {
	Status  string `form:"status" validate:"required"`             // Completed hoặc Rejected
	UserID  string `form:"userId" validate:"required,object_id"`   // Actor thực hiện thao tác
	Remarks string `form:"remarks" validate:"required,no_xss"`     // Ghi chú nghiệm thu, bắt buộc
}
