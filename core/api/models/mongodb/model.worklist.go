package models

// WorklistRow là một dòng của read-model ghép Report với Assignment
// theo reportNumber. Read-model luôn được tính lại từ dữ liệu hiện tại
// của hai collection, không bao giờ được ghi xuống database.
type WorklistRow struct {
	ReportNumber     string `json:"reportNumber"`
	Classification   string `json:"classification"`
	Measurement      string `json:"measurement"`
	Location         string `json:"location"`
	District         string `json:"district"`
	Status           string `json:"status"` // Trạng thái phiếu nếu có, fallback trạng thái báo cáo
	Timestamp        int64  `json:"timestamp"`
	DaysSinceReport  int    `json:"daysSinceReport"` // Chỉ số hiển thị độ trễ xử lý
	DuplicateCounter int    `json:"duplicateCounter"`

	// Phần từ Assignment, rỗng khi báo cáo chưa được phân công
	AssignmentID         string `json:"assignmentId,omitempty"`
	AssignmentNumber     string `json:"assignmentNumber,omitempty"`
	AssignedTo           string `json:"assignedTo,omitempty"`
	SiteInspectionReport string `json:"siteInspectionReport,omitempty"`
	OriginalFileName     string `json:"originalFileName,omitempty"`
	AccomplishmentDate   int64  `json:"accomplishmentDate,omitempty"`
	Remarks              string `json:"remarks,omitempty"`
	Archive              bool   `json:"archive"`
}
