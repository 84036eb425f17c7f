package models

// Counter là bộ đếm tuần tự lưu trong MongoDB,
// dùng sinh số phiếu phân công (assignmentNumber) qua findOneAndUpdate $inc.
type Counter struct {
	ID  string `json:"id" bson:"_id"` // Tên bộ đếm, ví dụ: "assignment_number"
	Seq int64  `json:"seq" bson:"seq"`
}
