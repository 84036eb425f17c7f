// Package lifecycle chứa luật chuyển trạng thái của phiếu phân công xử lý
// báo cáo hư hỏng đường. Package này thuần logic, không gọi database,
// để handler và service dùng chung một nguồn luật duy nhất.
package lifecycle

import (
	"fmt"

	"road_watch/core/common"
)

// Status là trạng thái xử lý của một báo cáo / phiếu phân công
type Status string

const (
	StatusSubmitted  Status = "Submitted"
	StatusAccepted   Status = "Accepted"
	StatusInProgress Status = "In-progress"
	StatusCompleted  Status = "Completed"
	StatusRejected   Status = "Rejected"
)

// Thông báo hiển thị cho người dùng khi vi phạm guard.
// FE hiển thị nguyên văn nên không được đổi nội dung.
const (
	MsgAssignFirst    = "Please assign someone first."
	MsgArchivedLocked = "Archived assignments can no longer be modified."
	MsgUploadRequired = "A site inspection report and remarks are required to close this assignment."
)

// allStatuses dùng cho parse và validate input
var allStatuses = []Status{
	StatusSubmitted,
	StatusAccepted,
	StatusInProgress,
	StatusCompleted,
	StatusRejected,
}

// ParseStatus chuyển chuỗi thành Status, lỗi nếu không phải trạng thái hợp lệ
func ParseStatus(s string) (Status, error) {
	for _, status := range allStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", common.NewError(
		common.ErrCodeValidationInput,
		fmt.Sprintf("Unknown status %q", s),
		common.StatusBadRequest,
		nil,
	)
}

// IsTerminal kiểm tra trạng thái kết thúc (không còn chuyển tiếp được nữa)
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusRejected
}

// forwardTable là bảng chuyển trạng thái tiến, không có đường lùi.
// Quay về Submitted chỉ đi qua thao tác unassign (xóa phiếu), không nằm trong bảng.
var forwardTable = map[Status][]Status{
	StatusSubmitted:  {StatusAccepted},
	StatusAccepted:   {StatusInProgress},
	StatusInProgress: {StatusCompleted, StatusRejected},
	StatusCompleted:  {},
	StatusRejected:   {},
}

// LegalNextStatuses trả về tập trạng thái kế tiếp hợp lệ.
// Mọi trạng thái sau Submitted đều yêu cầu đã có người được phân công,
// nên khi chưa có assignee tập trả về luôn rỗng.
func LegalNextStatuses(current Status, hasAssignee bool) []Status {
	if !hasAssignee {
		return []Status{}
	}
	next, ok := forwardTable[current]
	if !ok {
		return []Status{}
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// RequiresUpload cho biết trạng thái đích có yêu cầu upload biên bản nghiệm thu không
func RequiresUpload(target Status) bool {
	return IsTerminal(target)
}

// RequiresAssignee cho biết trạng thái đích có yêu cầu assignee không
func RequiresAssignee(target Status) bool {
	return target != StatusSubmitted
}

// ValidateTransition kiểm tra một yêu cầu chuyển trạng thái trước khi chạm vào store.
// Trả về guard error với message hiển thị được cho người dùng; nil nghĩa là hợp lệ.
// Lưu ý: target == Submitted không đi qua hàm này (đó là thao tác unassign riêng).
func ValidateTransition(current, target Status, hasAssignee, archived bool) error {
	if archived {
		return common.NewConflictError(MsgArchivedLocked)
	}

	if RequiresAssignee(target) && !hasAssignee {
		return common.NewGuardError(MsgAssignFirst)
	}

	for _, legal := range forwardTable[current] {
		if legal == target {
			return nil
		}
	}

	return common.NewGuardError(
		fmt.Sprintf("Cannot change status from %s to %s.", current, target),
	)
}
