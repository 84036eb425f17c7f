package lifecycle

import "strings"

// PositionDistrictEngineer là chức danh của nhóm nhân sự được phân công xử lý hiện trường
const PositionDistrictEngineer = "district engineer"

// Capability gom các quyền thao tác của một actor trên phiếu phân công.
// Handler và FE dùng chung predicate này thay vì rải điều kiện boolean khắp nơi.
type Capability struct {
	CanAssign       bool // Được phép chỉnh sửa field assignedTo
	CanTransition   bool // Được phép đổi trạng thái phiếu
	CanViewArchived bool // Được phép xem danh sách phiếu đã lưu trữ
}

// IsAssignableEngineer kiểm tra actor có thuộc nhóm được phân công không.
// Nhóm này là các kỹ sư địa bàn, loại trừ tài khoản quản trị.
func IsAssignableEngineer(position, role string) bool {
	return strings.Contains(strings.ToLower(position), PositionDistrictEngineer) &&
		!strings.EqualFold(role, "admin")
}

// CapabilitiesFor tính tập quyền theo chức danh và vai trò của actor.
// Field assignedTo chỉ được chỉnh bởi người ngoài nhóm được phân công.
func CapabilitiesFor(position, role string) Capability {
	assignable := IsAssignableEngineer(position, role)
	return Capability{
		CanAssign:       !assignable,
		CanTransition:   true,
		CanViewArchived: !assignable,
	}
}
