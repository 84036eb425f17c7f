package lifecycle

import "testing"

func TestIsAssignableEngineer(t *testing.T) {
	cases := []struct {
		position string
		role     string
		want     bool
	}{
		{"district engineer", "user", true},
		{"District Engineer", "user", true},
		{"senior district engineer", "user", true},
		{"district engineer", "admin", false}, // admin bị loại khỏi pool
		{"civil engineer", "user", false},
		{"department head", "user", false},
		{"", "user", false},
	}

	for _, tc := range cases {
		got := IsAssignableEngineer(tc.position, tc.role)
		if got != tc.want {
			t.Errorf("IsAssignableEngineer(%q, %q) = %v, muốn %v", tc.position, tc.role, got, tc.want)
		}
	}
}

func TestCapabilitiesFor(t *testing.T) {
	// Kỹ sư địa bàn: không được chỉnh assignedTo, không xem lưu trữ
	engineer := CapabilitiesFor("district engineer", "user")
	if engineer.CanAssign {
		t.Error("district engineer không được chỉnh assignedTo")
	}
	if engineer.CanViewArchived {
		t.Error("district engineer không được xem danh sách lưu trữ")
	}
	if !engineer.CanTransition {
		t.Error("district engineer phải được đổi trạng thái")
	}

	// Trưởng phòng: toàn quyền
	head := CapabilitiesFor("department head", "user")
	if !head.CanAssign || !head.CanViewArchived || !head.CanTransition {
		t.Errorf("department head phải có đủ quyền, nhận %+v", head)
	}

	// Admin giữ quyền chỉnh assignedTo kể cả khi position là district engineer
	admin := CapabilitiesFor("district engineer", "admin")
	if !admin.CanAssign {
		t.Error("admin phải được chỉnh assignedTo")
	}
}
