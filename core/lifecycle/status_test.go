package lifecycle

import (
	"errors"
	"testing"

	"road_watch/core/common"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Submitted", "Accepted", "In-progress", "Completed", "Rejected"} {
		status, err := ParseStatus(valid)
		if err != nil {
			t.Errorf("ParseStatus(%q) trả về lỗi: %v", valid, err)
		}
		if string(status) != valid {
			t.Errorf("ParseStatus(%q) = %q", valid, status)
		}
	}

	for _, invalid := range []string{"", "submitted", "InProgress", "Done"} {
		if _, err := ParseStatus(invalid); err == nil {
			t.Errorf("ParseStatus(%q) phải trả về lỗi", invalid)
		}
	}
}

func TestLegalNextStatuses_ForwardOnly(t *testing.T) {
	cases := []struct {
		current Status
		want    []Status
	}{
		{StatusSubmitted, []Status{StatusAccepted}},
		{StatusAccepted, []Status{StatusInProgress}},
		{StatusInProgress, []Status{StatusCompleted, StatusRejected}},
		{StatusCompleted, []Status{}},
		{StatusRejected, []Status{}},
	}

	for _, tc := range cases {
		got := LegalNextStatuses(tc.current, true)
		if len(got) != len(tc.want) {
			t.Errorf("LegalNextStatuses(%s) = %v, muốn %v", tc.current, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("LegalNextStatuses(%s) = %v, muốn %v", tc.current, got, tc.want)
			}
		}
	}
}

func TestLegalNextStatuses_NoAssignee(t *testing.T) {
	// Chưa có người được phân công thì không đi đâu được cả
	for _, current := range []Status{StatusSubmitted, StatusAccepted, StatusInProgress} {
		if got := LegalNextStatuses(current, false); len(got) != 0 {
			t.Errorf("LegalNextStatuses(%s, false) = %v, muốn rỗng", current, got)
		}
	}
}

func TestValidateTransition_AssigneeGuardMessage(t *testing.T) {
	err := ValidateTransition(StatusSubmitted, StatusAccepted, false, false)
	if err == nil {
		t.Fatal("chuyển trạng thái khi chưa phân công phải bị chặn")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("guard error phải là *common.Error, nhận được %T", err)
	}
	if customErr.Message != "Please assign someone first." {
		t.Errorf("message guard = %q, muốn %q", customErr.Message, "Please assign someone first.")
	}
	if customErr.StatusCode != common.StatusUnprocessableEntity {
		t.Errorf("status code = %d, muốn %d", customErr.StatusCode, common.StatusUnprocessableEntity)
	}
}

func TestValidateTransition_ArchivedLocked(t *testing.T) {
	err := ValidateTransition(StatusCompleted, StatusInProgress, true, true)
	if err == nil {
		t.Fatal("phiếu đã lưu trữ phải bị khóa")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("guard error phải là *common.Error, nhận được %T", err)
	}
	if customErr.Message != MsgArchivedLocked {
		t.Errorf("message = %q, muốn %q", customErr.Message, MsgArchivedLocked)
	}
	if customErr.StatusCode != common.StatusConflict {
		t.Errorf("status = %d, muốn %d", customErr.StatusCode, common.StatusConflict)
	}
}

func TestValidateTransition_NoBackward(t *testing.T) {
	backward := []struct{ current, target Status }{
		{StatusAccepted, StatusSubmitted},
		{StatusInProgress, StatusAccepted},
		{StatusCompleted, StatusInProgress},
		{StatusRejected, StatusInProgress},
		{StatusCompleted, StatusRejected},
	}
	for _, tc := range backward {
		if err := ValidateTransition(tc.current, tc.target, true, false); err == nil {
			t.Errorf("chuyển %s -> %s phải bị chặn", tc.current, tc.target)
		}
	}
}

func TestValidateTransition_NoSkipping(t *testing.T) {
	skips := []struct{ current, target Status }{
		{StatusSubmitted, StatusInProgress},
		{StatusSubmitted, StatusCompleted},
		{StatusAccepted, StatusCompleted},
		{StatusAccepted, StatusRejected},
	}
	for _, tc := range skips {
		if err := ValidateTransition(tc.current, tc.target, true, false); err == nil {
			t.Errorf("chuyển nhảy cóc %s -> %s phải bị chặn", tc.current, tc.target)
		}
	}
}

func TestValidateTransition_LegalPath(t *testing.T) {
	legal := []struct{ current, target Status }{
		{StatusSubmitted, StatusAccepted},
		{StatusAccepted, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusRejected},
	}
	for _, tc := range legal {
		if err := ValidateTransition(tc.current, tc.target, true, false); err != nil {
			t.Errorf("chuyển %s -> %s phải hợp lệ, nhận lỗi: %v", tc.current, tc.target, err)
		}
	}
}

func TestRequiresUpload(t *testing.T) {
	if !RequiresUpload(StatusCompleted) || !RequiresUpload(StatusRejected) {
		t.Error("trạng thái kết thúc phải yêu cầu upload biên bản")
	}
	if RequiresUpload(StatusAccepted) || RequiresUpload(StatusInProgress) || RequiresUpload(StatusSubmitted) {
		t.Error("trạng thái chưa kết thúc không được yêu cầu upload")
	}
}

func TestRequiresAssignee(t *testing.T) {
	if RequiresAssignee(StatusSubmitted) {
		t.Error("Submitted không yêu cầu assignee")
	}
	for _, target := range []Status{StatusAccepted, StatusInProgress, StatusCompleted, StatusRejected} {
		if !RequiresAssignee(target) {
			t.Errorf("%s phải yêu cầu assignee", target)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusCompleted) || !IsTerminal(StatusRejected) {
		t.Error("Completed và Rejected là trạng thái kết thúc")
	}
	if IsTerminal(StatusSubmitted) || IsTerminal(StatusAccepted) || IsTerminal(StatusInProgress) {
		t.Error("các trạng thái còn lại không phải kết thúc")
	}
}
