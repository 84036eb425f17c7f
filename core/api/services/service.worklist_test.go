package services

import (
	"testing"
	"time"

	models "road_watch/core/api/models/mongodb"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildWorklist_JoinOnReportNumber(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	assignmentID := primitive.NewObjectID()

	reports := []models.Report{
		{ReportNumber: "RPT-001", Status: "Accepted", District: "North", Timestamp: now.Add(-48 * time.Hour).UnixMilli()},
		{ReportNumber: "RPT-002", Status: "Submitted", District: "South", Timestamp: now.Add(-2 * time.Hour).UnixMilli()},
	}
	assignments := []models.Assignment{
		{
			ID:               assignmentID,
			ReportNumber:     "RPT-001",
			AssignmentNumber: "ASG-000001",
			AssignedTo:       "64f000000000000000000001",
			Status:           "Accepted",
		},
	}

	rows := BuildWorklist(reports, assignments, now, false)
	assert.Len(t, rows, 2)

	// Dòng có phiếu: mang đủ thông tin phiếu
	assert.Equal(t, "RPT-001", rows[0].ReportNumber)
	assert.Equal(t, assignmentID.Hex(), rows[0].AssignmentID)
	assert.Equal(t, "ASG-000001", rows[0].AssignmentNumber)
	assert.Equal(t, "64f000000000000000000001", rows[0].AssignedTo)
	assert.Equal(t, 2, rows[0].DaysSinceReport)

	// Dòng chưa có phiếu: phần assignment rỗng, status lấy từ báo cáo
	assert.Equal(t, "RPT-002", rows[1].ReportNumber)
	assert.Empty(t, rows[1].AssignmentID)
	assert.Equal(t, "Submitted", rows[1].Status)
	assert.Equal(t, 0, rows[1].DaysSinceReport)
}

func TestBuildWorklist_StatusComesFromAssignment(t *testing.T) {
	// Nếu bản sao trạng thái trên báo cáo lệch, worklist ưu tiên phiếu
	now := time.Now()
	reports := []models.Report{
		{ReportNumber: "RPT-001", Status: "Submitted", Timestamp: now.UnixMilli()},
	}
	assignments := []models.Assignment{
		{ID: primitive.NewObjectID(), ReportNumber: "RPT-001", Status: "In-progress", AssignedTo: "a"},
	}

	rows := BuildWorklist(reports, assignments, now, false)
	assert.Len(t, rows, 1)
	assert.Equal(t, "In-progress", rows[0].Status)
}

func TestBuildWorklist_ArchivedFiltered(t *testing.T) {
	now := time.Now()
	reports := []models.Report{
		{ReportNumber: "RPT-001", Status: "Completed", Timestamp: now.UnixMilli()},
		{ReportNumber: "RPT-002", Status: "Submitted", Timestamp: now.UnixMilli()},
	}
	assignments := []models.Assignment{
		{ID: primitive.NewObjectID(), ReportNumber: "RPT-001", Status: "Completed", Archive: true},
	}

	// Không gồm lưu trữ: dòng RPT-001 bị ẩn
	rows := BuildWorklist(reports, assignments, now, false)
	assert.Len(t, rows, 1)
	assert.Equal(t, "RPT-002", rows[0].ReportNumber)

	// Gồm lưu trữ: thấy cả hai, dòng lưu trữ mang cờ archive
	rows = BuildWorklist(reports, assignments, now, true)
	assert.Len(t, rows, 2)
	assert.True(t, rows[0].Archive)
}

func TestBuildWorklist_EmptyInputs(t *testing.T) {
	rows := BuildWorklist(nil, nil, time.Now(), true)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysSince(now.UnixMilli(), now))
	assert.Equal(t, 0, daysSince(now.Add(-23*time.Hour).UnixMilli(), now))
	assert.Equal(t, 1, daysSince(now.Add(-25*time.Hour).UnixMilli(), now))
	assert.Equal(t, 7, daysSince(now.Add(-7*24*time.Hour).UnixMilli(), now))
	// Timestamp tương lai (đồng hồ lệch) không trả số âm
	assert.Equal(t, 0, daysSince(now.Add(time.Hour).UnixMilli(), now))
}
