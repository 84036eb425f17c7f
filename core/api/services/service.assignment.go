package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"road_watch/core/api/dto"
	models "road_watch/core/api/models/mongodb"
	"road_watch/core/common"
	"road_watch/core/global"
	"road_watch/core/lifecycle"
	"road_watch/core/logger"
	"road_watch/core/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// assignmentCounterID là tên bộ đếm sinh số phiếu phân công
const assignmentCounterID = "assignment_number"

// AssignmentService điều phối vòng đời phiếu phân công: phân công,
// chuyển trạng thái, đóng phiếu kèm biên bản, lưu trữ và khôi phục.
// Mọi commit thành công đều cập nhật bản sao trạng thái trên báo cáo
// và phát thông báo cho người được phân công.
type AssignmentService struct {
	*BaseServiceMongoImpl[models.Assignment]
	counters      *BaseServiceMongoImpl[models.Counter]
	reports       *ReportService
	employees     *EmployeeService
	notifications *NotificationService
	storage       *FileStorage
}

// NewAssignmentService tạo mới AssignmentService
func NewAssignmentService(notifications *NotificationService, storage *FileStorage) *AssignmentService {
	assignmentCollection := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Assignments)
	counterCollection := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Counters)
	return &AssignmentService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Assignment](assignmentCollection),
		counters:             NewBaseServiceMongo[models.Counter](counterCollection),
		reports:              NewReportService(),
		employees:            NewEmployeeService(),
		notifications:        notifications,
		storage:              storage,
	}
}

// nextAssignmentNumber sinh số phiếu kế tiếp từ bộ đếm persistent.
// findOneAndUpdate với $inc + upsert là atomic nên số không bao giờ trùng,
// kể cả khi nhiều instance cùng tạo phiếu.
func (s *AssignmentService) nextAssignmentNumber(ctx context.Context) (string, error) {
	update := &UpdateData{
		Inc: map[string]interface{}{"seq": int64(1)},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	counter, err := s.counters.FindOneAndUpdate(ctx, bson.M{"_id": assignmentCounterID}, update, opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ASG-%06d", counter.Seq), nil
}

// guardReassignable chặn đổi người trên phiếu đã lưu trữ hoặc đã đóng.
// Phiếu kết thúc nhưng chưa lưu trữ (sau khi Unarchive) vẫn là phiếu đã đóng:
// forwardTable không còn lối ra, gán người mới chỉ tạo thông báo chết.
func guardReassignable(assignment *models.Assignment) error {
	if assignment.Archive {
		return common.NewConflictError(lifecycle.MsgArchivedLocked)
	}
	if lifecycle.IsTerminal(lifecycle.Status(assignment.Status)) {
		return common.NewGuardError(fmt.Sprintf(
			"Report %s is already %s and cannot be reassigned.",
			assignment.ReportNumber, assignment.Status,
		))
	}
	return nil
}

// FindByReportNumber tìm phiếu phân công theo business key của báo cáo
func (s *AssignmentService) FindByReportNumber(ctx context.Context, reportNumber string) (models.Assignment, error) {
	return s.FindOne(ctx, bson.M{"reportNumber": reportNumber}, nil)
}

// ListAll trả về danh sách phiếu phân công, mới nhất trước.
// includeArchived=false lọc bỏ các phiếu đã lưu trữ.
func (s *AssignmentService) ListAll(ctx context.Context, includeArchived bool) ([]models.Assignment, error) {
	filter := bson.M{}
	if !includeArchived {
		filter["archive"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// Assign phân công một báo cáo cho một kỹ sư địa bàn.
// Phiếu được tạo lazy nếu chưa có; nếu đã có thì đổi người (giữ nguyên
// trạng thái). Phiếu đã lưu trữ không được đụng vào.
func (s *AssignmentService) Assign(ctx context.Context, input *dto.AssignmentCreateInput) (models.Assignment, error) {
	var zero models.Assignment

	report, err := s.reports.FindByReportNumber(ctx, input.ReportNumber)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.NewGuardError(
				fmt.Sprintf("Report %s does not exist.", input.ReportNumber),
			)
		}
		return zero, err
	}

	employee, err := s.employees.FindAssignable(ctx, utility.String2ObjectID(input.AssignedTo))
	if err != nil {
		return zero, err
	}

	existing, err := s.FindByReportNumber(ctx, input.ReportNumber)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Đã có phiếu: đổi người, giữ nguyên trạng thái
	if err == nil {
		if err := guardReassignable(&existing); err != nil {
			return zero, err
		}
		updated, err := s.UpdateById(ctx, existing.ID, bson.M{"assignedTo": input.AssignedTo})
		if err != nil {
			return zero, err
		}
		s.notifyAssignee(ctx, employee.ID, updated.ReportNumber,
			fmt.Sprintf("Report %s has been assigned to you.", updated.ReportNumber))
		return updated, nil
	}

	// Tạo phiếu mới
	status := lifecycle.StatusSubmitted
	if input.Status != "" {
		parsed, err := lifecycle.ParseStatus(input.Status)
		if err != nil {
			return zero, err
		}
		if parsed != lifecycle.StatusSubmitted {
			if err := lifecycle.ValidateTransition(
				lifecycle.Status(report.Status), parsed, true, false,
			); err != nil {
				return zero, err
			}
		}
		status = parsed
	}

	assignmentNumber, err := s.nextAssignmentNumber(ctx)
	if err != nil {
		return zero, err
	}

	created, err := s.InsertOne(ctx, models.Assignment{
		ReportNumber:     input.ReportNumber,
		AssignmentNumber: assignmentNumber,
		AssignedTo:       input.AssignedTo,
		Status:           string(status),
		Archive:          false,
	})
	if err != nil {
		return zero, err
	}

	if created.Status != report.Status {
		if err := s.reports.SetStatus(ctx, created.ReportNumber, status); err != nil {
			return zero, err
		}
	}

	s.notifyAssignee(ctx, employee.ID, created.ReportNumber,
		fmt.Sprintf("Report %s has been assigned to you.", created.ReportNumber))
	return created, nil
}

// Update xử lý đổi người được phân công và/hoặc chuyển trạng thái.
// Chuyển về Submitted là thao tác revert: xóa phiếu và reset báo cáo.
// Chuyển sang trạng thái kết thúc bị chặn, phải đi qua CompleteWithUpload.
func (s *AssignmentService) Update(ctx context.Context, id primitive.ObjectID, input *dto.AssignmentUpdateInput) (models.Assignment, error) {
	var zero models.Assignment

	assignment, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if assignment.Archive {
		return zero, common.NewConflictError(lifecycle.MsgArchivedLocked)
	}

	changes := bson.M{}
	var assignee models.Employee

	if input.AssignedTo != nil {
		if err := guardReassignable(&assignment); err != nil {
			return zero, err
		}
		assignee, err = s.employees.FindAssignable(ctx, utility.String2ObjectID(*input.AssignedTo))
		if err != nil {
			return zero, err
		}
		changes["assignedTo"] = *input.AssignedTo
		assignment.AssignedTo = *input.AssignedTo
	}

	if input.Status != nil {
		target, err := lifecycle.ParseStatus(*input.Status)
		if err != nil {
			return zero, err
		}

		// Revert về Submitted: xóa phiếu, trả báo cáo về hàng chờ
		if target == lifecycle.StatusSubmitted {
			return zero, s.revertToSubmitted(ctx, &assignment)
		}

		if lifecycle.RequiresUpload(target) {
			return zero, common.NewGuardError(lifecycle.MsgUploadRequired)
		}

		if err := lifecycle.ValidateTransition(
			lifecycle.Status(assignment.Status), target,
			assignment.HasAssignee(), assignment.Archive,
		); err != nil {
			return zero, err
		}
		changes["status"] = string(target)
	}

	if len(changes) == 0 {
		return assignment, nil
	}

	updated, err := s.UpdateById(ctx, id, changes)
	if err != nil {
		return zero, err
	}

	if _, changedStatus := changes["status"]; changedStatus {
		if err := s.reports.SetStatus(ctx, updated.ReportNumber, lifecycle.Status(updated.Status)); err != nil {
			return zero, err
		}
		s.notifyAssignee(ctx, utility.String2ObjectID(updated.AssignedTo), updated.ReportNumber,
			fmt.Sprintf("Report %s status changed to %s.", updated.ReportNumber, updated.Status))
	} else if input.AssignedTo != nil {
		s.notifyAssignee(ctx, assignee.ID, updated.ReportNumber,
			fmt.Sprintf("Report %s has been assigned to you.", updated.ReportNumber))
	}

	return updated, nil
}

// revertToSubmitted xóa phiếu và trả báo cáo về trạng thái Submitted
func (s *AssignmentService) revertToSubmitted(ctx context.Context, assignment *models.Assignment) error {
	if err := s.DeleteById(ctx, assignment.ID); err != nil {
		return err
	}
	if err := s.reports.SetStatus(ctx, assignment.ReportNumber, lifecycle.StatusSubmitted); err != nil {
		return err
	}
	if assignment.HasAssignee() {
		s.notifyAssignee(ctx, utility.String2ObjectID(assignment.AssignedTo), assignment.ReportNumber,
			fmt.Sprintf("Report %s has been returned to the submission queue.", assignment.ReportNumber))
	}
	return nil
}

// Unassign hủy phân công một phiếu còn ở Submitted.
// Phiếu đã đi xa hơn Submitted phải revert qua Update trước.
func (s *AssignmentService) Unassign(ctx context.Context, id primitive.ObjectID) error {
	assignment, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if assignment.Archive {
		return common.NewConflictError(lifecycle.MsgArchivedLocked)
	}
	if lifecycle.Status(assignment.Status) != lifecycle.StatusSubmitted {
		return common.NewGuardError(
			fmt.Sprintf("Only assignments still in %s can be removed.", lifecycle.StatusSubmitted),
		)
	}
	return s.revertToSubmitted(ctx, &assignment)
}

// Unarchive khôi phục một phiếu đã lưu trữ. Trạng thái giữ nguyên,
// chỉ cờ archive bị xóa. Idempotent trên phiếu chưa lưu trữ.
func (s *AssignmentService) Unarchive(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var zero models.Assignment

	assignment, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if !assignment.Archive {
		return assignment, nil
	}

	updated, err := s.UpdateById(ctx, id, bson.M{"archive": false})
	if err != nil {
		return zero, err
	}

	if updated.HasAssignee() {
		s.notifyAssignee(ctx, utility.String2ObjectID(updated.AssignedTo), updated.ReportNumber,
			fmt.Sprintf("Assignment %s for report %s has been restored from the archive.",
				updated.AssignmentNumber, updated.ReportNumber))
	}
	return updated, nil
}

// CompleteWithUpload đóng phiếu ở trạng thái kết thúc (Completed/Rejected).
// Đây là đường duy nhất vào trạng thái kết thúc: yêu cầu biên bản nghiệm thu
// PDF và remarks, phiếu bị lưu trữ ngay khi commit.
func (s *AssignmentService) CompleteWithUpload(ctx context.Context, id primitive.ObjectID, fileHeader *multipart.FileHeader, input *dto.AssignmentUploadInput) (models.Assignment, error) {
	var zero models.Assignment

	assignment, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	target, err := lifecycle.ParseStatus(input.Status)
	if err != nil {
		return zero, err
	}
	if !lifecycle.RequiresUpload(target) {
		return zero, common.NewGuardError(
			fmt.Sprintf("Status %s does not close an assignment.", target),
		)
	}
	if err := lifecycle.ValidateTransition(
		lifecycle.Status(assignment.Status), target,
		assignment.HasAssignee(), assignment.Archive,
	); err != nil {
		return zero, err
	}

	// Kiểm tra và lưu file trước khi commit trạng thái
	storedName, err := s.storage.SavePDF(fileHeader)
	if err != nil {
		return zero, err
	}

	changes := bson.M{
		"status":               string(target),
		"archive":              true,
		"siteInspectionReport": storedName,
		"originalFileName":     fileHeader.Filename,
		"accomplishmentDate":   time.Now().UnixMilli(),
		"remarks":              input.Remarks,
	}
	updated, err := s.UpdateById(ctx, id, changes)
	if err != nil {
		// Commit thất bại thì file mồ côi, dọn luôn
		if removeErr := s.storage.Remove(storedName); removeErr != nil {
			logger.GetAppLogger().WithError(removeErr).
				WithField("file", storedName).
				Warn("Failed to clean up orphaned upload")
		}
		return zero, err
	}

	if err := s.reports.SetStatus(ctx, updated.ReportNumber, target); err != nil {
		return zero, err
	}

	// Đóng phiếu là thao tác một chiều, ghi audit log
	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"assignment_number": updated.AssignmentNumber,
		"report_number":     updated.ReportNumber,
		"status":            updated.Status,
		"actor":             input.UserID,
		"file":              storedName,
	}).Info("Assignment closed with inspection report")

	s.notifyAssignee(ctx, utility.String2ObjectID(updated.AssignedTo), updated.ReportNumber,
		fmt.Sprintf("Report %s has been closed as %s.", updated.ReportNumber, updated.Status))
	return updated, nil
}

// OpenInspectionReport mở một biên bản nghiệm thu đã lưu để tải xuống
func (s *AssignmentService) OpenInspectionReport(ctx context.Context, storedName string) (*os.File, error) {
	return s.storage.Open(storedName)
}

// Worklist tính read-model ghép báo cáo với phiếu phân công.
// Luôn tính lại từ dữ liệu hiện tại, không bao giờ ghi xuống database.
func (s *AssignmentService) Worklist(ctx context.Context, includeArchived bool) ([]models.WorklistRow, error) {
	reports, err := s.reports.ListAll(ctx, ReportFilter{})
	if err != nil {
		return nil, err
	}
	assignments, err := s.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}
	return BuildWorklist(reports, assignments, time.Now(), includeArchived), nil
}

// BuildWorklist ghép hai danh sách theo reportNumber thành các dòng worklist.
// Hàm thuần để test không cần database.
func BuildWorklist(reports []models.Report, assignments []models.Assignment, now time.Time, includeArchived bool) []models.WorklistRow {
	byReportNumber := make(map[string]*models.Assignment, len(assignments))
	for i := range assignments {
		byReportNumber[assignments[i].ReportNumber] = &assignments[i]
	}

	rows := make([]models.WorklistRow, 0, len(reports))
	for _, report := range reports {
		row := models.WorklistRow{
			ReportNumber:     report.ReportNumber,
			Classification:   report.Classification,
			Measurement:      report.Measurement,
			Location:         report.Location,
			District:         report.District,
			Status:           report.Status,
			Timestamp:        report.Timestamp,
			DuplicateCounter: report.DuplicateCounter,
			DaysSinceReport:  daysSince(report.Timestamp, now),
		}

		if assignment, ok := byReportNumber[report.ReportNumber]; ok {
			if assignment.Archive && !includeArchived {
				continue
			}
			row.Status = assignment.Status
			row.AssignmentID = assignment.ID.Hex()
			row.AssignmentNumber = assignment.AssignmentNumber
			row.AssignedTo = assignment.AssignedTo
			row.SiteInspectionReport = assignment.SiteInspectionReport
			row.OriginalFileName = assignment.OriginalFileName
			row.AccomplishmentDate = assignment.AccomplishmentDate
			row.Remarks = assignment.Remarks
			row.Archive = assignment.Archive
		}

		rows = append(rows, row)
	}
	return rows
}

// daysSince tính số ngày trọn vẹn từ timestamp (UnixMilli) đến now
func daysSince(timestampMilli int64, now time.Time) int {
	reported := time.UnixMilli(timestampMilli)
	if reported.After(now) {
		return 0
	}
	return int(now.Sub(reported).Hours() / 24)
}

// notifyAssignee phát thông báo cho người được phân công.
// Lỗi thông báo không chặn commit, chỉ log warn.
func (s *AssignmentService) notifyAssignee(ctx context.Context, recipient primitive.ObjectID, reportNumber, message string) {
	if recipient.IsZero() {
		return
	}
	if _, err := s.notifications.Notify(ctx, reportNumber, message, []primitive.ObjectID{recipient}); err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("report_number", reportNumber).
			Warn("Failed to record notification")
	}
}
