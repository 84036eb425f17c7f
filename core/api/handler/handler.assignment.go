package handler

import (
	"errors"
	"fmt"

	"road_watch/core/api/dto"
	"road_watch/core/api/services"
	"road_watch/core/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// reportFileField là tên field chứa file trong request multipart đóng phiếu
const reportFileField = "report"

// AssignmentHandler xử lý các route vòng đời phiếu phân công
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler tạo mới AssignmentHandler
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// HandleListAll trả về danh sách phiếu phân công.
// Phiếu đã lưu trữ chỉ hiển thị cho actor có quyền xem lưu trữ
// và khi query param archived=true.
func (h *AssignmentHandler) HandleListAll(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		capability := GetCapabilities(c)
		includeArchived := capability.CanViewArchived && c.Query("archived", "") == "true"

		assignments, err := h.assignmentService.ListAll(c.Context(), includeArchived)
		HandleResponse(c, assignments, err)
		return nil
	})
}

// HandleWorklist trả về read-model ghép báo cáo với phiếu phân công
func (h *AssignmentHandler) HandleWorklist(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		capability := GetCapabilities(c)
		includeArchived := capability.CanViewArchived && c.Query("archived", "") == "true"

		rows, err := h.assignmentService.Worklist(c.Context(), includeArchived)
		HandleResponse(c, rows, err)
		return nil
	})
}

// HandleCreate phân công một báo cáo. Chỉ actor ngoài pool phân công
// (không phải district engineer) mới được phép.
func (h *AssignmentHandler) HandleCreate(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		if !GetCapabilities(c).CanAssign {
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, common.MsgForbidden, common.StatusForbidden, nil,
			))
			return nil
		}

		input := new(dto.AssignmentCreateInput)
		if err := ParseRequestBody(c, input); err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		assignment, err := h.assignmentService.Assign(c.Context(), input)
		HandleResponse(c, assignment, err)
		return nil
	})
}

// HandleUpdate đổi trạng thái và/hoặc đổi người được phân công.
// Đổi người yêu cầu quyền CanAssign; đổi trạng thái thì mọi actor
// đã đăng nhập đều được (guard nằm ở service).
func (h *AssignmentHandler) HandleUpdate(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := GetIDParam(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.AssignmentUpdateInput)
		if err := ParseRequestBody(c, input); err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		if input.AssignedTo != nil && !GetCapabilities(c).CanAssign {
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, common.MsgForbidden, common.StatusForbidden, nil,
			))
			return nil
		}

		assignment, err := h.assignmentService.Update(c.Context(), id, input)
		HandleResponse(c, assignment, err)
		return nil
	})
}

// HandleDelete hủy phân công một phiếu còn ở Submitted
func (h *AssignmentHandler) HandleDelete(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		if !GetCapabilities(c).CanAssign {
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, common.MsgForbidden, common.StatusForbidden, nil,
			))
			return nil
		}

		id, err := GetIDParam(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		err = h.assignmentService.Unassign(c.Context(), id)
		HandleResponse(c, nil, err)
		return nil
	})
}

// HandleUnarchive khôi phục một phiếu đã lưu trữ
func (h *AssignmentHandler) HandleUnarchive(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		if !GetCapabilities(c).CanViewArchived {
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, common.MsgForbidden, common.StatusForbidden, nil,
			))
			return nil
		}

		id, err := GetIDParam(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		assignment, err := h.assignmentService.Unarchive(c.Context(), id)
		HandleResponse(c, assignment, err)
		return nil
	})
}

// HandleUploadReport đóng phiếu ở trạng thái kết thúc kèm biên bản nghiệm thu.
// Request multipart: file ở field "report", các field form status/userId/remarks.
func (h *AssignmentHandler) HandleUploadReport(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := GetIDParam(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		input := &dto.AssignmentUploadInput{
			Status:  c.FormValue("status"),
			UserID:  c.FormValue("userId"),
			Remarks: c.FormValue("remarks"),
		}
		if err := ValidateInput(input); err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		fileHeader, err := c.FormFile(reportFileField)
		if err != nil {
			HandleResponse(c, nil, common.NewUploadError("A site inspection report file is required."))
			return nil
		}

		assignment, err := h.assignmentService.CompleteWithUpload(c.Context(), id, fileHeader, input)
		HandleResponse(c, assignment, err)
		return nil
	})
}

// HandleDownloadReport tải xuống một biên bản nghiệm thu đã upload.
// Tên file hiển thị là tên gốc lưu trên phiếu, fallback về tên lưu trữ.
func (h *AssignmentHandler) HandleDownloadReport(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		fileID := c.Params("fileId")
		if fileID == "" {
			HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		file, err := h.assignmentService.OpenInspectionReport(c.Context(), fileID)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		downloadName := fileID
		assignment, err := h.assignmentService.FindOne(c.Context(),
			bson.M{"siteInspectionReport": fileID}, nil)
		if err == nil && assignment.OriginalFileName != "" {
			downloadName = assignment.OriginalFileName
		} else if err != nil && !errors.Is(err, common.ErrNotFound) {
			HandleResponse(c, nil, err)
			return nil
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
		return c.SendStream(file, int(stat.Size()))
	})
}
