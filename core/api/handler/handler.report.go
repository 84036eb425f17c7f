package handler

import (
	"road_watch/core/api/services"

	"github.com/gofiber/fiber/v3"
)

// ReportHandler xử lý các route đọc báo cáo hư hỏng đường
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler tạo mới ReportHandler
func NewReportHandler() *ReportHandler {
	return &ReportHandler{
		reportService: services.NewReportService(),
	}
}

// HandleListAll trả về danh sách báo cáo, mới nhất trước.
// Query params: district, status (optional).
func (h *ReportHandler) HandleListAll(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter := services.ReportFilter{
			District: c.Query("district", ""),
			Status:   c.Query("status", ""),
		}
		reports, err := h.reportService.ListAll(c.Context(), filter)
		HandleResponse(c, reports, err)
		return nil
	})
}
