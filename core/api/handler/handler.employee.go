package handler

import (
	"road_watch/core/api/services"

	"github.com/gofiber/fiber/v3"
)

// EmployeeHandler xử lý các route đọc roster nhân sự
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler tạo mới EmployeeHandler
func NewEmployeeHandler() *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: services.NewEmployeeService(),
	}
}

// HandleListAll trả về danh sách nhân sự.
// Query param assignable=true chỉ trả về pool có thể được phân công.
func (h *EmployeeHandler) HandleListAll(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		if c.Query("assignable", "") == "true" {
			employees, err := h.employeeService.ListAssignable(c.Context())
			HandleResponse(c, employees, err)
			return nil
		}
		employees, err := h.employeeService.ListAll(c.Context())
		HandleResponse(c, employees, err)
		return nil
	})
}
