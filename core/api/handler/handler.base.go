// Package handler chứa các handler xử lý request HTTP trong ứng dụng.
// Handler chỉ parse/validate input, kiểm tra quyền và gọi service,
// không chứa business logic.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"

	"road_watch/core/common"
	"road_watch/core/global"
	"road_watch/core/lifecycle"
	"road_watch/core/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc handler với recover để bắt panic.
// Đảm bảo server luôn trả về response cho client, kể cả khi có panic xảy ra.
func SafeHandler(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetAppLogger().WithField("panic", r).Error("Recovered from handler panic")
			debug.PrintStack()

			HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse chuẩn hóa response trả về cho client.
// Format thống nhất: {code, message, data/details, status}.
func HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		// Lỗi chưa phân loại: trả về internal server error
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// ParseRequestBody parse và validate dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return ValidateInput(input)
}

// ValidateInput validate struct input với global validator (struct tag validate)
func ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	return nil
}

// GetIDParam lấy và parse ObjectId từ URI param "id"
func GetIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	idStr := c.Params("id")
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("ID %q không phải ObjectId hợp lệ", idStr),
			common.StatusBadRequest,
			nil,
		)
	}
	return id, nil
}

// GetUserID lấy ObjectId của user hiện tại từ context (do middleware auth gán)
func GetUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return userID, nil
}

// GetCapabilities tính tập quyền của actor hiện tại từ claims trong context
func GetCapabilities(c fiber.Ctx) lifecycle.Capability {
	position, _ := c.Locals("position").(string)
	role, _ := c.Locals("role").(string)
	return lifecycle.CapabilitiesFor(position, role)
}

// ParsePagination lấy page/limit từ query string với giá trị mặc định
func ParsePagination(c fiber.Ctx) (page int64, limit int64) {
	page, _ = strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
