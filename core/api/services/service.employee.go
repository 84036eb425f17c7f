package services

import (
	"context"
	"fmt"

	models "road_watch/core/api/models/mongodb"
	"road_watch/core/common"
	"road_watch/core/global"
	"road_watch/core/lifecycle"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EmployeeService là cấu trúc chứa các phương thức liên quan đến nhân sự.
// Subsystem này chỉ đọc roster, không tạo/sửa tài khoản.
type EmployeeService struct {
	*BaseServiceMongoImpl[models.Employee]
}

// NewEmployeeService tạo mới EmployeeService
func NewEmployeeService() *EmployeeService {
	employeeCollection := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Employees)
	return &EmployeeService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Employee](employeeCollection),
	}
}

// ListAll trả về toàn bộ roster, sắp theo tên
func (s *EmployeeService) ListAll(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}})
	return s.Find(ctx, bson.M{}, opts)
}

// ListAssignable trả về pool nhân sự có thể được phân công:
// chức danh chứa "district engineer", loại trừ tài khoản admin.
func (s *EmployeeService) ListAssignable(ctx context.Context) ([]models.Employee, error) {
	filter := bson.M{
		"position": bson.M{
			"$regex":   lifecycle.PositionDistrictEngineer,
			"$options": "i",
		},
		"role": bson.M{"$ne": "admin"},
	}
	opts := options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// FindAssignable tìm một nhân sự theo id và kiểm tra thuộc pool phân công
func (s *EmployeeService) FindAssignable(ctx context.Context, id primitive.ObjectID) (models.Employee, error) {
	var zero models.Employee

	employee, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if !lifecycle.IsAssignableEngineer(employee.Position, employee.Role) {
		return zero, common.NewGuardError(
			fmt.Sprintf("%s is not a district engineer and cannot be assigned.", employee.FullName),
		)
	}
	return employee, nil
}
