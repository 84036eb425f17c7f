package services

import (
	"context"

	models "road_watch/core/api/models/mongodb"
	"road_watch/core/global"
	"road_watch/core/lifecycle"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportService là cấu trúc chứa các phương thức liên quan đến báo cáo
// hư hỏng đường. Subsystem này không tạo báo cáo (đó là cổng tiếp nhận
// của người dân), chỉ đọc và cập nhật bản sao trạng thái.
type ReportService struct {
	*BaseServiceMongoImpl[models.Report]
}

// NewReportService tạo mới ReportService
func NewReportService() *ReportService {
	reportCollection := global.RegistryCollections.MustGet(global.MongoDB_ColNames.Reports)
	return &ReportService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Report](reportCollection),
	}
}

// ReportFilter là điều kiện lọc danh sách báo cáo
type ReportFilter struct {
	District string
	Status   string
}

// ListAll trả về danh sách báo cáo mới nhất trước
func (s *ReportService) ListAll(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	query := bson.M{}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return s.Find(ctx, query, opts)
}

// FindByReportNumber tìm báo cáo theo business key
func (s *ReportService) FindByReportNumber(ctx context.Context, reportNumber string) (models.Report, error) {
	return s.FindOne(ctx, bson.M{"reportNumber": reportNumber}, nil)
}

// SetStatus cập nhật bản sao trạng thái trên báo cáo.
// Đây là điểm ghi duy nhất cho field status của báo cáo,
// chỉ được gọi từ các mutation của phiếu phân công.
func (s *ReportService) SetStatus(ctx context.Context, reportNumber string, status lifecycle.Status) error {
	_, err := s.UpdateOne(ctx,
		bson.M{"reportNumber": reportNumber},
		bson.M{"status": string(status)},
		nil,
	)
	return err
}
