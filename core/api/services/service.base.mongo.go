// Package services chứa business logic, đứng giữa handler và MongoDB.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	models "road_watch/core/api/models/mongodb"
	"road_watch/core/common"
	"road_watch/core/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateData định nghĩa kiểu dữ liệu cho partial update
type UpdateData struct {
	Set      map[string]interface{} `bson:"$set,omitempty"`      // Set các field với giá trị mới
	Unset    map[string]interface{} `bson:"$unset,omitempty"`    // Xóa các field
	Push     map[string]interface{} `bson:"$push,omitempty"`     // Thêm phần tử vào mảng
	AddToSet map[string]interface{} `bson:"$addToSet,omitempty"` // Thêm phần tử vào mảng nếu chưa có
	Inc      map[string]interface{} `bson:"$inc,omitempty"`      // Tăng giá trị số
}

// ToUpdateData chuyển đổi interface{} thành UpdateData.
// Chấp nhận *UpdateData, bson.M/map (có hoặc không có toán tử $),
// hoặc struct bất kỳ (toàn bộ trở thành $set).
func ToUpdateData(data interface{}) (*UpdateData, error) {
	var dataMap map[string]interface{}

	switch v := data.(type) {
	case *UpdateData:
		return v, nil
	case UpdateData:
		return &v, nil
	case bson.M:
		dataMap = map[string]interface{}(v)
	case map[string]interface{}:
		dataMap = v
	default:
		// Struct: marshal qua bson để tôn trọng bson tag, toàn bộ thành $set
		m, err := utility.ToMap(data)
		if err != nil {
			return nil, err
		}
		dataMap = m
	}

	result := &UpdateData{}
	plain := map[string]interface{}{}
	for key, value := range dataMap {
		if !strings.HasPrefix(key, "$") {
			plain[key] = value
			continue
		}

		operand, err := toOperandMap(value)
		if err != nil {
			return nil, err
		}

		switch key {
		case "$set":
			result.Set = operand
		case "$unset":
			result.Unset = operand
		case "$push":
			result.Push = operand
		case "$addToSet":
			result.AddToSet = operand
		case "$inc":
			result.Inc = operand
		default:
			return nil, common.ErrInvalidFormat
		}
	}

	// Các field không có toán tử gom hết vào $set
	if len(plain) > 0 {
		if result.Set == nil {
			result.Set = plain
		} else {
			for key, value := range plain {
				result.Set[key] = value
			}
		}
	}

	return result, nil
}

// toOperandMap chuẩn hóa operand của một toán tử $ về map[string]interface{}
func toOperandMap(value interface{}) (map[string]interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, nil
	case bson.M:
		return map[string]interface{}(v), nil
	case bson.D:
		operand := make(map[string]interface{}, len(v))
		for _, elem := range v {
			operand[elem.Key] = elem.Value
		}
		return operand, nil
	default:
		return nil, common.ErrInvalidFormat
	}
}

// BaseServiceMongo định nghĩa interface chứa các phương thức cơ bản
// cho việc tương tác với MongoDB
type BaseServiceMongo[Model any] interface {
	InsertOne(ctx context.Context, data Model) (Model, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*models.PaginateResult[Model], error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (Model, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (Model, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (Model, error)
	Upsert(ctx context.Context, filter interface{}, update interface{}) (Model, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// BaseServiceMongoImpl triển khai BaseServiceMongo trên một collection
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection MongoDB bên dưới
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne tạo mới một bản ghi trong database
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	// Chuyển data thành map để thêm timestamps
	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	// Loại bỏ các field empty string để sparse unique index hoạt động đúng.
	// Sparse index chỉ bỏ qua null/không tồn tại, không bỏ qua empty string.
	for key, value := range dataMap {
		if strValue, ok := value.(string); ok && strValue == "" {
			delete(dataMap, key)
		}
	}

	now := time.Now().UnixMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	// Lấy lại document vừa tạo
	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// FindOne tìm một document theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T

	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	var result T
	findResult := s.collection.FindOne(ctx, filter, opts)
	if err := findResult.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	if err := findResult.Decode(&result); err != nil {
		// Lỗi decode BSON là lỗi format, không phải lỗi MongoDB command
		return zero, common.NewError(
			common.ErrCodeValidationFormat,
			"Lỗi định dạng dữ liệu khi decode từ MongoDB",
			common.StatusBadRequest,
			err,
		)
	}

	return result, nil
}

// FindOneById tìm một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm tất cả bản ghi theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Đảm bảo luôn trả về mảng, không phải nil
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// FindWithPagination tìm tất cả bản ghi với phân trang
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*models.PaginateResult[T], error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	// Đảm bảo page >= 1 và limit > 0 để tránh skip âm
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	opts.SetSkip((page - 1) * limit)
	opts.SetLimit(limit)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var totalPage int64
	if total > 0 {
		totalPage = (total + limit - 1) / limit
	}

	return &models.PaginateResult[T]{
		Items:     items,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// UpdateOne cập nhật một document theo filter
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error) {
	var zero T

	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Update().SetUpsert(false)
	}

	updateData, err := ToUpdateData(update)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	// Thêm updatedAt vào $set
	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}
	updateData.Set["updatedAt"] = time.Now().UnixMilli()

	result, err := s.collection.UpdateOne(ctx, filter, updateData, opts)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return zero, common.ErrNotFound
	}

	// Lấy lại document đã update
	var updated T
	if result.UpsertedID != nil {
		err = s.collection.FindOne(ctx, bson.M{"_id": result.UpsertedID}).Decode(&updated)
	} else {
		err = s.collection.FindOne(ctx, filter).Decode(&updated)
	}
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return updated, nil
}

// UpdateById cập nhật một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, update, nil)
}

// FindOneAndUpdate tìm và cập nhật một document trong một thao tác atomic.
// Mặc định trả về document SAU khi update.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error) {
	var zero T

	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOneAndUpdate().SetReturnDocument(options.After)
	}

	updateData, err := ToUpdateData(update)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}
	updateData.Set["updatedAt"] = time.Now().UnixMilli()

	var result T
	findResult := s.collection.FindOneAndUpdate(ctx, filter, updateData, opts)
	if err := findResult.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	if err := findResult.Decode(&result); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// Upsert cập nhật document khớp filter, tạo mới nếu chưa có
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, update interface{}) (T, error) {
	opts := options.Update().SetUpsert(true)
	return s.UpdateOne(ctx, filter, update, opts)
}

// DeleteOne xóa một document theo filter
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	if filter == nil {
		filter = bson.D{}
	}

	result, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteById xóa một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// CountDocuments đếm số lượng document khớp filter
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}

	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// DocumentExists kiểm tra document khớp filter có tồn tại không
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
