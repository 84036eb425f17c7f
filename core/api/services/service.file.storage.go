package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"road_watch/core/common"

	"github.com/google/uuid"
)

// MaxUploadSize là kích thước tối đa của biên bản nghiệm thu (10MB)
const MaxUploadSize = 10 << 20

// FileStorage lưu biên bản nghiệm thu trên đĩa local.
// Tên file lưu trữ là uuid để tránh đụng tên và path traversal,
// tên gốc được giữ lại trên phiếu phân công để hiển thị.
type FileStorage struct {
	dir string
}

// NewFileStorage tạo FileStorage, đảm bảo thư mục lưu trữ tồn tại
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

// SavePDF kiểm tra và lưu một file biên bản nghiệm thu.
// Chỉ chấp nhận PDF. Trả về tên file đã lưu trên server.
func (fs *FileStorage) SavePDF(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", common.NewUploadError("A site inspection report file is required.")
	}
	if fileHeader.Size == 0 {
		return "", common.NewUploadError("The uploaded file is empty.")
	}
	if fileHeader.Size > MaxUploadSize {
		return "", common.NewUploadError("The uploaded file exceeds the 10MB limit.")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return "", common.NewUploadError("Only PDF files are accepted.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", common.NewUploadError("The uploaded file could not be read.")
	}
	defer src.Close()

	storedName := uuid.NewString() + ".pdf"
	dst, err := os.Create(filepath.Join(fs.dir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Dọn file ghi dở
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return storedName, nil
}

// Open mở một file đã lưu để tải xuống.
// filepath.Base chặn mọi path traversal qua tên file.
func (fs *FileStorage) Open(storedName string) (*os.File, error) {
	file, err := os.Open(filepath.Join(fs.dir, filepath.Base(storedName)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

// Remove xóa một file đã lưu, bỏ qua nếu không tồn tại
func (fs *FileStorage) Remove(storedName string) error {
	err := os.Remove(filepath.Join(fs.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
