package services

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"testing"

	"road_watch/core/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFileHeader tạo multipart.FileHeader từ nội dung giả lập
func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("report", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["report"]
	require.Len(t, files, 1)
	return files[0]
}

func TestFileStorage_SaveAndOpenPDF(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.7 test content")
	storedName, err := storage.SavePDF(buildFileHeader(t, "inspection.pdf", content))
	require.NoError(t, err)
	assert.NotEqual(t, "inspection.pdf", storedName) // tên lưu trữ là uuid, không dùng tên gốc
	assert.Contains(t, storedName, ".pdf")

	file, err := storage.Open(storedName)
	require.NoError(t, err)
	defer file.Close()

	read, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, content, read)
}

func TestFileStorage_RejectsNonPDF(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SavePDF(buildFileHeader(t, "photo.jpg", []byte("jpeg data")))
	require.Error(t, err)

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.ErrCodeValidationUpload.Code, customErr.Code.Code)
}

func TestFileStorage_RejectsEmptyFile(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SavePDF(buildFileHeader(t, "empty.pdf", nil))
	assert.Error(t, err)
}

func TestFileStorage_RejectsMissingFile(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SavePDF(nil)
	assert.Error(t, err)
}

func TestFileStorage_OpenUnknownReturnsNotFound(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Open("does-not-exist.pdf")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Path traversal bị chặn bởi filepath.Base
	_, err = storage.Open("../../etc/passwd")
	assert.Error(t, err)
}

func TestFileStorage_RemoveIgnoresMissing(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, storage.Remove("never-existed.pdf"))
}
