package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlaceholder = "product-placeholder.jpg"

// fakeFile оборачивает bytes.Reader в multipart.File
type fakeFile struct {
	*bytes.Reader
}

func (f *fakeFile) Close() error { return nil }

func newUpload(t *testing.T, filename string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	return &fakeFile{bytes.NewReader(data)}, &multipart.FileHeader{
		Filename: filename,
		Size:     int64(len(data)),
	}
}

// pngBytes рисует маленький валидный PNG
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestImageService(t *testing.T) *ImageService {
	t.Helper()
	service, err := NewImageService(t.TempDir(), 1024*1024, testPlaceholder)
	require.NoError(t, err)
	return service
}

// ==================== Save Tests ====================

func TestImageService_Save_ValidPNG(t *testing.T) {
	// Arrange
	service := newTestImageService(t)
	file, header := newUpload(t, "photo.png", pngBytes(t))

	// Act
	path, err := service.Save(file, header)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, testPlaceholder, path)
	assert.True(t, strings.HasSuffix(path, ".png"))

	// Файл действительно записан на диск вместе с thumbnail
	saved, err := os.ReadFile(filepath.Join(service.dir, path))
	require.NoError(t, err)
	assert.NotEmpty(t, saved)

	thumbName := strings.TrimSuffix(path, ".png") + "_thumb.jpg"
	_, err = os.Stat(filepath.Join(service.dir, thumbName))
	assert.NoError(t, err)
}

func TestImageService_Save_NilFile_ReturnsPlaceholder(t *testing.T) {
	// Arrange
	service := newTestImageService(t)

	// Act
	path, err := service.Save(nil, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testPlaceholder, path)
}

func TestImageService_Save_UnsupportedExtension_ReturnsPlaceholder(t *testing.T) {
	// Arrange
	service := newTestImageService(t)
	file, header := newUpload(t, "archive.zip", []byte("PK\x03\x04"))

	// Act
	path, err := service.Save(file, header)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testPlaceholder, path)
}

func TestImageService_Save_RenamedNonImage_ReturnsPlaceholder(t *testing.T) {
	// Arrange
	// Текстовый файл с расширением картинки не проходит декодирование
	service := newTestImageService(t)
	file, header := newUpload(t, "fake.png", []byte("definitely not an image"))

	// Act
	path, err := service.Save(file, header)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testPlaceholder, path)
}

func TestImageService_Save_Oversized_ReturnsPlaceholder(t *testing.T) {
	// Arrange
	service, err := NewImageService(t.TempDir(), 16, testPlaceholder)
	require.NoError(t, err)

	file, header := newUpload(t, "big.png", pngBytes(t))

	// Act
	path, err := service.Save(file, header)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testPlaceholder, path)
}
