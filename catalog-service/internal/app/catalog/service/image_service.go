package service

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"maplemarket/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Расширения, которые принимаем от администратора
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

const thumbnailSize = 320

// ImageService сохраняет изображения товаров на локальный диск
// Невалидные файлы не являются ошибкой: возвращается путь заглушки,
// как и для товаров без изображения
type ImageService struct {
	dir         string
	maxSize     int64
	placeholder string
}

// NewImageService создает новый сервис изображений
// Директория загрузок создается при старте
func NewImageService(dir string, maxSize int64, placeholder string) (*ImageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &ImageService{
		dir:         dir,
		maxSize:     maxSize,
		placeholder: placeholder,
	}, nil
}

// Save валидирует и сохраняет загруженный файл
// Имя файла - uuid с исходным расширением; рядом сохраняется thumbnail
// Возвращает относительный путь сохраненного файла или заглушку
func (s *ImageService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return s.placeholder, nil
	}

	if header.Size > s.maxSize {
		logger.Warn().
			Str("filename", header.Filename).
			Int64("size", header.Size).
			Msg("Uploaded file exceeds size limit")
		return s.placeholder, nil
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		logger.Warn().Str("filename", header.Filename).Msg("Uploaded file has unsupported extension")
		return s.placeholder, nil
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return s.placeholder, nil
	}

	// Декодирование подтверждает, что содержимое действительно изображение,
	// а не переименованный файл
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn().Err(err).Str("filename", header.Filename).Msg("Uploaded file is not a valid image")
		return s.placeholder, nil
	}

	name := uuid.NewString()
	filename := name + ext

	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	// Thumbnail для списочных страниц, всегда JPEG
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	thumbPath := filepath.Join(s.dir, name+"_thumb.jpg")
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(85)); err != nil {
		// Основной файл уже сохранен, отсутствие thumbnail не критично
		logger.Warn().Err(err).Msg("Failed to generate thumbnail")
	}

	return filename, nil
}
