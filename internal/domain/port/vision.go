package port

import (
	"image"

	"imgfilter/internal/domain/entity"
)

// ImageReader читает изображение с диска
type ImageReader interface {
	// Read декодирует файл и обрезает его по области интереса, если она задана
	Read(path string, roi *entity.Region) (image.Image, error)
}

// FeatureExtractor строит вектор признаков по изображению
type FeatureExtractor interface {
	// Extract возвращает вектор фиксированной длины
	Extract(img image.Image) (entity.FeatureVector, error)
}
