//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image"

	"imgfilter/internal/domain/entity"
)

var errGoCVDisabled = errors.New("gocv build tag is not enabled")

// GoCVReader заглушка для сборки без OpenCV
type GoCVReader struct{}

// NewGoCVReader создаёт читатель-заглушку (без OpenCV).
func NewGoCVReader() *GoCVReader {
	return &GoCVReader{}
}

// Read возвращает ошибку, если сборка без тега gocv.
func (r *GoCVReader) Read(path string, roi *entity.Region) (image.Image, error) {
	_ = path
	_ = roi
	return nil, errGoCVDisabled
}

// Load возвращает ошибку, если сборка без тега gocv.
func (r *GoCVReader) Load(path string) (image.Image, error) {
	_ = path
	return nil, errGoCVDisabled
}

var _ Reader = (*GoCVReader)(nil)
