//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"imgfilter/internal/domain/entity"
)

// GoCVReader читает изображения через OpenCV сразу в оттенках серого
type GoCVReader struct{}

// NewGoCVReader создаёт читатель на OpenCV
func NewGoCVReader() *GoCVReader {
	return &GoCVReader{}
}

// Read читает файл и обрезает его по области интереса
func (r *GoCVReader) Read(path string, roi *entity.Region) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image %s", path)
	}

	if roi == nil {
		return mat.ToImage()
	}

	if roi.Empty() {
		return nil, ErrInvalidRegion
	}
	rect := roi.Rect().Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	if rect.Empty() {
		return nil, ErrRegionOutOfBounds
	}

	region := mat.Region(rect)
	defer region.Close()

	// Region ссылается на память mat, копируем в непрерывную матрицу.
	cropped := region.Clone()
	defer cropped.Close()

	return cropped.ToImage()
}

// Load читает весь кадр
func (r *GoCVReader) Load(path string) (image.Image, error) {
	return r.Read(path, nil)
}

var _ Reader = (*GoCVReader)(nil)
