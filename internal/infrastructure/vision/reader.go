package vision

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// Поддерживаемые бэкенды чтения изображений
const (
	BackendNative = "native"
	BackendGoCV   = "gocv"
)

var (
	// ErrInvalidRegion у области интереса нет площади
	ErrInvalidRegion = errors.New("region of interest has no area")

	// ErrRegionOutOfBounds область интереса не пересекается с изображением
	ErrRegionOutOfBounds = errors.New("region of interest is outside the image")
)

// Reader читает изображения для предсказания (с областью интереса) и для обучения
type Reader interface {
	port.ImageReader
	Load(path string) (image.Image, error)
}

// NewReader возвращает читатель для указанного бэкенда
func NewReader(backend string) (Reader, error) {
	switch backend {
	case "", BackendNative:
		return NewFileReader(), nil
	case BackendGoCV:
		return NewGoCVReader(), nil
	default:
		return nil, fmt.Errorf("unknown image backend %q", backend)
	}
}

// FileReader декодирует изображения средствами Go без OpenCV.
// Понимает png, jpeg, gif, bmp, tiff и webp.
type FileReader struct{}

// NewFileReader создаёт читатель файлов
func NewFileReader() *FileReader {
	return &FileReader{}
}

// Read декодирует файл и обрезает его по области интереса
func (r *FileReader) Read(path string, roi *entity.Region) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if roi == nil {
		return img, nil
	}
	return Crop(img, *roi)
}

// Load читает весь кадр
func (r *FileReader) Load(path string) (image.Image, error) {
	return r.Read(path, nil)
}

// Crop вырезает область интереса. Координаты области отсчитываются
// от левого верхнего угла изображения, выход за край обрезается.
func Crop(img image.Image, roi entity.Region) (image.Image, error) {
	if roi.Empty() {
		return nil, ErrInvalidRegion
	}

	bounds := img.Bounds()
	rect := roi.Rect().Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, ErrRegionOutOfBounds
	}

	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect), nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst, nil
}

var _ Reader = (*FileReader)(nil)
