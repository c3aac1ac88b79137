package app

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"imgfilter/internal/domain/entity"
)

// fakeFilter фильтр с заранее заданной оценкой
type fakeFilter struct {
	name      string
	speed     int
	score     float64
	threshold entity.Threshold
	err       error
	calls     *[]string
}

func (f *fakeFilter) Name() string                { return f.name }
func (f *fakeFilter) Speed() int                  { return f.speed }
func (f *fakeFilter) Threshold() entity.Threshold { return f.threshold }

func (f *fakeFilter) Score(imagePath string, roi *entity.Region) (float64, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, f.name)
	}
	if f.err != nil {
		return 0, f.err
	}
	return f.score, nil
}

var errBroken = errors.New("broken filter")

// bandedImage k горизонтальных полос разной яркости, как у постеризованного кадра
func bandedImage(size, k int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		level := uint8(30 + (y*k/size)*40)
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	return img
}

// gradientImage плавный градиент по всем 256 уровням
func gradientImage(height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 256, height))
	for y := 0; y < height; y++ {
		for x := 0; x < 256; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x)})
		}
	}
	return img
}

func savePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}
