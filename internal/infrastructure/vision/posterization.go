package vision

import (
	"errors"
	"image"
	"image/color"
	"math"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

const histogramBins = 256

// ErrEmptyImage у изображения нет пикселей
var ErrEmptyImage = errors.New("empty image")

// PosterizationExtractor признаки постеризации по гистограмме яркости.
//
// Вектор из двух элементов: средний модуль первой разности гистограммы
// (сумма модулей, делённая на 255) и число локальных пиков, то есть мест,
// где разность меняет знак с плюса на минус. У постеризованного кадра
// гистограмма распадается на отдельные столбцы, и оба признака растут.
type PosterizationExtractor struct{}

// NewPosterizationExtractor создаёт экстрактор признаков постеризации
func NewPosterizationExtractor() *PosterizationExtractor {
	return &PosterizationExtractor{}
}

// Extract строит вектор признаков
func (e *PosterizationExtractor) Extract(img image.Image) (entity.FeatureVector, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	hist := GrayHistogram(img)

	var diffs [histogramBins - 1]float64
	var sum float64
	for i := range diffs {
		diffs[i] = hist[i+1] - hist[i]
		sum += math.Abs(diffs[i])
	}

	peaks := 0
	for i := 0; i < len(diffs)-1; i++ {
		if diffs[i] > 0 && diffs[i+1] < 0 {
			peaks++
		}
	}

	return entity.FeatureVector{sum / 255, float64(peaks)}, nil
}

// GrayHistogram считает 256-корзинную гистограмму яркости
func GrayHistogram(img image.Image) [histogramBins]float64 {
	var hist [histogramBins]float64
	b := img.Bounds()

	if gray, ok := img.(*image.Gray); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := gray.Pix[gray.PixOffset(b.Min.X, y):gray.PixOffset(b.Max.X, y)]
			for _, v := range row {
				hist[v]++
			}
		}
		return hist
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			hist[g.Y]++
		}
	}
	return hist
}

var _ port.FeatureExtractor = (*PosterizationExtractor)(nil)
