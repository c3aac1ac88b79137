package filter

import (
	"image"

	"imgfilter/internal/domain/port"
)

// PosterizedName имя фильтра постеризации
const PosterizedName = "posterized"

// ImageLoader загружает изображение целиком для обучения
type ImageLoader func(path string) (image.Image, error)

// Variant связывает контракт фильтра с конкретными признаками и моделью.
type Variant struct {
	Name         string                // стабильный идентификатор
	Speed        int                   // относительная стоимость, меньше = дешевле
	DefaultModel string                // имя модели для ModelResolver
	Extractor    port.FeatureExtractor // признаки для предсказания и обучения
	Loader       ImageLoader           // загрузчик изображений для обучения
}

// Posterized фильтр полос от уменьшенной глубины цвета
func Posterized(extractor port.FeatureExtractor, loader ImageLoader) Variant {
	return Variant{
		Name:         PosterizedName,
		Speed:        1,
		DefaultModel: PosterizedName,
		Extractor:    extractor,
		Loader:       loader,
	}
}
