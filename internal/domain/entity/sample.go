package entity

// FeatureVector признаки изображения фиксированной длины.
// Длина и смысл элементов определяются вариантом фильтра.
type FeatureVector []float64

// Метки обучающих примеров
const (
	LabelNegative = 0 // без дефекта
	LabelPositive = 1 // с дефектом
)

// Sample обучающий пример: путь к изображению и его метка
type Sample struct {
	Image string `yaml:"image"`
	Label int    `yaml:"label"`
}

// SplitSamples раскладывает примеры на параллельные срезы путей и меток
func SplitSamples(samples []Sample) (images []string, labels []int) {
	images = make([]string, len(samples))
	labels = make([]int, len(samples))
	for i, s := range samples {
		images[i] = s.Image
		labels[i] = s.Label
	}
	return images, labels
}
