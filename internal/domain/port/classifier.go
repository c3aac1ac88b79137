package port

import (
	"errors"

	"imgfilter/internal/domain/entity"
)

var (
	// ErrModelNotLoaded классификатор ещё не обучен и не загружен
	ErrModelNotLoaded = errors.New("classifier model is not loaded")

	// ErrModelNotFound не найден ресурс модели
	ErrModelNotFound = errors.New("model resource not found")
)

// Classifier интерфейс обучаемого бинарного классификатора
type Classifier interface {
	// Train заменяет модель новой, обученной на всём наборе сразу
	Train(features [][]float64, labels []int) error

	// Predict возвращает сырую оценку для вектора признаков
	Predict(features entity.FeatureVector) (float64, error)

	// Load загружает модель из файла
	Load(path string) error

	// Save сохраняет модель в файл
	Save(path string) error
}

// ModelResolver находит файл модели по её имени
type ModelResolver interface {
	// Resolve возвращает путь к модели или ErrModelNotFound
	Resolve(name string) (string, error)
}
