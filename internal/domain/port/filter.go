package port

import "imgfilter/internal/domain/entity"

// DefectFilter интерфейс фильтра дефектов, который запускает набор фильтров
type DefectFilter interface {
	// Name стабильный идентификатор фильтра
	Name() string

	// Speed относительная стоимость запуска, меньше = дешевле
	Speed() int

	// Threshold решающее правило фильтра
	Threshold() entity.Threshold

	// Score возвращает нормированную оценку в [0, 1]
	Score(imagePath string, roi *entity.Region) (float64, error)
}
