package app

import (
	"fmt"
	"sort"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
	"imgfilter/internal/logger"
)

const componentBank = "filter_bank"

// FilterBank прогоняет изображение через набор фильтров, дешёвые первыми.
type FilterBank struct {
	filters []port.DefectFilter
	log     *logger.Logger
}

// NewFilterBank упорядочивает фильтры по возрастанию Speed.
// Фильтры с одинаковой скоростью сохраняют порядок передачи.
func NewFilterBank(log *logger.Logger, filters ...port.DefectFilter) *FilterBank {
	ordered := make([]port.DefectFilter, len(filters))
	copy(ordered, filters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Speed() < ordered[j].Speed()
	})

	if log == nil {
		log = logger.Nop()
	}
	return &FilterBank{filters: ordered, log: log}
}

// Filters возвращает фильтры в порядке запуска
func (b *FilterBank) Filters() []port.DefectFilter {
	out := make([]port.DefectFilter, len(b.filters))
	copy(out, b.filters)
	return out
}

// Inspect запускает все фильтры. override, если не nil, заменяет порог каждого фильтра.
// Ошибка любого фильтра прерывает проверку.
func (b *FilterBank) Inspect(imagePath string, roi *entity.Region, override *entity.Threshold) (*entity.Inspection, error) {
	inspection := &entity.Inspection{
		ImagePath:   imagePath,
		Region:      roi,
		Predictions: make([]entity.Prediction, 0, len(b.filters)),
	}

	for _, f := range b.filters {
		score, err := f.Score(imagePath, roi)
		if err != nil {
			b.log.Error(componentBank, err, map[string]interface{}{"filter": f.Name(), "image": imagePath})
			return nil, fmt.Errorf("filter %s: %w", f.Name(), err)
		}

		th := f.Threshold()
		if override != nil {
			th = *override
		}
		positive := th.Decide(score)

		b.log.Debug(componentBank, "filter finished", map[string]interface{}{
			"filter":   f.Name(),
			"image":    imagePath,
			"score":    score,
			"positive": positive,
		})

		inspection.Predictions = append(inspection.Predictions, entity.Prediction{
			ImagePath: imagePath,
			Filter:    f.Name(),
			Score:     score,
			Threshold: th,
			Positive:  positive,
		})
		inspection.HasDefects = inspection.HasDefects || positive
	}

	return inspection, nil
}
