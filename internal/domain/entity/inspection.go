package entity

import "time"

// Prediction хранит результат одного фильтра для одного изображения.
type Prediction struct {
	ID        string    // идентификатор записи
	UserID    int64     // пользователь, 0 для CLI
	ImagePath string    // путь к проверенному изображению
	Filter    string    // имя фильтра
	Score     float64   // нормированная оценка в [0, 1]
	Threshold Threshold // применённое решающее правило
	Positive  bool      // флаг найденного дефекта
	CreatedAt time.Time // время проверки
}

// Inspection хранит итог прогона изображения через набор фильтров.
type Inspection struct {
	ImagePath   string       // путь к изображению
	Region      *Region      // область интереса, nil если весь кадр
	Predictions []Prediction // результаты в порядке запуска фильтров
	HasDefects  bool         // хотя бы один фильтр сработал
}

// Positive возвращает имена сработавших фильтров
func (i *Inspection) Positive() []string {
	names := make([]string, 0, len(i.Predictions))
	for _, p := range i.Predictions {
		if p.Positive {
			names = append(names, p.Filter)
		}
	}
	return names
}
