package entity

// DefaultThresholdValue порог по умолчанию для всех фильтров
const DefaultThresholdValue = 0.5

// Threshold конфигурация решающего правила фильтра.
// Value ожидается в [0, 1], но не проверяется: значение вне диапазона
// просто делает фильтр всегда положительным или всегда отрицательным.
type Threshold struct {
	Value  float64 // порог, при котором результат меняется
	Invert bool    // положительными считаются оценки ниже порога
}

// DefaultThreshold возвращает порог 0.5 без инверсии
func DefaultThreshold() Threshold {
	return Threshold{Value: DefaultThresholdValue}
}

// Decide превращает нормированную оценку в булево решение.
// Неравенство строгое в обоих режимах: score == Value всегда даёт false.
func (t Threshold) Decide(score float64) bool {
	if t.Invert {
		return score < t.Value
	}
	return score > t.Value
}
