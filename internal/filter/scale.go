package filter

import "math"

// ScaledPrediction переводит сырую оценку классификатора в [0, 1].
// Преобразование аффинное: raw/2 + 0.5, с отсечением по краям,
// так что raw <= -1 даёт 0, raw >= 1 даёт 1. NaN считается 0.
func ScaledPrediction(raw float64) float64 {
	switch {
	case math.IsNaN(raw), raw <= -1:
		return 0
	case raw >= 1:
		return 1
	}
	return raw/2 + 0.5
}
