package filter

import (
	"fmt"

	"imgfilter/internal/domain/port"
)

// Train обучает классификатор на всём наборе за один вызов.
//
// Проверки длины и меток выполняются до чтения первого изображения.
// Ошибка загрузки любого изображения прерывает обучение целиком:
// классификатор не вызывается, прежняя модель остаётся на месте.
func Train(images []string, labels []int, clf port.Classifier, loader ImageLoader, extractor port.FeatureExtractor) error {
	if err := validateSamples(images, labels); err != nil {
		return err
	}

	features := make([][]float64, 0, len(images))
	for i, path := range images {
		img, err := loader(path)
		if err != nil {
			return fmt.Errorf("load training image %d (%s): %w", i, path, err)
		}

		vec, err := extractor.Extract(img)
		if err != nil {
			return fmt.Errorf("extract features of training image %d (%s): %w", i, path, err)
		}
		features = append(features, vec)
	}

	return clf.Train(features, labels)
}

func validateSamples(images []string, labels []int) error {
	if len(images) != len(labels) {
		return fmt.Errorf("%w: %d images, %d labels", ErrLengthMismatch, len(images), len(labels))
	}
	if len(images) == 0 {
		return ErrNoSamples
	}
	for i, l := range labels {
		if l != 0 && l != 1 {
			return fmt.Errorf("%w: sample %d has label %d", ErrInvalidLabel, i, l)
		}
	}
	return nil
}
