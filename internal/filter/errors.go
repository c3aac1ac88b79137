package filter

import "errors"

var (
	// ErrLengthMismatch число изображений не совпадает с числом меток
	ErrLengthMismatch = errors.New("images and labels have different lengths")

	// ErrNoSamples пустой обучающий набор
	ErrNoSamples = errors.New("training set is empty")

	// ErrInvalidLabel метка не 0 и не 1
	ErrInvalidLabel = errors.New("label must be 0 or 1")
)
