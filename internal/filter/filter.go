// Package filter реализует общий жизненный цикл обучаемых фильтров дефектов:
// предсказание, пакетное обучение и сохранение модели.
package filter

import (
	"fmt"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// Filter бинарный детектор одного вида дефекта.
//
// Предсказания не меняют состояния и могут идти параллельно.
// Train и Load заменяют модель классификатора, вызывающая сторона
// не должна запускать их одновременно с другими методами.
type Filter struct {
	name       string
	speed      int
	threshold  entity.Threshold
	classifier port.Classifier
	extractor  port.FeatureExtractor
	reader     port.ImageReader
	loader     ImageLoader
}

type options struct {
	threshold entity.Threshold
	modelPath string
}

// Option настраивает фильтр при создании
type Option func(*options)

// WithThreshold задаёт порог решения
func WithThreshold(value float64) Option {
	return func(o *options) {
		o.threshold.Value = value
	}
}

// WithInvertThreshold включает инверсию порога
func WithInvertThreshold(invert bool) Option {
	return func(o *options) {
		o.threshold.Invert = invert
	}
}

// WithModelPath задаёт явный файл модели вместо модели по умолчанию
func WithModelPath(path string) Option {
	return func(o *options) {
		o.modelPath = path
	}
}

func buildOptions(opts []Option) options {
	o := options{threshold: entity.DefaultThreshold()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Bind собирает фильтр без загрузки модели. Используется перед обучением с нуля.
func Bind(v Variant, clf port.Classifier, reader port.ImageReader, opts ...Option) *Filter {
	o := buildOptions(opts)
	return &Filter{
		name:       v.Name,
		speed:      v.Speed,
		threshold:  o.threshold,
		classifier: clf,
		extractor:  v.Extractor,
		reader:     reader,
		loader:     v.Loader,
	}
}

// New собирает фильтр и загружает модель: явную из WithModelPath
// или модель варианта по умолчанию через resolver.
func New(v Variant, clf port.Classifier, reader port.ImageReader, resolver port.ModelResolver, opts ...Option) (*Filter, error) {
	o := buildOptions(opts)

	path := o.modelPath
	if path == "" {
		if resolver == nil {
			return nil, fmt.Errorf("%s: no model path and no resolver: %w", v.Name, port.ErrModelNotFound)
		}
		resolved, err := resolver.Resolve(v.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.Name, err)
		}
		path = resolved
	}

	f := Bind(v, clf, reader, opts...)
	if err := f.Load(path); err != nil {
		return nil, err
	}
	return f, nil
}

// Name стабильный идентификатор фильтра
func (f *Filter) Name() string {
	return f.name
}

// Speed относительная стоимость запуска
func (f *Filter) Speed() int {
	return f.speed
}

// Threshold решающее правило фильтра
func (f *Filter) Threshold() entity.Threshold {
	return f.threshold
}

// Score возвращает нормированную оценку изображения в [0, 1].
// roi == nil означает весь кадр.
func (f *Filter) Score(imagePath string, roi *entity.Region) (float64, error) {
	img, err := f.reader.Read(imagePath, roi)
	if err != nil {
		return 0, fmt.Errorf("read image %s: %w", imagePath, err)
	}

	features, err := f.extractor.Extract(img)
	if err != nil {
		return 0, fmt.Errorf("extract %s features: %w", f.name, err)
	}

	raw, err := f.classifier.Predict(features)
	if err != nil {
		return 0, err
	}

	return ScaledPrediction(raw), nil
}

// Predict возвращает решение фильтра для изображения
func (f *Filter) Predict(imagePath string, roi *entity.Region) (bool, error) {
	score, err := f.Score(imagePath, roi)
	if err != nil {
		return false, err
	}
	return f.threshold.Decide(score), nil
}

// Train переобучает модель фильтра на новых изображениях.
// Если savePath не пуст, модель сохраняется сразу после обучения.
func (f *Filter) Train(images []string, labels []int, savePath string) error {
	if err := Train(images, labels, f.classifier, f.loader, f.extractor); err != nil {
		return err
	}
	if savePath != "" {
		return f.Save(savePath)
	}
	return nil
}

// Load загружает модель классификатора из файла
func (f *Filter) Load(path string) error {
	return f.classifier.Load(path)
}

// Save сохраняет модель классификатора в файл
func (f *Filter) Save(path string) error {
	return f.classifier.Save(path)
}

var _ port.DefectFilter = (*Filter)(nil)
