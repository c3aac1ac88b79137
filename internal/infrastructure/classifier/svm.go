package classifier

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

const (
	modelKind    = "linear_svm"
	modelVersion = 1

	DefaultEpochs = 200
	DefaultLambda = 0.01
)

var (
	// ErrDimensionMismatch длина вектора не совпадает с размерностью модели
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")

	// ErrInvalidTrainingSet набор пуст, несогласован по длине или содержит метки кроме 0 и 1
	ErrInvalidTrainingSet = errors.New("invalid training set")

	// ErrInvalidModel файл модели не похож на модель линейного SVM
	ErrInvalidModel = errors.New("invalid svm model")
)

// SVMOptions параметры обучения
type SVMOptions struct {
	Epochs int     // число полных проходов по набору
	Lambda float64 // коэффициент регуляризации
}

// DefaultSVMOptions возвращает параметры по умолчанию
func DefaultSVMOptions() SVMOptions {
	return SVMOptions{Epochs: DefaultEpochs, Lambda: DefaultLambda}
}

// svmModel сериализуемое состояние модели
type svmModel struct {
	Kind    string    `yaml:"kind"`
	Version int       `yaml:"version"`
	Dim     int       `yaml:"dim"`
	Weights []float64 `yaml:"weights"`
	Bias    float64   `yaml:"bias"`
	Mean    []float64 `yaml:"mean"`
	Scale   []float64 `yaml:"scale"`
}

func (m *svmModel) validate() error {
	if m.Kind != modelKind {
		return fmt.Errorf("%w: kind %q", ErrInvalidModel, m.Kind)
	}
	if m.Version != modelVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidModel, m.Version)
	}
	if m.Dim <= 0 || len(m.Weights) != m.Dim || len(m.Mean) != m.Dim || len(m.Scale) != m.Dim {
		return fmt.Errorf("%w: inconsistent dimensions", ErrInvalidModel)
	}
	for _, s := range m.Scale {
		if s == 0 || math.IsNaN(s) {
			return fmt.Errorf("%w: zero scale", ErrInvalidModel)
		}
	}
	return nil
}

// LinearSVM линейный SVM с мягким зазором.
//
// Признаки стандартизуются по статистике обучающего набора, сырая оценка
// равна w·z + b: положительная для класса 1, отрицательная для класса 0.
type LinearSVM struct {
	opts  SVMOptions
	mu    sync.RWMutex
	model *svmModel
}

// NewLinearSVM создаёт необученный классификатор
func NewLinearSVM(opts SVMOptions) *LinearSVM {
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultEpochs
	}
	if opts.Lambda <= 0 {
		opts.Lambda = DefaultLambda
	}
	return &LinearSVM{opts: opts}
}

// Predict возвращает знаковое расстояние до разделяющей гиперплоскости
func (s *LinearSVM) Predict(features entity.FeatureVector) (float64, error) {
	s.mu.RLock()
	m := s.model
	s.mu.RUnlock()

	if m == nil {
		return 0, port.ErrModelNotLoaded
	}
	if len(features) != m.Dim {
		return 0, fmt.Errorf("%w: got %d, model expects %d", ErrDimensionMismatch, len(features), m.Dim)
	}

	z := standardize(features, m.Mean, m.Scale)
	w := mat.NewVecDense(m.Dim, m.Weights)
	return mat.Dot(w, z) + m.Bias, nil
}

// Train обучает модель заново на всём наборе.
// Текущая модель заменяется только при успешном обучении.
func (s *LinearSVM) Train(features [][]float64, labels []int) error {
	if len(features) == 0 || len(features) != len(labels) {
		return fmt.Errorf("%w: %d samples, %d labels", ErrInvalidTrainingSet, len(features), len(labels))
	}
	dim := len(features[0])
	if dim == 0 {
		return fmt.Errorf("%w: empty feature vectors", ErrInvalidTrainingSet)
	}
	for i, f := range features {
		if len(f) != dim {
			return fmt.Errorf("%w: sample %d has %d features, expected %d", ErrDimensionMismatch, i, len(f), dim)
		}
		if labels[i] != 0 && labels[i] != 1 {
			return fmt.Errorf("%w: sample %d has label %d", ErrInvalidTrainingSet, i, labels[i])
		}
	}

	mean, scale := moments(features, dim)
	m := s.fit(features, labels, mean, scale)

	s.mu.Lock()
	s.model = m
	s.mu.Unlock()
	return nil
}

// fit пакетный субградиентный спуск (Pegasos) по всему набору на каждом шаге.
// Смещение учитывается как дополнительный признак, равный 1.
func (s *LinearSVM) fit(features [][]float64, labels []int, mean, scale []float64) *svmModel {
	dim := len(mean)
	n := len(features)

	samples := make([]*mat.VecDense, n)
	for i, f := range features {
		z := standardize(f, mean, scale)
		aug := mat.NewVecDense(dim+1, nil)
		for j := 0; j < dim; j++ {
			aug.SetVec(j, z.AtVec(j))
		}
		aug.SetVec(dim, 1)
		samples[i] = aug
	}

	w := mat.NewVecDense(dim+1, nil)
	grad := mat.NewVecDense(dim+1, nil)
	radius := 1 / math.Sqrt(s.opts.Lambda)

	for t := 1; t <= s.opts.Epochs; t++ {
		eta := 1 / (s.opts.Lambda * float64(t))

		grad.Zero()
		for i, x := range samples {
			y := sign(labels[i])
			if y*mat.Dot(w, x) < 1 {
				grad.AddScaledVec(grad, y, x)
			}
		}

		w.ScaleVec(1-eta*s.opts.Lambda, w)
		w.AddScaledVec(w, eta/float64(n), grad)

		if norm := mat.Norm(w, 2); norm > radius {
			w.ScaleVec(radius/norm, w)
		}
	}

	weights := make([]float64, dim)
	for j := range weights {
		weights[j] = w.AtVec(j)
	}
	return &svmModel{
		Kind:    modelKind,
		Version: modelVersion,
		Dim:     dim,
		Weights: weights,
		Bias:    w.AtVec(dim),
		Mean:    mean,
		Scale:   scale,
	}
}

// Load читает модель из YAML файла
func (s *LinearSVM) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model %s: %w", path, err)
	}

	var m svmModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode model %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return fmt.Errorf("model %s: %w", path, err)
	}

	s.mu.Lock()
	s.model = &m
	s.mu.Unlock()
	return nil
}

// Save записывает модель в YAML файл через временный файл в том же каталоге
func (s *LinearSVM) Save(path string) error {
	s.mu.RLock()
	m := s.model
	s.mu.RUnlock()

	if m == nil {
		return port.ErrModelNotLoaded
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.yml")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save model %s: %w", path, err)
	}
	return nil
}

func moments(features [][]float64, dim int) (mean, scale []float64) {
	n := float64(len(features))
	mean = make([]float64, dim)
	scale = make([]float64, dim)

	for _, f := range features {
		for j, v := range f {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}

	for _, f := range features {
		for j, v := range f {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}
	return mean, scale
}

func standardize(f []float64, mean, scale []float64) *mat.VecDense {
	z := make([]float64, len(f))
	for j, v := range f {
		z[j] = (v - mean[j]) / scale[j]
	}
	return mat.NewVecDense(len(z), z)
}

func sign(label int) float64 {
	if label == entity.LabelPositive {
		return 1
	}
	return -1
}

var _ port.Classifier = (*LinearSVM)(nil)
