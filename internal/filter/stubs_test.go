package filter

import (
	"errors"
	"image"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// stubClassifier всегда возвращает raw и запоминает вызовы
type stubClassifier struct {
	raw        float64
	predictErr error
	trainErr   error
	loadErr    error
	saveErr    error

	trainCalls int
	features   [][]float64
	labels     []int
	loaded     []string
	saved      []string
}

func (c *stubClassifier) Train(features [][]float64, labels []int) error {
	c.trainCalls++
	if c.trainErr != nil {
		return c.trainErr
	}
	c.features = features
	c.labels = labels
	return nil
}

func (c *stubClassifier) Predict(features entity.FeatureVector) (float64, error) {
	if c.predictErr != nil {
		return 0, c.predictErr
	}
	return c.raw, nil
}

func (c *stubClassifier) Load(path string) error {
	if c.loadErr != nil {
		return c.loadErr
	}
	c.loaded = append(c.loaded, path)
	return nil
}

func (c *stubClassifier) Save(path string) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saved = append(c.saved, path)
	return nil
}

// stubExtractor возвращает ширину изображения как единственный признак
type stubExtractor struct {
	calls int
	err   error
}

func (e *stubExtractor) Extract(img image.Image) (entity.FeatureVector, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return entity.FeatureVector{float64(img.Bounds().Dx())}, nil
}

// stubReader отдаёт изображение заданного размера или ошибку
type stubReader struct {
	width int
	err   error
	rois  []*entity.Region
}

func (r *stubReader) Read(path string, roi *entity.Region) (image.Image, error) {
	r.rois = append(r.rois, roi)
	if r.err != nil {
		return nil, r.err
	}
	return image.NewGray(image.Rect(0, 0, r.width, 1)), nil
}

type stubResolver map[string]string

func (r stubResolver) Resolve(name string) (string, error) {
	if path, ok := r[name]; ok {
		return path, nil
	}
	return "", port.ErrModelNotFound
}

// countingLoader загружает изображения шириной, равной длине пути
type countingLoader struct {
	calls  []string
	failOn string
}

func (l *countingLoader) load(path string) (image.Image, error) {
	l.calls = append(l.calls, path)
	if path == l.failOn {
		return nil, errors.New("cannot open " + path)
	}
	return image.NewGray(image.Rect(0, 0, len(path), 1)), nil
}

func newStubFilter(clf *stubClassifier, opts ...Option) (*Filter, *stubExtractor, *stubReader, *countingLoader) {
	ext := &stubExtractor{}
	reader := &stubReader{width: 4}
	loader := &countingLoader{}
	f := Bind(Posterized(ext, loader.load), clf, reader, opts...)
	return f, ext, reader, loader
}
