package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/filter"
	"imgfilter/internal/logger"
)

const componentTraining = "training"

// Manifest описывает обучающий набор в YAML:
//
//	samples:
//	  - image: banded/sky.png
//	    label: 1
//	  - image: clean/sky.png
//	    label: 0
type Manifest struct {
	Samples []entity.Sample `yaml:"samples"`
}

// LoadManifest читает манифест. Относительные пути изображений
// считаются от каталога манифеста.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, s := range m.Samples {
		if s.Image != "" && !filepath.IsAbs(s.Image) {
			m.Samples[i].Image = filepath.Join(base, s.Image)
		}
	}
	return &m, nil
}

// TrainingService обучает фильтры по манифестам
type TrainingService struct {
	log *logger.Logger
}

func NewTrainingService(log *logger.Logger) *TrainingService {
	if log == nil {
		log = logger.Nop()
	}
	return &TrainingService{log: log}
}

// TrainFromManifest обучает фильтр на всех примерах манифеста и,
// если savePath не пуст, сохраняет модель.
func (s *TrainingService) TrainFromManifest(f *filter.Filter, manifestPath, savePath string) error {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	images, labels := entity.SplitSamples(m.Samples)

	positives := 0
	for _, l := range labels {
		positives += l
	}
	s.log.Info(componentTraining, "training started", map[string]interface{}{
		"filter":    f.Name(),
		"samples":   len(images),
		"positives": positives,
	})

	if err := f.Train(images, labels, savePath); err != nil {
		s.log.Error(componentTraining, err, map[string]interface{}{"filter": f.Name()})
		return err
	}

	s.log.Info(componentTraining, "training finished", map[string]interface{}{
		"filter": f.Name(),
		"model":  savePath,
	})
	return nil
}
