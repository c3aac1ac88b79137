package container

import (
	"fmt"

	"imgfilter/config"
	app "imgfilter/internal/application"
	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
	"imgfilter/internal/filter"
	"imgfilter/internal/infrastructure/classifier"
	"imgfilter/internal/infrastructure/models"
	"imgfilter/internal/infrastructure/storage"
	"imgfilter/internal/infrastructure/storage/sqlite"
	"imgfilter/internal/infrastructure/vision"
	"imgfilter/internal/logger"
)

type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService
	TrainingService   *app.TrainingService
	Bank              *app.FilterBank

	close func() error
}

func New(userRepo port.UserRepository, history port.PredictionRepository, bank *app.FilterBank, base entity.Threshold, log *logger.Logger) *Container {
	userService := app.NewUserService(userRepo, base)
	inspectionService := app.NewInspectionService(userService, bank, history)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
		TrainingService:   app.NewTrainingService(log),
		Bank:              bank,
		close:             func() error { return nil },
	}
}

// Close освобождает ресурсы, открытые FromConfig
func (c *Container) Close() error {
	return c.close()
}

// Threshold порог фильтров из конфигурации
func Threshold(cfg *config.Config) entity.Threshold {
	return entity.Threshold{Value: cfg.Threshold, Invert: cfg.InvertThreshold}
}

// PosterizedFilter собирает фильтр постеризации. Если withModel == false,
// модель не загружается (обучение с нуля).
func PosterizedFilter(cfg *config.Config, withModel bool) (*filter.Filter, error) {
	reader, err := vision.NewReader(cfg.ImageBackend)
	if err != nil {
		return nil, err
	}

	variant := filter.Posterized(vision.NewPosterizationExtractor(), reader.Load)
	svm := classifier.NewLinearSVM(classifier.SVMOptions{Epochs: cfg.SVMEpochs, Lambda: cfg.SVMLambda})
	opts := []filter.Option{
		filter.WithThreshold(cfg.Threshold),
		filter.WithInvertThreshold(cfg.InvertThreshold),
	}

	if !withModel {
		return filter.Bind(variant, svm, reader, opts...), nil
	}
	if cfg.PosterizedModel != "" {
		opts = append(opts, filter.WithModelPath(cfg.PosterizedModel))
	}
	return filter.New(variant, svm, reader, models.NewDirResolver(cfg.ModelDir), opts...)
}

// History открывает хранилище истории: SQLite, если задан путь, иначе память
func History(cfg *config.Config) (port.PredictionRepository, func() error, error) {
	if cfg.DBPath == "" {
		return storage.NewMemoryPredictionRepository(), func() error { return nil }, nil
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewPredictionRepository(db), db.Close, nil
}

// FromConfig собирает все сервисы приложения по конфигурации
func FromConfig(cfg *config.Config, log *logger.Logger) (*Container, error) {
	posterized, err := PosterizedFilter(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("build posterized filter: %w", err)
	}

	history, closeHistory, err := History(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	bank := app.NewFilterBank(log, posterized)
	c := New(storage.NewMemoryUserRepository(), history, bank, Threshold(cfg), log)
	c.close = closeHistory

	log.Info("container", "filters ready", map[string]interface{}{
		"filters": len(bank.Filters()),
		"backend": cfg.ImageBackend,
		"history": cfg.DBPath,
	})
	return c, nil
}
