package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken   string
	ModelDir        string  // каталог моделей по умолчанию
	PosterizedModel string  // явный файл модели постеризации, пусто = из ModelDir
	Threshold       float64 // порог решения фильтров
	InvertThreshold bool
	ImageBackend    string // native или gocv
	DBPath          string // пусто = история в памяти
	LogLevel        string
	SVMEpochs       int
	SVMLambda       float64
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		ModelDir:        getEnv("MODEL_DIR", filepath.Join(".", "data", "models")),
		PosterizedModel: os.Getenv("POSTERIZED_MODEL"),
		Threshold:       getEnvAsFloat("THRESHOLD", 0.5),
		InvertThreshold: getEnvAsBool("INVERT_THRESHOLD", false),
		ImageBackend:    getEnv("IMAGE_BACKEND", "native"),
		DBPath:          getEnvOrEmpty("DB_PATH", filepath.Join(".", "data", "imgfilter.db")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SVMEpochs:       getEnvAsInt("SVM_EPOCHS", 200),
		SVMLambda:       getEnvAsFloat("SVM_LAMBDA", 0.01),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrEmpty как getEnv, но явно заданная пустая строка сохраняется
func getEnvOrEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
