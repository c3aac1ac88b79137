package port

import (
	"context"

	"imgfilter/internal/domain/entity"
)

// PredictionRepository интерфейс хранилища истории проверок
type PredictionRepository interface {
	// SaveBatch сохраняет результаты одной проверки
	SaveBatch(ctx context.Context, predictions []entity.Prediction) error

	// Recent возвращает последние записи пользователя, новые первыми
	Recent(ctx context.Context, userID int64, limit int) ([]entity.Prediction, error)
}
