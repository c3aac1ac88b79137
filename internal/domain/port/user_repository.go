package port

import (
	"context"

	"imgfilter/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей бота
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет пользователя целиком
	Save(ctx context.Context, user *entity.User) error

	// UpdateThreshold задаёт или сбрасывает (nil) личный порог
	UpdateThreshold(ctx context.Context, userID int64, th *entity.Threshold) error
}
