package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// InspectionService проверяет изображения пользователей и ведёт историю.
type InspectionService struct {
	users   *UserService
	bank    *FilterBank
	history port.PredictionRepository
	now     func() time.Time
}

// NewInspectionService создаёт сервис проверки изображений.
func NewInspectionService(users *UserService, bank *FilterBank, history port.PredictionRepository) *InspectionService {
	return &InspectionService{
		users:   users,
		bank:    bank,
		history: history,
		now:     time.Now,
	}
}

// Inspect прогоняет изображение через набор фильтров с личным порогом пользователя
// и сохраняет результаты. userID == 0 означает проверку без пользователя.
func (s *InspectionService) Inspect(ctx context.Context, userID, chatID int64, imagePath string, roi *entity.Region) (*entity.Inspection, error) {
	if s.bank == nil {
		return nil, errors.New("filter bank is not configured")
	}

	var override *entity.Threshold
	if userID != 0 && s.users != nil {
		user, err := s.users.Get(ctx, userID, chatID)
		if err != nil {
			return nil, err
		}
		override = user.Threshold
	}

	inspection, err := s.bank.Inspect(imagePath, roi, override)
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	for i := range inspection.Predictions {
		inspection.Predictions[i].ID = uuid.NewString()
		inspection.Predictions[i].UserID = userID
		inspection.Predictions[i].CreatedAt = createdAt
	}

	if s.history != nil {
		if err := s.history.SaveBatch(ctx, inspection.Predictions); err != nil {
			return nil, err
		}
	}

	return inspection, nil
}

// History возвращает последние проверки пользователя
func (s *InspectionService) History(ctx context.Context, userID int64, limit int) ([]entity.Prediction, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, userID, limit)
}
