package storage

import (
	"context"
	"sync"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// MemoryPredictionRepository история проверок в памяти, когда база не настроена
type MemoryPredictionRepository struct {
	mu          sync.RWMutex
	predictions []entity.Prediction
}

func NewMemoryPredictionRepository() *MemoryPredictionRepository {
	return &MemoryPredictionRepository{}
}

func (r *MemoryPredictionRepository) SaveBatch(ctx context.Context, predictions []entity.Prediction) error {
	r.mu.Lock()
	r.predictions = append(r.predictions, predictions...)
	r.mu.Unlock()
	return nil
}

func (r *MemoryPredictionRepository) Recent(ctx context.Context, userID int64, limit int) ([]entity.Prediction, error) {
	if limit <= 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entity.Prediction, 0, limit)
	for i := len(r.predictions) - 1; i >= 0 && len(result) < limit; i-- {
		if r.predictions[i].UserID == userID {
			result = append(result, r.predictions[i])
		}
	}
	return result, nil
}

var _ port.PredictionRepository = (*MemoryPredictionRepository)(nil)
