package sqlite

import (
	"context"
	"fmt"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// PredictionRepository implements port.PredictionRepository for SQLite.
type PredictionRepository struct {
	db *DB
}

// NewPredictionRepository creates a new SQLite prediction repository.
func NewPredictionRepository(db *DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// SaveBatch inserts the predictions of one inspection in a single transaction.
func (r *PredictionRepository) SaveBatch(ctx context.Context, predictions []entity.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	tx, err := r.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO predictions (id, user_id, image_path, filter, score, threshold, invert_threshold, positive, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range predictions {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.UserID, p.ImagePath, p.Filter, p.Score,
			p.Threshold.Value, p.Threshold.Invert, p.Positive, p.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert prediction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit predictions: %w", err)
	}
	return nil
}

// Recent returns the latest predictions of a user, newest first.
func (r *PredictionRepository) Recent(ctx context.Context, userID int64, limit int) ([]entity.Prediction, error) {
	if limit <= 0 {
		return nil, nil
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows, err := r.db.Conn().QueryContext(ctx, `
		SELECT id, user_id, image_path, filter, score, threshold, invert_threshold, positive, created_at
		FROM predictions
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var result []entity.Prediction
	for rows.Next() {
		var p entity.Prediction
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ImagePath, &p.Filter, &p.Score,
			&p.Threshold.Value, &p.Threshold.Invert, &p.Positive, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}
	return result, nil
}

var _ port.PredictionRepository = (*PredictionRepository)(nil)
