package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"imgfilter/internal/domain/entity"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err)
}

func TestPredictionRepository_SaveAndRecent(t *testing.T) {
	repo := NewPredictionRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveBatch(ctx, []entity.Prediction{
		{ID: "p1", UserID: 7, ImagePath: "/tmp/a.png", Filter: "posterized", Score: 0.2,
			Threshold: entity.DefaultThreshold(), Positive: false, CreatedAt: base},
		{ID: "p2", UserID: 8, ImagePath: "/tmp/b.png", Filter: "posterized", Score: 0.9,
			Threshold: entity.DefaultThreshold(), Positive: true, CreatedAt: base.Add(time.Minute)},
	}))
	require.NoError(t, repo.SaveBatch(ctx, []entity.Prediction{
		{ID: "p3", UserID: 7, ImagePath: "/tmp/c.png", Filter: "posterized", Score: 0.3,
			Threshold: entity.Threshold{Value: 0.4, Invert: true}, Positive: true, CreatedAt: base.Add(2 * time.Minute)},
	}))

	recent, err := repo.Recent(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	require.Equal(t, "p3", recent[0].ID)
	require.Equal(t, "/tmp/c.png", recent[0].ImagePath)
	require.Equal(t, 0.3, recent[0].Score)
	require.Equal(t, entity.Threshold{Value: 0.4, Invert: true}, recent[0].Threshold)
	require.True(t, recent[0].Positive)
	require.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	require.Equal(t, "p1", recent[1].ID)
	require.False(t, recent[1].Positive)

	limited, err := repo.Recent(ctx, 7, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestPredictionRepository_DuplicateIDRollsBack(t *testing.T) {
	repo := NewPredictionRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now()

	err := repo.SaveBatch(ctx, []entity.Prediction{
		{ID: "dup", UserID: 1, ImagePath: "a", Filter: "posterized", CreatedAt: now},
		{ID: "dup", UserID: 1, ImagePath: "b", Filter: "posterized", CreatedAt: now},
	})
	require.Error(t, err)

	recent, err := repo.Recent(ctx, 1, 10)
	require.NoError(t, err)
	require.Empty(t, recent)
}
