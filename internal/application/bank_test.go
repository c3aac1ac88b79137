package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

func TestFilterBank_OrdersBySpeed(t *testing.T) {
	var calls []string
	bank := NewFilterBank(nil,
		&fakeFilter{name: "slow", speed: 5, calls: &calls},
		&fakeFilter{name: "fast", speed: 1, calls: &calls},
		&fakeFilter{name: "medium", speed: 3, calls: &calls},
		&fakeFilter{name: "fast2", speed: 1, calls: &calls},
	)

	_, err := bank.Inspect("img.png", nil, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"fast", "fast2", "medium", "slow"}, calls)

	names := make([]string, 0, 4)
	for _, f := range bank.Filters() {
		names = append(names, f.Name())
	}
	require.Equal(t, calls, names)
}

func TestFilterBank_UsesFilterThresholds(t *testing.T) {
	bank := NewFilterBank(nil,
		&fakeFilter{name: "posterized", speed: 1, score: 0.7, threshold: entity.Threshold{Value: 0.5}},
		&fakeFilter{name: "dark", speed: 2, score: 0.7, threshold: entity.Threshold{Value: 0.5, Invert: true}},
		&fakeFilter{name: "edge", speed: 3, score: 0.5, threshold: entity.Threshold{Value: 0.5}},
	)

	inspection, err := bank.Inspect("img.png", nil, nil)
	require.NoError(t, err)
	require.Len(t, inspection.Predictions, 3)
	require.True(t, inspection.Predictions[0].Positive)
	require.False(t, inspection.Predictions[1].Positive)
	require.False(t, inspection.Predictions[2].Positive)
	require.True(t, inspection.HasDefects)
	require.Equal(t, []string{"posterized"}, inspection.Positive())
}

func TestFilterBank_Override(t *testing.T) {
	bank := NewFilterBank(nil,
		&fakeFilter{name: "posterized", speed: 1, score: 0.7, threshold: entity.DefaultThreshold()},
	)
	override := entity.Threshold{Value: 0.8}

	inspection, err := bank.Inspect("img.png", nil, &override)
	require.NoError(t, err)
	require.False(t, inspection.HasDefects)
	require.Equal(t, override, inspection.Predictions[0].Threshold)
}

func TestFilterBank_FailureAborts(t *testing.T) {
	var calls []string
	bank := NewFilterBank(nil,
		&fakeFilter{name: "first", speed: 1, calls: &calls},
		&fakeFilter{name: "broken", speed: 2, err: errBroken, calls: &calls},
		&fakeFilter{name: "last", speed: 3, calls: &calls},
	)

	_, err := bank.Inspect("img.png", nil, nil)
	require.ErrorIs(t, err, errBroken)
	require.Contains(t, err.Error(), "broken")
	require.Equal(t, []string{"first", "broken"}, calls)
}

func TestFilterBank_Empty(t *testing.T) {
	inspection, err := NewFilterBank(nil).Inspect("img.png", &entity.Region{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	require.False(t, inspection.HasDefects)
	require.Empty(t, inspection.Predictions)
	require.NotNil(t, inspection.Region)
}

var _ port.DefectFilter = (*fakeFilter)(nil)
