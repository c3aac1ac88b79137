package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrain_LengthMismatchHasNoSideEffects(t *testing.T) {
	clf := &stubClassifier{}
	f, ext, _, loader := newStubFilter(clf)

	err := f.Train([]string{"a.png", "b.png"}, []int{1}, "out.yml")
	require.ErrorIs(t, err, ErrLengthMismatch)
	require.Empty(t, loader.calls)
	require.Zero(t, ext.calls)
	require.Zero(t, clf.trainCalls)
	require.Empty(t, clf.saved)
}

func TestTrain_RejectsEmptyAndBadLabels(t *testing.T) {
	clf := &stubClassifier{}
	f, _, _, loader := newStubFilter(clf)

	require.ErrorIs(t, f.Train(nil, nil, ""), ErrNoSamples)
	require.ErrorIs(t, f.Train([]string{"a.png"}, []int{2}, ""), ErrInvalidLabel)
	require.ErrorIs(t, f.Train([]string{"a.png", "b.png"}, []int{0, -1}, ""), ErrInvalidLabel)
	require.Empty(t, loader.calls)
	require.Zero(t, clf.trainCalls)
}

func TestTrain_BatchInOrder(t *testing.T) {
	clf := &stubClassifier{}
	f, _, _, loader := newStubFilter(clf)

	images := []string{"a.png", "bbb.png", "cc.png"}
	labels := []int{1, 0, 1}
	require.NoError(t, f.Train(images, labels, ""))

	require.Equal(t, images, loader.calls)
	require.Equal(t, 1, clf.trainCalls)
	require.Equal(t, [][]float64{{5}, {7}, {6}}, clf.features)
	require.Equal(t, labels, clf.labels)
	require.Empty(t, clf.saved)
}

func TestTrain_SavesAfterSuccess(t *testing.T) {
	clf := &stubClassifier{}
	f, _, _, _ := newStubFilter(clf)

	require.NoError(t, f.Train([]string{"a.png"}, []int{1}, "model.yml"))
	require.Equal(t, []string{"model.yml"}, clf.saved)
}

func TestTrain_LoadFailureAbortsWholeRun(t *testing.T) {
	clf := &stubClassifier{}
	f, ext, _, loader := newStubFilter(clf)
	loader.failOn = "b.png"

	err := f.Train([]string{"a.png", "b.png", "c.png"}, []int{1, 0, 1}, "model.yml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "b.png")
	require.Equal(t, []string{"a.png", "b.png"}, loader.calls)
	require.Equal(t, 1, ext.calls)
	require.Zero(t, clf.trainCalls)
	require.Empty(t, clf.saved)
}

func TestTrain_ExtractorFailureAborts(t *testing.T) {
	extErr := errors.New("bad histogram")
	clf := &stubClassifier{}
	f, ext, _, _ := newStubFilter(clf)
	ext.err = extErr

	err := f.Train([]string{"a.png"}, []int{0}, "model.yml")
	require.ErrorIs(t, err, extErr)
	require.Zero(t, clf.trainCalls)
	require.Empty(t, clf.saved)
}

func TestTrain_ClassifierErrorSkipsSave(t *testing.T) {
	trainErr := errors.New("dimension mismatch")
	clf := &stubClassifier{trainErr: trainErr}
	f, _, _, _ := newStubFilter(clf)

	err := f.Train([]string{"a.png"}, []int{0}, "model.yml")
	require.Equal(t, trainErr, err)
	require.Empty(t, clf.saved)
}
