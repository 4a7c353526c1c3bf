package forest

import (
	"errors"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var classNames = []string{"A", "B", "C", "D", "E"}

// separable builds a five-class table whose classes occupy well separated
// regions of feature space.
func separable(perClass int, seed uint64) dataframe.DataFrame {
	rng := rand.New(rand.NewSource(seed))
	n := perClass * len(classNames)
	f1 := make([]float64, 0, n)
	f2 := make([]float64, 0, n)
	f3 := make([]float64, 0, n)
	labels := make([]string, 0, n)
	for k, class := range classNames {
		center := float64(k) * 10
		for i := 0; i < perClass; i++ {
			f1 = append(f1, center+rng.Float64())
			f2 = append(f2, 2*center+rng.Float64())
			f3 = append(f3, 3*center+rng.Float64())
			labels = append(labels, class)
		}
	}
	return dataframe.New(
		series.New(f1, series.Float, "f1"),
		series.New(f2, series.Float, "f2"),
		series.New(f3, series.Float, "f3"),
		series.New(labels, series.String, "classe"),
	)
}

func TestTrainSeparable(t *testing.T) {
	df := separable(30, 1)
	clf, cm, err := Train(df, []string{"f1", "f2", "f3"}, "classe", Config{Trees: 30, Mtry: 2, Seed: 44111342})
	require.NoError(t, err)
	require.NotNil(t, clf)
	require.GreaterOrEqual(t, cm.Accuracy(), 0.99)
}

func TestPredictUnlabeledTable(t *testing.T) {
	df := separable(30, 1)
	clf, _, err := Train(df, []string{"f1", "f2", "f3"}, "classe", Config{Trees: 30, Mtry: 2, Seed: 44111342})
	require.NoError(t, err)

	unlabeled := separable(4, 2).Drop("classe")
	require.NoError(t, unlabeled.Err)
	labels, err := clf.Predict(unlabeled)
	require.NoError(t, err)
	require.Len(t, labels, unlabeled.Nrow())
	for _, l := range labels {
		require.Contains(t, classNames, l)
	}
}

func TestPredictMissingColumn(t *testing.T) {
	df := separable(20, 1)
	clf, _, err := Train(df, []string{"f1", "f2", "f3"}, "classe", Config{Trees: 10, Mtry: 2, Seed: 44111342})
	require.NoError(t, err)

	narrow := df.Drop("f2")
	require.NoError(t, narrow.Err)
	_, err = clf.Predict(narrow)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDimension))
}

func TestTrainNoFeatures(t *testing.T) {
	df := separable(5, 1)
	_, _, err := Train(df, nil, "classe", Config{Trees: 5, Mtry: 1, Seed: 1})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDimension))
}

func TestMtryCappedAtFeatureCount(t *testing.T) {
	df := separable(20, 3)
	_, cm, err := Train(df, []string{"f1", "f2", "f3"}, "classe", Config{Trees: 10, Mtry: 8, Seed: 44111342})
	require.NoError(t, err)
	require.GreaterOrEqual(t, cm.Accuracy(), 0.99)
}
