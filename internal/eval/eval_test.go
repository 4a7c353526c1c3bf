package eval

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/forest"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/split"
)

var classNames = []string{"A", "B", "C", "D", "E"}

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

func TestEvaluateSeparableReachesNearPerfectAccuracy(t *testing.T) {
	df := separable(40, 1)
	trainIdx, testIdx := split.Indices(df.Nrow(), 0.7, 13563)
	training := df.Subset(trainIdx)
	testing := df.Subset(testIdx)

	clf, _, err := forest.Train(training, []string{"f1", "f2", "f3"}, "classe",
		forest.Config{Trees: 50, Mtry: 2, Seed: 44111342})
	require.NoError(t, err)

	result, err := Evaluate(clf, testing, "classe")
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.Accuracy, 0.99)

	// Near-diagonal: off-diagonal mass at most 1% of the total.
	offDiag := 0
	for i := range result.Matrix.Classes {
		for j := range result.Matrix.Classes {
			if i != j {
				offDiag += result.Matrix.Counts[i][j]
			}
		}
	}
	require.LessOrEqual(t, float64(offDiag), 0.01*float64(result.Matrix.Total()))
}

func TestPredictTwentyUnlabeledRows(t *testing.T) {
	df := separable(30, 1)
	clf, _, err := forest.Train(df, []string{"f1", "f2", "f3"}, "classe",
		forest.Config{Trees: 30, Mtry: 2, Seed: 44111342})
	require.NoError(t, err)

	external := separable(4, 9).Drop("classe")
	require.NoError(t, external.Err)
	require.Equal(t, 20, external.Nrow())

	labels, err := Predict(clf, external)
	require.NoError(t, err)
	require.Len(t, labels, 20)
	for _, l := range labels {
		require.Contains(t, classNames, l)
	}
	// Rows are generated class-block by class-block, so a well trained
	// forest returns them in that same order.
	require.Equal(t, []string{"A", "A", "A", "A", "B"}, labels[:5])
}
