// Package features ranks the columns of a feature matrix by how much a
// preliminary random forest depends on them, using permutation importance:
// the mean decrease in classification accuracy when a column's values are
// shuffled.
package features

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/dataset"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/forest"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/metrics"
)

// Importance is one scored feature.
type Importance struct {
	Name  string
	Score float64
}

// Ranking lists features by descending importance. Ties keep the original
// column order.
type Ranking []Importance

// Top returns the names of the k highest-ranked features, or all of them
// when fewer than k exist.
func (r Ranking) Top(k int) []string {
	if k > len(r) {
		k = len(r)
	}
	names := make([]string, k)
	for i := 0; i < k; i++ {
		names[i] = r[i].Name
	}
	return names
}

// Config drives the ranking run. Forest shapes the preliminary ensemble;
// when Forest.Mtry is zero the usual square-root-of-features default is used.
type Config struct {
	PerClass int
	Repeats  int
	Seed     int64
	Forest   forest.Config
}

// StratifiedSample takes the first perClass rows of each label value, in
// input order. This is a stable draw, not a random one: the same table
// always yields the same sample.
func StratifiedSample(df dataframe.DataFrame, label string, perClass int) dataframe.DataFrame {
	taken := make(map[string]int)
	var idx []int
	for i, class := range df.Col(label).Records() {
		if taken[class] < perClass {
			taken[class]++
			idx = append(idx, i)
		}
	}
	return df.Subset(idx)
}

// Rank trains a preliminary forest on a stratified sample of df and scores
// every feature column by its mean decrease in accuracy over Repeats seeded
// permutations. A constant column scores exactly zero.
func Rank(df dataframe.DataFrame, label string, cfg Config) (Ranking, error) {
	sample := StratifiedSample(df, label, cfg.PerClass)
	if sample.Err != nil {
		return nil, fmt.Errorf("features: sample: %w", sample.Err)
	}
	feats := dataset.FeatureNames(df, label)

	fcfg := cfg.Forest
	if fcfg.Trees < 1 {
		fcfg.Trees = 1
	}
	if fcfg.Mtry <= 0 {
		fcfg.Mtry = int(math.Sqrt(float64(len(feats))))
		if fcfg.Mtry < 1 {
			fcfg.Mtry = 1
		}
	}
	clf, _, err := forest.Train(sample, feats, label, fcfg)
	if err != nil {
		return nil, err
	}

	truth := sample.Col(label).Records()
	basePred, err := clf.Predict(sample)
	if err != nil {
		return nil, err
	}
	baseAcc := metrics.Accuracy(truth, basePred)

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	ranking := make(Ranking, len(feats))
	for j, name := range feats {
		vals := sample.Col(name).Float()
		drops := make([]float64, cfg.Repeats)
		for r := range drops {
			permuted := sample.Mutate(series.New(shuffled(vals, rng), series.Float, name))
			if permuted.Err != nil {
				return nil, fmt.Errorf("features: permute %q: %w", name, permuted.Err)
			}
			pred, err := clf.Predict(permuted)
			if err != nil {
				return nil, err
			}
			drops[r] = baseAcc - metrics.Accuracy(truth, pred)
		}
		ranking[j] = Importance{Name: name, Score: stat.Mean(drops, nil)}
	}
	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].Score > ranking[b].Score
	})
	return ranking, nil
}

func shuffled(vals []float64, rng *rand.Rand) []float64 {
	out := append([]float64(nil), vals...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
