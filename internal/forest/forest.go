// Package forest implements an ensemble-of-trees classifier on top of the
// golearn random tree: many independently trained decision trees whose
// predictions are combined by majority vote. Trees are fitted sequentially
// on seeded bootstrap samples, so the same seed always grows the same
// forest.
package forest

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/trees"
	exprand "golang.org/x/exp/rand"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/metrics"
)

// ErrDimension reports a prediction-time table that does not carry the
// feature columns the classifier was trained on.
var ErrDimension = errors.New("forest: feature mismatch")

// Config shapes the ensemble. Seed drives both the bootstrap draws and the
// per-split feature selection inside the trees.
type Config struct {
	Trees int
	Mtry  int
	Seed  int64
}

// Classifier is a trained forest bound to the feature set and label
// attribute it was fitted with. It is immutable once trained.
type Classifier struct {
	ensemble  []*trees.RandomTree
	features  []string
	label     string
	featAttrs []base.Attribute
	classAttr *base.CategoricalAttribute
	fallback  string
}

// Train fits the forest on the given feature columns of df and returns the
// classifier together with its in-training confusion matrix from
// resubstitution predictions.
func Train(df dataframe.DataFrame, features []string, label string, cfg Config) (*Classifier, *metrics.ConfusionMatrix, error) {
	if len(features) == 0 {
		return nil, nil, fmt.Errorf("%w: no feature columns given", ErrDimension)
	}
	if cfg.Trees < 1 {
		return nil, nil, fmt.Errorf("forest: tree count must be positive, got %d", cfg.Trees)
	}
	c := &Classifier{
		features:  features,
		label:     label,
		featAttrs: make([]base.Attribute, len(features)),
		classAttr: new(base.CategoricalAttribute),
	}
	for i, name := range features {
		c.featAttrs[i] = base.NewFloatAttribute(name)
	}
	c.classAttr.SetName(label)

	cols, err := c.featureColumns(df)
	if err != nil {
		return nil, nil, err
	}
	truth := df.Col(label).Records()
	c.fallback = truth[0]

	mtry := cfg.Mtry
	if mtry > len(features) {
		mtry = len(features)
	}
	if mtry < 1 {
		mtry = 1
	}

	// The golearn tree draws split candidates from the process RNG; pin it
	// so sequential fitting replays the same draws. Bootstrap indices come
	// from a separate explicit source.
	rand.Seed(cfg.Seed)
	boot := exprand.New(exprand.NewSource(uint64(cfg.Seed)))

	n := len(truth)
	c.ensemble = make([]*trees.RandomTree, cfg.Trees)
	for i := range c.ensemble {
		sample := make([]int, n)
		for j := range sample {
			sample[j] = boot.Intn(n)
		}
		inst, err := c.instances(cols, truth, sample)
		if err != nil {
			return nil, nil, err
		}
		tree := trees.NewRandomTree(mtry)
		if err := tree.Fit(inst); err != nil {
			return nil, nil, fmt.Errorf("forest: fit tree %d: %w", i, err)
		}
		c.ensemble[i] = tree
	}

	predicted, err := c.Predict(df)
	if err != nil {
		return nil, nil, err
	}
	cm, err := metrics.Build(truth, predicted)
	if err != nil {
		return nil, nil, err
	}
	return c, cm, nil
}

// Features returns the feature names the classifier was trained on.
func (c *Classifier) Features() []string {
	return append([]string(nil), c.features...)
}

// Predict classifies every row of df by majority vote over the trees, which
// must carry the training feature columns. Extra columns, including any
// label column, are ignored. Vote ties go to the lexicographically smallest
// class so predictions are reproducible.
func (c *Classifier) Predict(df dataframe.DataFrame) ([]string, error) {
	cols, err := c.featureColumns(df)
	if err != nil {
		return nil, err
	}
	inst, err := c.instances(cols, nil, nil)
	if err != nil {
		return nil, err
	}
	n := df.Nrow()
	votes := make([]map[string]int, n)
	for i := range votes {
		votes[i] = make(map[string]int)
	}
	for _, tree := range c.ensemble {
		grid, err := tree.Predict(inst)
		if err != nil {
			return nil, fmt.Errorf("forest: predict: %w", err)
		}
		for row := 0; row < n; row++ {
			votes[row][base.GetClass(grid, row)]++
		}
	}
	labels := make([]string, n)
	for row := range labels {
		labels[row] = majority(votes[row])
	}
	return labels, nil
}

func majority(votes map[string]int) string {
	classes := make([]string, 0, len(votes))
	for class := range votes {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	best := classes[0]
	for _, class := range classes[1:] {
		if votes[class] > votes[best] {
			best = class
		}
	}
	return best
}

// featureColumns extracts the training feature columns from df in schema
// order.
func (c *Classifier) featureColumns(df dataframe.DataFrame) ([][]float64, error) {
	present := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = true
	}
	cols := make([][]float64, len(c.features))
	for i, name := range c.features {
		if !present[name] {
			return nil, fmt.Errorf("%w: column %q missing from table", ErrDimension, name)
		}
		cols[i] = df.Col(name).Float()
	}
	return cols, nil
}

// instances builds a golearn grid over the classifier's attribute schema
// for the given row subset (nil means all rows, in order). Attributes are
// shared across grids so categorical label values keep their encoding
// between training and prediction. Unlabeled rows get a placeholder class
// that golearn requires but never reads.
func (c *Classifier) instances(cols [][]float64, labels []string, rows []int) (*base.DenseInstances, error) {
	n := len(cols[0])
	if rows == nil {
		rows = make([]int, n)
		for i := range rows {
			rows[i] = i
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(c.featAttrs))
	for i, attr := range c.featAttrs {
		specs[i] = inst.AddAttribute(attr)
	}
	inst.AddAttribute(c.classAttr)
	if err := inst.AddClassAttribute(c.classAttr); err != nil {
		return nil, fmt.Errorf("forest: class attribute: %w", err)
	}
	if err := inst.Extend(len(rows)); err != nil {
		return nil, fmt.Errorf("forest: allocate instances: %w", err)
	}
	for out, src := range rows {
		for i := range specs {
			inst.Set(specs[i], out, base.PackFloatToBytes(cols[i][src]))
		}
		if labels != nil {
			base.SetClass(inst, out, labels[src])
		} else {
			base.SetClass(inst, out, c.fallback)
		}
	}
	return inst, nil
}
