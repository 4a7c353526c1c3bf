// Package eval scores a trained classifier against labeled tables and
// produces bare predictions for unlabeled ones.
package eval

import (
	"github.com/go-gota/gota/dataframe"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/forest"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/metrics"
)

// Result bundles per-row predictions with the derived performance numbers.
// The macro averages weight each class equally.
type Result struct {
	Predictions    []string
	Matrix         *metrics.ConfusionMatrix
	Accuracy       float64
	MacroPrecision float64
	MacroRecall    float64
	MacroF1        float64
}

// Evaluate predicts every row of a labeled table and scores the predictions
// against the label column.
func Evaluate(clf *forest.Classifier, df dataframe.DataFrame, label string) (*Result, error) {
	predicted, err := clf.Predict(df)
	if err != nil {
		return nil, err
	}
	cm, err := metrics.Build(df.Col(label).Records(), predicted)
	if err != nil {
		return nil, err
	}
	return &Result{
		Predictions:    predicted,
		Matrix:         cm,
		Accuracy:       cm.Accuracy(),
		MacroPrecision: cm.MacroPrecision(),
		MacroRecall:    cm.MacroRecall(),
		MacroF1:        cm.MacroF1(),
	}, nil
}

// Predict returns per-row class labels for a table without ground truth,
// in input row order.
func Predict(clf *forest.Classifier, df dataframe.DataFrame) ([]string, error) {
	return clf.Predict(df)
}
