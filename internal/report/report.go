// Package report renders the analysis output: dataset dimensions, the
// feature-importance ranking, confusion matrices, metric summaries and the
// final predictions.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/eval"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/features"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/metrics"
)

// WriteDimensions prints the raw table shape and how many feature columns
// survived filtering.
func WriteDimensions(w io.Writer, rows, rawCols, reducedFeatures int) {
	fmt.Fprintf(w, "Dataset: %d rows, %d columns\n", rows, rawCols)
	fmt.Fprintf(w, "Numeric features without missing values: %d\n\n", reducedFeatures)
}

// WriteRanking prints the selected features with their importance scores,
// highest first.
func WriteRanking(w io.Writer, ranking features.Ranking, k int) {
	if k > len(ranking) {
		k = len(ranking)
	}
	fmt.Fprintf(w, "Top %d features by mean decrease in accuracy:\n", k)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Feature", "Importance"})
	for i := 0; i < k; i++ {
		table.Append([]string{
			strconv.Itoa(i + 1),
			ranking[i].Name,
			fmt.Sprintf("%.4f", ranking[i].Score),
		})
	}
	table.Render()
	fmt.Fprintln(w)
}

// WriteConfusionMatrix prints the matrix with true classes as rows and
// predicted classes as columns.
func WriteConfusionMatrix(w io.Writer, title string, cm *metrics.ConfusionMatrix) {
	fmt.Fprintln(w, title)
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"true \\ predicted"}, cm.Classes...))
	for i, class := range cm.Classes {
		row := []string{class}
		for j := range cm.Classes {
			row = append(row, strconv.Itoa(cm.Counts[i][j]))
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

// WriteMetrics prints accuracy and the macro-averaged precision, recall and
// F1 of an evaluation.
func WriteMetrics(w io.Writer, title string, r *eval.Result) {
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  Accuracy:        %.4f\n", r.Accuracy)
	fmt.Fprintf(w, "  Macro precision: %.4f\n", r.MacroPrecision)
	fmt.Fprintf(w, "  Macro recall:    %.4f\n", r.MacroRecall)
	fmt.Fprintf(w, "  Macro F1:        %.4f\n\n", r.MacroF1)
}

// WritePredictions prints the class predicted for each row of the external
// test file, in input row order.
func WritePredictions(w io.Writer, predictions []string) {
	fmt.Fprintf(w, "Predictions for the %d external test rows:\n", len(predictions))
	for i, class := range predictions {
		fmt.Fprintf(w, "  %2d: %s\n", i+1, class)
	}
}
