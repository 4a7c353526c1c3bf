// Package metrics derives classification performance numbers from a
// confusion matrix. Macro averages weight every class equally, regardless of
// class frequency, and a precision that is undefined (the class was never
// predicted) stays NaN rather than being rounded to zero.
package metrics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ConfusionMatrix counts (true class, predicted class) pairs over a fixed,
// ordered class set. Counts[i][j] holds rows whose true class is Classes[i]
// and whose predicted class is Classes[j].
type ConfusionMatrix struct {
	Classes []string
	Counts  [][]int

	index map[string]int
}

// NewConfusionMatrix returns an empty matrix over the given class set,
// preserving its order.
func NewConfusionMatrix(classes []string) *ConfusionMatrix {
	m := &ConfusionMatrix{
		Classes: append([]string(nil), classes...),
		Counts:  make([][]int, len(classes)),
		index:   make(map[string]int, len(classes)),
	}
	for i, c := range classes {
		m.Counts[i] = make([]int, len(classes))
		m.index[c] = i
	}
	return m
}

// Build tallies a confusion matrix from parallel slices of true and
// predicted labels. The class set is the sorted union of both slices.
func Build(truth, predicted []string) (*ConfusionMatrix, error) {
	if len(truth) != len(predicted) {
		return nil, fmt.Errorf("metrics: %d true labels but %d predictions", len(truth), len(predicted))
	}
	seen := make(map[string]bool)
	for _, c := range truth {
		seen[c] = true
	}
	for _, c := range predicted {
		seen[c] = true
	}
	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	m := NewConfusionMatrix(classes)
	for i := range truth {
		m.Counts[m.index[truth[i]]][m.index[predicted[i]]]++
	}
	return m, nil
}

// Total is the number of observations tallied.
func (m *ConfusionMatrix) Total() int {
	sum := 0
	for i := range m.Counts {
		for _, c := range m.Counts[i] {
			sum += c
		}
	}
	return sum
}

// RowSum is the number of true instances of class i.
func (m *ConfusionMatrix) RowSum(i int) int {
	sum := 0
	for _, c := range m.Counts[i] {
		sum += c
	}
	return sum
}

// ColSum is the number of predictions of class j.
func (m *ConfusionMatrix) ColSum(j int) int {
	sum := 0
	for i := range m.Counts {
		sum += m.Counts[i][j]
	}
	return sum
}

// Accuracy is the diagonal sum over the total.
func (m *ConfusionMatrix) Accuracy() float64 {
	diag := 0
	for i := range m.Counts {
		diag += m.Counts[i][i]
	}
	return float64(diag) / float64(m.Total())
}

// Precision is correct predictions of the class over all predictions of the
// class. NaN when the class was never predicted.
func (m *ConfusionMatrix) Precision(i int) float64 {
	return float64(m.Counts[i][i]) / float64(m.ColSum(i))
}

// Recall is correct predictions of the class over all true instances of it.
func (m *ConfusionMatrix) Recall(i int) float64 {
	return float64(m.Counts[i][i]) / float64(m.RowSum(i))
}

// F1 is the harmonic mean of precision and recall for class i.
func (m *ConfusionMatrix) F1(i int) float64 {
	p, r := m.Precision(i), m.Recall(i)
	return 2 * p * r / (p + r)
}

// MacroPrecision averages per-class precision with equal class weight.
// A NaN precision for any class makes the macro average NaN.
func (m *ConfusionMatrix) MacroPrecision() float64 {
	return m.macro((*ConfusionMatrix).Precision)
}

// MacroRecall averages per-class recall with equal class weight.
func (m *ConfusionMatrix) MacroRecall() float64 {
	return m.macro((*ConfusionMatrix).Recall)
}

// MacroF1 averages per-class F1 with equal class weight.
func (m *ConfusionMatrix) MacroF1() float64 {
	return m.macro((*ConfusionMatrix).F1)
}

func (m *ConfusionMatrix) macro(metric func(*ConfusionMatrix, int) float64) float64 {
	perClass := make([]float64, len(m.Classes))
	for i := range m.Classes {
		perClass[i] = metric(m, i)
	}
	return stat.Mean(perClass, nil)
}

// Accuracy is the fraction of predictions matching the true labels.
func Accuracy(truth, predicted []string) float64 {
	correct := 0
	for i := range truth {
		if truth[i] == predicted[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth))
}
