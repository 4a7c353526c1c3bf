package dataset

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrSchema reports a table whose columns cannot support the pipeline.
var ErrSchema = errors.New("dataset: schema mismatch")

// Filter projects the table onto its uniformly numeric columns that carry no
// missing values, and reattaches the label column last. Row count and row
// order are preserved, so filtering an already filtered table is a no-op.
func Filter(df dataframe.DataFrame, label string) (dataframe.DataFrame, error) {
	if !hasColumn(df, label) {
		return dataframe.DataFrame{}, fmt.Errorf("%w: label column %q not found", ErrSchema, label)
	}
	var keep []string
	for _, name := range df.Names() {
		if name == label {
			continue
		}
		col := df.Col(name)
		if col.Type() != series.Float && col.Type() != series.Int {
			continue
		}
		if col.HasNaN() {
			continue
		}
		keep = append(keep, name)
	}
	if len(keep) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: no numeric feature columns survived filtering", ErrSchema)
	}
	out := df.Select(append(keep, label))
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrSchema, out.Err)
	}
	return out, nil
}

// FeatureNames lists the non-label columns of a filtered table in column order.
func FeatureNames(df dataframe.DataFrame, label string) []string {
	var names []string
	for _, name := range df.Names() {
		if name != label {
			names = append(names, name)
		}
	}
	return names
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
