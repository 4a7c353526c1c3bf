package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/features"
)

// SaveImportanceChart renders the top-k importance scores as a bar chart and
// saves it as a PNG file.
func SaveImportanceChart(path string, ranking features.Ranking, k int) error {
	if k > len(ranking) {
		k = len(ranking)
	}
	values := make(plotter.Values, k)
	names := make([]string, k)
	for i := 0; i < k; i++ {
		values[i] = ranking[i].Score
		names[i] = ranking[i].Name
	}
	p := plot.New()
	p.Title.Text = "Feature importance"
	p.Y.Label.Text = "Mean decrease in accuracy"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("report: bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -0.8
	p.X.Tick.Label.YAlign = -0.3
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save chart: %w", err)
	}
	return nil
}
