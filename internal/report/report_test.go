package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/eval"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/features"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/metrics"
)

func sampleRanking() features.Ranking {
	return features.Ranking{
		{Name: "roll_belt", Score: 0.21},
		{Name: "yaw_belt", Score: 0.13},
		{Name: "magnet_dumbbell_z", Score: 0.08},
	}
}

func TestWriteDimensions(t *testing.T) {
	var out bytes.Buffer
	WriteDimensions(&out, 19622, 160, 52)
	require.Contains(t, out.String(), "19622 rows, 160 columns")
	require.Contains(t, out.String(), "Numeric features without missing values: 52")
}

func TestWriteRanking(t *testing.T) {
	var out bytes.Buffer
	WriteRanking(&out, sampleRanking(), 2)
	require.Contains(t, out.String(), "Top 2 features")
	require.Contains(t, out.String(), "roll_belt")
	require.Contains(t, out.String(), "yaw_belt")
	require.NotContains(t, out.String(), "magnet_dumbbell_z")
}

func TestWriteRankingTruncates(t *testing.T) {
	var out bytes.Buffer
	WriteRanking(&out, sampleRanking(), 12)
	require.Contains(t, out.String(), "Top 3 features")
}

func TestWriteConfusionMatrix(t *testing.T) {
	cm, err := metrics.Build(
		[]string{"A", "A", "B", "B"},
		[]string{"A", "B", "B", "B"},
	)
	require.NoError(t, err)
	var out bytes.Buffer
	WriteConfusionMatrix(&out, "Confusion matrix:", cm)
	text := out.String()
	require.Contains(t, text, "Confusion matrix:")
	require.Contains(t, text, "A")
	require.Contains(t, text, "B")
}

func TestWriteMetrics(t *testing.T) {
	var out bytes.Buffer
	WriteMetrics(&out, "Test split performance:", &eval.Result{
		Accuracy:       0.9876,
		MacroPrecision: 0.98,
		MacroRecall:    0.97,
		MacroF1:        0.975,
	})
	require.Contains(t, out.String(), "Accuracy:        0.9876")
	require.Contains(t, out.String(), "Macro F1:        0.9750")
}

func TestWritePredictions(t *testing.T) {
	var out bytes.Buffer
	WritePredictions(&out, []string{"B", "A", "E"})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], "1: B")
	require.Contains(t, lines[3], "3: E")
}

func TestSaveImportanceChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importance.png")
	require.NoError(t, SaveImportanceChart(path, sampleRanking(), 3))
	require.FileExists(t, path)
}
