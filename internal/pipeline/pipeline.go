// Package pipeline wires the report stages together: load, filter, rank,
// split, train, evaluate, predict. Data flows strictly forward; every stage
// produces a new table and nothing is mutated in place.
package pipeline

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/config"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/dataset"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/eval"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/features"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/forest"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/report"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/split"
)

// Run executes the full analysis and writes the rendered report to out.
// Re-running with the same configuration reproduces the same report.
func Run(cfg config.Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Load the labeled training table.
	log.Info().Str("source", cfg.TrainingSource).Msg("loading training data")
	raw, err := dataset.Load(cfg.TrainingSource)
	if err != nil {
		return err
	}

	// Reduce it to numeric columns without missing values.
	filtered, err := dataset.Filter(raw, cfg.LabelColumn)
	if err != nil {
		return err
	}
	numFeatures := filtered.Ncol() - 1
	log.Info().Int("features", numFeatures).Msg("filtered feature matrix")
	report.WriteDimensions(out, raw.Nrow(), raw.Ncol(), numFeatures)

	// Rank features on a stratified sample and keep the most important ones.
	ranking, err := features.Rank(filtered, cfg.LabelColumn, features.Config{
		PerClass: cfg.SamplePerClass,
		Repeats:  cfg.ImportanceRepeats,
		Seed:     cfg.SampleSeed,
		Forest:   forest.Config{Trees: cfg.Trees / 10, Seed: cfg.ForestSeed},
	})
	if err != nil {
		return err
	}
	selected := ranking.Top(cfg.TopFeatures)
	if len(selected) < cfg.TopFeatures {
		fmt.Fprintf(out, "Only %d features available; requested %d, using all of them.\n\n",
			len(selected), cfg.TopFeatures)
	}
	report.WriteRanking(out, ranking, cfg.TopFeatures)
	if cfg.ChartPath != "" {
		if err := report.SaveImportanceChart(cfg.ChartPath, ranking, cfg.TopFeatures); err != nil {
			return err
		}
		log.Info().Str("path", cfg.ChartPath).Msg("saved importance chart")
	}

	// Project onto the selected features and split 70/30.
	reduced := filtered.Select(append(append([]string(nil), selected...), cfg.LabelColumn))
	if reduced.Err != nil {
		return fmt.Errorf("%w: %v", dataset.ErrSchema, reduced.Err)
	}
	trainIdx, testIdx := split.Indices(reduced.Nrow(), cfg.TrainFraction, cfg.SplitSeed)
	training := reduced.Subset(trainIdx)
	testing := reduced.Subset(testIdx)
	log.Info().Int("train", training.Nrow()).Int("test", testing.Nrow()).Msg("partitioned rows")

	// Train the final forest and score it on both subsets.
	clf, trainCM, err := forest.Train(training, selected, cfg.LabelColumn, forest.Config{
		Trees: cfg.Trees,
		Mtry:  cfg.Mtry,
		Seed:  cfg.ForestSeed,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "In-sample accuracy: %.4f\n\n", trainCM.Accuracy())

	result, err := eval.Evaluate(clf, testing, cfg.LabelColumn)
	if err != nil {
		return err
	}
	report.WriteConfusionMatrix(out, "Confusion matrix, held-out test split:", result.Matrix)
	report.WriteMetrics(out, "Test split performance:", result)

	// Predict the external test file, if configured.
	if cfg.TestingSource == "" {
		return nil
	}
	log.Info().Str("source", cfg.TestingSource).Msg("loading external test data")
	external, err := dataset.Load(cfg.TestingSource)
	if err != nil {
		return err
	}
	predictions, err := eval.Predict(clf, external)
	if err != nil {
		return err
	}
	report.WritePredictions(out, predictions)
	return nil
}
