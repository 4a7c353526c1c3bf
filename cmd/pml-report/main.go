// Command pml-report retrains the weight-lifting exercise classifier from
// the raw dataset and prints the full analysis report. There are no flags;
// parameters live in internal/config, optionally overridden by a
// pipeline.yaml file next to the binary.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/basbiezemans/Practical-Machine-Learning/internal/config"
	"github.com/basbiezemans/Practical-Machine-Learning/internal/pipeline"
)

const overrideFile = "pipeline.yaml"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if _, err := os.Stat(overrideFile); err == nil {
		cfg, err = config.Load(overrideFile)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}
		log.Info().Str("file", overrideFile).Msg("loaded configuration overrides")
	}

	if err := pipeline.Run(cfg, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}
}
