package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jsphweid/pianobench/assets"
	"github.com/jsphweid/pianobench/catalog"
	"github.com/jsphweid/pianobench/config"
	"github.com/jsphweid/pianobench/metrics"
	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/runner"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var cfg *config.Config
var sentryEnabled bool

var rootCmd = &cobra.Command{
	Use:     "pianobench",
	Short:   "Evaluation harness for piano transcription algorithms",
	Long:    `Runs scoring and note segmentation algorithms over the synthesized piano catalog and reports how they do.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		sentryEnabled = metrics.Init(cfg.SentryDSN, "pianobench@"+version)
	},
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if sentryEnabled {
		metrics.Flush()
	}
	cobra.CheckErr(err)
}

func loadCases() ([]model.TestCase, error) {
	return catalog.Load(cfg.CatalogPath)
}

func newResolver() *assets.Resolver {
	return &assets.Resolver{
		AudioDir:      cfg.AudioDir,
		ConvertScript: cfg.ConvertScript,
		SourceExt:     cfg.SourceExt,
		TargetExt:     cfg.TargetExt,
	}
}

func newRunner(cases []model.TestCase) *runner.Runner {
	r := runner.New(cases, newResolver())
	r.Metrics = metrics.NewSentryMetrics(sentryEnabled)
	return r
}

func findCase(name string) (model.TestCase, error) {
	cases, err := loadCases()
	if err != nil {
		return model.TestCase{}, err
	}
	tc, ok := catalog.Find(cases, name)
	if !ok {
		return model.TestCase{}, fmt.Errorf("no test case named %s in %s", name, cfg.CatalogPath)
	}
	return tc, nil
}
