package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute the score of every application of a vacancy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRescore(cmd.Context(), cmd.OutOrStdout())
	},
}

var (
	rescoreVacancyID  int64
	rescoreFlushCache bool
	rescorePending    bool
)

func init() {
	rescoreCmd.Flags().Int64Var(&rescoreVacancyID, "vacancy-id", 0, "Vacancy ID (required)")
	rescoreCmd.Flags().BoolVar(&rescoreFlushCache, "flush-cache", false, "Drop every cached score before rescoring")
	rescoreCmd.Flags().BoolVar(&rescorePending, "pending", false, "Only score applications without a stored score")
	_ = rescoreCmd.MarkFlagRequired("vacancy-id")

	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(ctx context.Context, out io.Writer) error {
	if rescoreVacancyID <= 0 {
		return fmt.Errorf("--vacancy-id must be positive")
	}
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	scoreCache := openCache(ctx, cfg, log)
	if scoreCache != nil {
		defer func() { _ = scoreCache.Close() }()
	}

	if rescoreFlushCache && scoreCache != nil {
		n, err := scoreCache.DeleteByPattern(ctx, ranking.ScoreKeyPattern)
		if err != nil {
			return fmt.Errorf("failed to flush score cache: %w", err)
		}
		log.Info("flushed score cache", zap.Int("keys", n))
	}

	rescorer := ranking.NewRescorer(database, rescorerOptions(cfg, scoreCache, log))
	var report *ranking.RescoreReport
	if rescorePending {
		report, err = rescorer.ScorePending(ctx, rescoreVacancyID)
	} else {
		report, err = rescorer.RescoreVacancy(ctx, rescoreVacancyID)
	}
	if err != nil {
		return fmt.Errorf("failed to rescore vacancy %d: %w", rescoreVacancyID, err)
	}

	observability.NewPrinter(out).PrintRescoreReport(report)
	return nil
}
