package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/spf13/cobra"
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Print the ranking board of a vacancy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRanking(cmd.Context(), cmd.OutOrStdout())
	},
}

var (
	rankingVacancyID int64
	rankingJSON      bool
)

func init() {
	rankingCmd.Flags().Int64Var(&rankingVacancyID, "vacancy-id", 0, "Vacancy ID (required)")
	rankingCmd.Flags().BoolVar(&rankingJSON, "output-json", false, "Emit the board as JSON")
	_ = rankingCmd.MarkFlagRequired("vacancy-id")

	rootCmd.AddCommand(rankingCmd)
}

func runRanking(ctx context.Context, out io.Writer) error {
	if rankingVacancyID <= 0 {
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

	if _, err := database.GetVacancy(ctx, rankingVacancyID); err != nil {
		return fmt.Errorf("failed to get vacancy: %w", err)
	}
	apps, err := database.ListApplications(ctx, rankingVacancyID)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	board := ranking.Board(apps)
	if rankingJSON {
		if board == nil {
			board = []ranking.BoardEntry{}
		}
		return writeJSON(out, "", board)
	}
	observability.NewPrinter(out).PrintBoard(rankingVacancyID, board)
	return nil
}
