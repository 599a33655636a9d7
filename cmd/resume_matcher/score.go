package main

import (
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé against a vacancy",
	Long:  "Score a résumé extraction document (and optionally its raw text) against a vacancy JSON file and emit a ScoreResult.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScore(cmd.OutOrStdout(), scoreOpts)
	},
}

type scoreOptions struct {
	resumeFile string
	resumeText string
	vacancy    string
	out        string
	verbose    bool
}

var scoreOpts scoreOptions

func init() {
	scoreCmd.Flags().StringVarP(&scoreOpts.resumeFile, "resume", "r", "", "Path to résumé extraction JSON")
	scoreCmd.Flags().StringVar(&scoreOpts.resumeText, "resume-text", "", "Path to raw résumé text")
	scoreCmd.Flags().StringVarP(&scoreOpts.vacancy, "vacancy", "v", "", "Path to vacancy JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreOpts.out, "out", "o", "", "Path to output JSON file (default stdout)")
	scoreCmd.Flags().BoolVar(&scoreOpts.verbose, "verbose", false, "Print a human-readable breakdown")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(out io.Writer, opts scoreOptions) error {
	vacancy, err := loadVacancy(opts.vacancy)
	if err != nil {
		return err
	}
	doc, rawText, err := loadResume(opts.resumeFile, opts.resumeText)
	if err != nil {
		return err
	}

	profile := experience.NormalizeProfile(doc, rawText)
	result := ranking.Score(profile, vacancy)
	if err := schemas.Validate(schemas.ScoreResultSchema, result); err != nil {
		return fmt.Errorf("score result does not validate against schema: %w", err)
	}

	if opts.verbose {
		printer := observability.NewPrinter(out)
		printer.PrintProfile(profile)
		printer.PrintScore(result)
	}
	if err := writeJSON(out, opts.out, result); err != nil {
		return err
	}
	if opts.out != "" {
		_, _ = fmt.Fprintf(out, "Score: %d\nOutput: %s\n", result.Score, opts.out)
	}
	return nil
}
