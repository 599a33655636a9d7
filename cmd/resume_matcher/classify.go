package main

import (
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/family"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a vacancy into a job family",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runClassify(cmd.OutOrStdout(), classifyVacancy, classifyText)
	},
}

var (
	classifyVacancy string
	classifyText    string
)

type classifyResult struct {
	Family          family.Family `json:"family"`
	Weights         types.Weights `json:"weights"`
	DefaultMinYears int           `json:"default_min_years"`
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyVacancy, "vacancy", "v", "", "Path to vacancy JSON")
	classifyCmd.Flags().StringVarP(&classifyText, "text", "t", "", "Vacancy text to classify")
	classifyCmd.MarkFlagsMutuallyExclusive("vacancy", "text")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(out io.Writer, vacancyPath, text string) error {
	if vacancyPath == "" && text == "" {
		return fmt.Errorf("--vacancy or --text is required")
	}
	if vacancyPath != "" {
		vacancy, err := loadVacancy(vacancyPath)
		if err != nil {
			return err
		}
		text = ranking.VacancyText(vacancy)
	}

	fam := family.Classify(text)
	return writeJSON(out, "", classifyResult{
		Family:          fam,
		Weights:         fam.DefaultWeights(),
		DefaultMinYears: fam.DefaultMinYears(),
	})
}
