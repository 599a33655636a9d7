package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/spf13/cobra"
)

var normalizeSkillsCmd = &cobra.Command{
	Use:   "normalize-skills [skill...]",
	Short: "Normalize a skill list into canonical, de-duplicated names",
	Long: "Normalize skills given as arguments or read from a file. The file may hold a JSON list " +
		"or a comma, semicolon or newline separated string.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNormalizeSkills(cmd.OutOrStdout(), args, normalizeSkillsFile)
	},
}

var normalizeResumeCmd = &cobra.Command{
	Use:   "normalize-resume",
	Short: "Normalize a résumé extraction document into a ResumeProfile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runNormalizeResume(cmd.OutOrStdout(), normalizeResumeFile, normalizeResumeText, normalizeOut)
	},
}

var (
	normalizeSkillsFile string
	normalizeResumeFile string
	normalizeResumeText string
	normalizeOut        string
)

func init() {
	normalizeSkillsCmd.Flags().StringVarP(&normalizeSkillsFile, "file", "f", "", "Path to a file holding the skill list")

	normalizeResumeCmd.Flags().StringVarP(&normalizeResumeFile, "resume", "r", "", "Path to résumé extraction JSON")
	normalizeResumeCmd.Flags().StringVar(&normalizeResumeText, "resume-text", "", "Path to raw résumé text")
	normalizeResumeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(normalizeSkillsCmd, normalizeResumeCmd)
}

func runNormalizeSkills(out io.Writer, args []string, path string) error {
	var raw any
	switch {
	case path != "" && len(args) > 0:
		return fmt.Errorf("cannot use --file with skill arguments")
	case path != "":
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		raw = string(content)
	case len(args) > 0:
		raw = args
	default:
		return fmt.Errorf("must provide skills as arguments or --file")
	}

	return writeJSON(out, "", skills.Normalize(raw))
}

func runNormalizeResume(out io.Writer, docPath, textPath, outPath string) error {
	doc, rawText, err := loadResume(docPath, textPath)
	if err != nil {
		return err
	}
	return writeJSON(out, outPath, experience.NormalizeProfile(doc, rawText))
}
