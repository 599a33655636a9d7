// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxBoardRows caps the rows printed for a ranking board
	maxBoardRows = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = logger.Truncate(line, boxWidth-7)
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScore outputs a human-readable summary of a score and its breakdown.
func (p *Printer) PrintScore(result *types.ScoreResult) {
	if result == nil {
		return
	}
	bd := result.Breakdown

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:       %d / 100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Job family:  %s\n", bd.JobFamily))
	sb.WriteString("\n")

	w := bd.WeightsUsed
	sb.WriteString(fmt.Sprintf("Skills       %3d%%  (weight %.2f)\n", bd.Skills.ScorePct, w.Skills))
	sb.WriteString(fmt.Sprintf("Experience   %3d%%  (weight %.2f)\n", bd.Experience.ScorePct, w.Experience))
	sb.WriteString(fmt.Sprintf("Education    %3d%%  (weight %.2f)\n", bd.Education.ScorePct, w.Education))
	sb.WriteString(fmt.Sprintf("Certs        %3d%%  (weight %.2f)\n", bd.Certifications.ScorePct, w.Certifications))
	sb.WriteString(fmt.Sprintf("Tools        %3d%%  (weight %.2f)\n", bd.Tools.ScorePct, w.Tools))
	sb.WriteString("\n")

	writeList(&sb, "Matched skills", bd.Skills.Matched)
	writeList(&sb, "Missing skills", bd.Skills.Missing)
	sb.WriteString(fmt.Sprintf("Experience:  %.1f years (needs %d)\n", bd.Experience.Candidate, bd.Experience.Required))
	sb.WriteString(fmt.Sprintf("Education:   %s (needs %s)\n", orNone(bd.Education.Candidate), orNone(bd.Education.Required)))
	writeList(&sb, "Missing certifications", bd.Certifications.Missing)
	writeList(&sb, "Missing tools", bd.Tools.Missing)

	p.printBox("MATCH SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the normalized résumé profile.
func (p *Printer) PrintProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience:  %.1f years\n", profile.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Education:   %s\n", orNone(profile.EducationText())))
	if profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:       %s\n", profile.Email))
	}
	sb.WriteString("\n")
	writeList(&sb, "Skills", profile.Skills)
	writeList(&sb, "Certifications", profile.Certifications)
	writeList(&sb, "Tools", profile.Tools)

	if len(profile.Experiences) > 0 {
		sb.WriteString(fmt.Sprintf("Work history (%d):\n", len(profile.Experiences)))
		count := min(len(profile.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := profile.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s", orNone(e.Title)))
			if e.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", e.Company))
			}
			sb.WriteString("\n")
		}
		if len(profile.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experiences)-maxItemsToShow))
		}
	}

	p.printBox("RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBoard outputs a vacancy's ranking board.
func (p *Printer) PrintBoard(vacancyID int64, board []ranking.BoardEntry) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Vacancy %d: %d applications\n\n", vacancyID, len(board)))

	count := min(len(board), maxBoardRows)
	for i := 0; i < count; i++ {
		entry := board[i]
		rank, score := "-", "unscored"
		if entry.Rank > 0 {
			rank = fmt.Sprintf("%d", entry.Rank)
		}
		if entry.Application != nil && entry.Application.MatchScore != nil {
			score = fmt.Sprintf("%3d", *entry.Application.MatchScore)
		}
		status := ""
		if entry.Application != nil {
			status = entry.Application.Status
		}
		sb.WriteString(fmt.Sprintf("%3s  %-18s %-8s %s\n", rank, entry.Label, score, status))
	}
	if len(board) > maxBoardRows {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(board)-maxBoardRows))
	}

	p.printBox("RANKING BOARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRescoreReport outputs the counters of a rescoring run.
func (p *Printer) PrintRescoreReport(report *ranking.RescoreReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Vacancy:  %d\n", report.VacancyID))
	sb.WriteString(fmt.Sprintf("Total:    %d\n", report.Total))
	sb.WriteString(fmt.Sprintf("Scored:   %d\n", report.Scored))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", report.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:   %d", report.Failed))

	p.printBox("RESCORE", sb.String())
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	count := min(len(items), maxItemsToShow)
	sb.WriteString(fmt.Sprintf("%s: %s", label, strings.Join(items[:count], ", ")))
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf(" (+%d more)", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
