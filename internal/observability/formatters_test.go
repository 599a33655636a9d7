package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resume := types.NewResumeProfile()
	resume.Skills = []string{"Pumps"}
	resume.ExperienceYears = 3
	vacancy := &types.VacancyRecord{
		Title:          "Maintenance Technician",
		SkillsRequired: []string{"Pumps", "Valves"},
	}

	p.PrintScore(ranking.Score(resume, vacancy))
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORE")
	assert.Contains(t, output, "Job family:  maintenance")
	assert.Contains(t, output, "Matched skills: Pumps")
	assert.Contains(t, output, "Missing skills: Valves")
	assert.Contains(t, output, "Experience:  3.0 years (needs 2)")
	assert.Contains(t, output, "Education:   unspecified (needs unspecified)")
}

func TestPrintScore_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScore(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := types.NewResumeProfile()
	profile.Skills = []string{"A", "B", "C", "D", "E", "F", "G"}
	profile.ExperienceYears = 6
	profile.Email = "ali@example.com"
	profile.Experiences = []types.WorkEntry{{Title: "Technician", Company: "Petronas"}}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "RESUME PROFILE")
	assert.Contains(t, output, "Skills: A, B, C, D, E (+2 more)")
	assert.Contains(t, output, "ali@example.com")
	assert.Contains(t, output, "Technician @ Petronas")
	assert.NotContains(t, output, "Certifications:")
}

func TestPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := 72
	apps := []types.Application{
		{ID: 1, ApplicantID: 10, Status: types.StatusSubmitted},
		{ID: 2, ApplicantID: 11, Status: types.StatusShortlisted, MatchScore: &score},
	}

	p.PrintBoard(5, ranking.Board(apps))
	output := buf.String()

	assert.Contains(t, output, "Vacancy 5: 2 applications")
	assert.Contains(t, output, types.AnonymousLabel(11))
	assert.Contains(t, output, "unscored")

	lines := strings.Split(output, "\n")
	var first string
	for _, l := range lines {
		if strings.Contains(l, "Candidate #") {
			first = l
			break
		}
	}
	assert.Contains(t, first, " 72")
	assert.Contains(t, first, "shortlisted")
}

func TestPrintRescoreReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRescoreReport(&ranking.RescoreReport{RunID: uuid.New(), VacancyID: 3, Total: 4, Scored: 2, Skipped: 1, Failed: 1})
	output := buf.String()

	assert.Contains(t, output, "RESCORE")
	assert.Contains(t, output, "Scored:   2")
	assert.Contains(t, output, "Failed:   1")

	buf.Reset()
	p.PrintRescoreReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
