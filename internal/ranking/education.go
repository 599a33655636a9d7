package ranking

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// levelGapPenalty is deducted per ladder level the candidate falls short.
	levelGapPenalty = 40
	// fieldMismatchPenalty applies when both sides name a different field.
	fieldMismatchPenalty = 15
)

// RequiredEducation reads the vacancy's education requirement from its text,
// falling back to the structured education_required field.
func RequiredEducation(vacancy *types.VacancyRecord, vtext string) parsing.Education {
	req := parsing.ExtractEducation(vtext)
	if req.Level == 0 && vacancy.EducationRequired != nil {
		req = parsing.ExtractEducation(*vacancy.EducationRequired)
	}
	return req
}

func scoreEducation(resume *types.ResumeProfile, vacancy *types.VacancyRecord, vtext string) (types.EducationBreakdown, float64) {
	cand := parsing.ExtractResumeEducation(resume.EducationText())
	req := RequiredEducation(vacancy, vtext)

	score := float64(educationLevelScore(cand.Level, req.Level))
	if req.Field != "" && cand.Field != "" && req.Field != cand.Field {
		score = math.Max(0, score-fieldMismatchPenalty)
	}

	return types.EducationBreakdown{
		Required:       req.DisplayLabel(),
		Candidate:      cand.DisplayLabel(),
		RequiredLevel:  req.Level,
		CandidateLevel: cand.Level,
		RequiredField:  optional(req.Field),
		CandidateField: optional(cand.Field),
		ScorePct:       pct(score),
	}, score
}

// educationLevelScore compares ladder levels. Without a requirement the
// candidate's level alone is scored.
func educationLevelScore(candidate, required int) int {
	if required <= 0 {
		switch {
		case candidate >= 5:
			return 100
		case candidate >= 3:
			return 80
		case candidate == 2:
			return 60
		case candidate == 1:
			return 40
		default:
			return 0
		}
	}
	if candidate >= required {
		return 100
	}
	return max(0, 100-levelGapPenalty*(required-candidate))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
