// Package ranking scores résumé profiles against vacancies and orders the
// applications of a vacancy by that score.
package ranking

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/family"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Blend of required and optional skill coverage when a vacancy lists both.
const (
	requiredSkillsShare = 0.80
	optionalSkillsShare = 0.20
)

// yearsToFull is the experience at which a vacancy without a years floor
// awards full marks.
const yearsToFull = 5

// Score computes the compatibility of resume with vacancy. It is pure and
// deterministic: the same inputs always yield the same result, and it never
// fails on missing or malformed data.
func Score(resume *types.ResumeProfile, vacancy *types.VacancyRecord) *types.ScoreResult {
	if resume == nil {
		resume = types.NewResumeProfile()
	}
	if vacancy == nil {
		vacancy = &types.VacancyRecord{}
	}

	vtext := VacancyText(vacancy)
	fam := family.Classify(vtext)

	skillsBD, skillsPct := scoreSkills(resume, vacancy, vtext, fam)
	expBD, expPct := scoreExperience(resume, vacancy, vtext, fam)
	eduBD, eduPct := scoreEducation(resume, vacancy, vtext)
	certBD, certPct := scoreList(resume.Certifications, parsing.ExtractCertifications(vtext, fam), 100)
	toolBD, toolPct := scoreList(resume.Tools, parsing.ExtractTools(vtext, fam), 0)

	weights := resolveWeights(vacancy, fam, len(toolBD.Required) > 0)

	total := weights.Skills*skillsPct +
		weights.Experience*expPct +
		weights.Education*eduPct +
		weights.Certifications*certPct +
		weights.Tools*toolPct

	return &types.ScoreResult{
		Score: pct(total),
		Breakdown: types.Breakdown{
			Skills:         skillsBD,
			Experience:     expBD,
			Education:      eduBD,
			Certifications: certBD,
			Tools:          toolBD,
			JobFamily:      fam.String(),
			WeightsUsed:    weights,
		},
	}
}

// VacancyText joins the vacancy's free-text fields into the folded text the
// extractors and classifier read.
func VacancyText(v *types.VacancyRecord) string {
	return textnorm.Fold(textnorm.Join(v.Title, v.Description, v.Requirements, v.Responsibilities))
}

// resolveWeights overlays the vacancy override on the family defaults and
// renormalizes. A vacancy override is used exactly as given. Family defaults
// hand the tools weight to the other dimensions when no tools are required.
func resolveWeights(vacancy *types.VacancyRecord, fam family.Family, toolsRequired bool) types.Weights {
	if vacancy.Weights != nil {
		return vacancy.Weights.Apply(fam.DefaultWeights()).Normalized()
	}
	w := fam.DefaultWeights()
	if !toolsRequired && w.Sum()-w.Tools > 0 {
		w.Tools = 0
	}
	return w.Normalized()
}

func scoreSkills(resume *types.ResumeProfile, vacancy *types.VacancyRecord, vtext string, fam family.Family) (types.SkillsBreakdown, float64) {
	required := skills.Tokens(vacancy.SkillsRequired)
	optional := skills.Tokens(vacancy.SkillsOptional)
	if len(required) == 0 && len(optional) == 0 {
		req, opt := parsing.ExtractSkills(vtext, fam)
		required, optional = skills.Tokens(req), skills.Tokens(opt)
	}
	optional = withoutKeys(optional, keySet(required))

	candidateRaw := resume.Skills
	if len(candidateRaw) == 0 {
		candidateRaw = resume.Keywords
	}
	candidate := keySet(skills.Tokens(candidateRaw))

	matchedReq, missingReq := overlap(required, candidate)
	matchedOpt, missingOpt := overlap(optional, candidate)
	reqPct := coverage(len(matchedReq), len(required))
	optPct := coverage(len(matchedOpt), len(optional))

	var score float64
	switch {
	case len(required) > 0 && len(optional) > 0:
		score = requiredSkillsShare*reqPct + optionalSkillsShare*optPct
	case len(required) > 0:
		score = reqPct
	case len(optional) > 0:
		score = optPct
	}
	score = clamp(score)

	return types.SkillsBreakdown{
		Required:        displays(required),
		Optional:        displays(optional),
		Matched:         concat(matchedReq, matchedOpt),
		Missing:         concat(missingReq, missingOpt),
		MatchedRequired: matchedReq,
		MissingRequired: missingReq,
		MatchedOptional: matchedOpt,
		MissingOptional: missingOpt,
		ScorePct:        pct(score),
	}, score
}

// RequiredYears resolves the vacancy's years floor: a figure stated in the
// text first, then the structured minimum, then the family default.
func RequiredYears(vacancy *types.VacancyRecord, vtext string, fam family.Family) int {
	if years := parsing.ExtractMinYears(vtext); years > 0 {
		return years
	}
	if vacancy.ExperienceMinYears != nil && *vacancy.ExperienceMinYears >= 0 {
		return *vacancy.ExperienceMinYears
	}
	return fam.DefaultMinYears()
}

func scoreExperience(resume *types.ResumeProfile, vacancy *types.VacancyRecord, vtext string, fam family.Family) (types.ExperienceBreakdown, float64) {
	required := RequiredYears(vacancy, vtext, fam)
	years := math.Max(0, resume.ExperienceYears)

	var score float64
	if required <= 0 {
		score = years * 100 / yearsToFull
	} else {
		score = years / float64(required) * 100
	}
	score = clamp(score)

	return types.ExperienceBreakdown{
		Required:  required,
		Candidate: years,
		ScorePct:  pct(score),
	}, score
}

// scoreList compares a candidate list with a vacancy requirement list. An
// empty requirement scores whenEmpty.
func scoreList(candidateRaw, requiredRaw []string, whenEmpty float64) (types.ListBreakdown, float64) {
	required := skills.Tokens(requiredRaw)
	candidateTokens := skills.Tokens(candidateRaw)
	matched, missing := overlap(required, keySet(candidateTokens))

	score := whenEmpty
	if len(required) > 0 {
		score = coverage(len(matched), len(required))
	}
	score = clamp(score)

	return types.ListBreakdown{
		Required:  displays(required),
		Candidate: displays(candidateTokens),
		Matched:   matched,
		Missing:   missing,
		ScorePct:  pct(score),
	}, score
}

func coverage(matched, total int) float64 {
	return float64(matched) / float64(max(1, total)) * 100
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// pct clamps v to [0,100] and rounds half away from zero.
func pct(v float64) int {
	return int(math.Round(clamp(v)))
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
