package types

// ScoreResult is the scorer's output, persisted against an application.
type ScoreResult struct {
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown explains a score per dimension. Its JSON field names are read by
// the ranking UI and must stay stable.
type Breakdown struct {
	Skills         SkillsBreakdown     `json:"skills"`
	Experience     ExperienceBreakdown `json:"experience"`
	Education      EducationBreakdown  `json:"education"`
	Certifications ListBreakdown       `json:"certifications"`
	Tools          ListBreakdown       `json:"tools"`
	JobFamily      string              `json:"job_family"`
	WeightsUsed    Weights             `json:"weights_used"`
}

// SkillsBreakdown reports required/optional skill overlap.
type SkillsBreakdown struct {
	Required        []string `json:"required"`
	Optional        []string `json:"optional"`
	Matched         []string `json:"matched"`
	Missing         []string `json:"missing"`
	MatchedRequired []string `json:"matched_required"`
	MissingRequired []string `json:"missing_required"`
	MatchedOptional []string `json:"matched_optional"`
	MissingOptional []string `json:"missing_optional"`
	ScorePct        int      `json:"score_pct"`
}

// ExperienceBreakdown reports the years floor against the candidate's years.
type ExperienceBreakdown struct {
	Required  int     `json:"required"`
	Candidate float64 `json:"candidate"`
	ScorePct  int     `json:"score_pct"`
}

// EducationBreakdown reports the education ladder comparison.
type EducationBreakdown struct {
	Required       string  `json:"required"`
	Candidate      string  `json:"candidate"`
	RequiredLevel  int     `json:"required_level"`
	CandidateLevel int     `json:"candidate_level"`
	RequiredField  *string `json:"required_field"`
	CandidateField *string `json:"candidate_field"`
	ScorePct       int     `json:"score_pct"`
}

// ListBreakdown reports a plain requirement list overlap, used for
// certifications and tools.
type ListBreakdown struct {
	Required  []string `json:"required"`
	Candidate []string `json:"candidate"`
	Matched   []string `json:"matched"`
	Missing   []string `json:"missing"`
	ScorePct  int      `json:"score_pct"`
}
