package types

// ResumeProfile is the canonical extraction of a candidate's résumé consumed
// by the scorer. Skills, Certifications, Tools and Keywords are never nil.
type ResumeProfile struct {
	Skills          []string    `json:"skills"`
	ExperienceYears float64     `json:"experience_years"`
	Education       *string     `json:"education"`
	Certifications  []string    `json:"certifications"`
	Tools           []string    `json:"tools"`
	Keywords        []string    `json:"keywords"`
	Experiences     []WorkEntry `json:"experiences"`
	Projects        []Project   `json:"projects"`
	Email           string      `json:"email,omitempty"`
}

// WorkEntry is a single row of work history.
type WorkEntry struct {
	Title   string   `json:"title,omitempty"`
	Company string   `json:"company,omitempty"`
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`
	Years   *float64 `json:"years,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Project is a candidate project, used as a weak signal for graduates.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// NewResumeProfile returns a profile with every collection initialised.
func NewResumeProfile() *ResumeProfile {
	return &ResumeProfile{
		Skills:         []string{},
		Certifications: []string{},
		Tools:          []string{},
		Keywords:       []string{},
		Experiences:    []WorkEntry{},
		Projects:       []Project{},
	}
}

// EducationText returns the education string or "" when absent.
func (p *ResumeProfile) EducationText() string {
	if p == nil || p.Education == nil {
		return ""
	}
	return *p.Education
}

// ParsedResume is the stored output of upstream résumé extraction: the
// loosely structured entity document and the raw text it came from.
type ParsedResume struct {
	ResumeID int64          `json:"resume_id"`
	Document map[string]any `json:"document"`
	RawText  string         `json:"raw_text,omitempty"`
}
