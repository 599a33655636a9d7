package experience

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/mitchellh/mapstructure"
)

// Alternate document keys, checked in order; the first present one wins.
var (
	skillKeys         = []string{"skills", "skills_list", "skills_extracted", "keywords", "skill"}
	explicitYearsKeys = []string{"experience_years", "years_experience", "total_experience_years", "total_years_experience", "years_of_experience", "experience"}
	workKeys          = []string{"work", "experiences", "work_experience", "work_history", "employment", "experience"}
	educationKeys     = []string{"education", "education_level", "highest_education", "qualification", "qualifications", "edu"}
	certificationKeys = []string{"certifications", "licenses", "certs", "certificates"}
	toolKeys          = []string{"tools", "systems", "tools_systems", "software"}
	keywordKeys       = []string{"keywords"}
	projectKeys       = []string{"projects", "project"}
	emailKeys         = []string{"email", "email_address"}
)

var leadingNumberRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// workRow accepts the key spellings seen in extraction output for one job.
type workRow struct {
	Title            string `mapstructure:"title"`
	Role             string `mapstructure:"role"`
	Position         string `mapstructure:"position"`
	JobTitle         string `mapstructure:"job_title"`
	Designation      string `mapstructure:"designation"`
	Company          string `mapstructure:"company"`
	Employer         string `mapstructure:"employer"`
	Organization     string `mapstructure:"organization"`
	Start            string `mapstructure:"start"`
	From             string `mapstructure:"from"`
	StartDate        string `mapstructure:"start_date"`
	End              string `mapstructure:"end"`
	To               string `mapstructure:"to"`
	EndDate          string `mapstructure:"end_date"`
	Period           string `mapstructure:"period"`
	Dates            string `mapstructure:"dates"`
	Duration         string `mapstructure:"duration"`
	Years            any    `mapstructure:"years"`
	Current          any    `mapstructure:"current"`
	IsCurrent        any    `mapstructure:"is_current"`
	Bullets          any    `mapstructure:"bullets"`
	Responsibilities any    `mapstructure:"responsibilities"`
	Achievements     any    `mapstructure:"achievements"`
	Highlights       any    `mapstructure:"highlights"`
}

type projectRow struct {
	Title       string `mapstructure:"title"`
	Name        string `mapstructure:"name"`
	Project     string `mapstructure:"project"`
	Description string `mapstructure:"description"`
	Summary     string `mapstructure:"summary"`
	Details     string `mapstructure:"details"`
}

// workItem is a normalized work entry with its contribution in months.
type workItem struct {
	entry  types.WorkEntry
	months int
	ok     bool
}

// Normalizer builds ResumeProfiles from extraction output. The zero value
// resolves "present" against the wall clock.
type Normalizer struct {
	Now func() time.Time
}

// NormalizeProfile is Normalizer{}.Normalize.
func NormalizeProfile(doc map[string]any, rawText string) *types.ResumeProfile {
	return Normalizer{}.Normalize(doc, rawText)
}

// Normalize coerces doc into a ResumeProfile, falling back to rawText where
// the document is silent. It never fails; malformed fields are ignored.
func (n Normalizer) Normalize(doc map[string]any, rawText string) *types.ResumeProfile {
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	doc = lowerKeys(doc)
	p := types.NewResumeProfile()

	p.Skills = skills.Normalize(firstPresent(doc, skillKeys))
	if len(p.Skills) == 0 && rawText != "" {
		p.Skills = FallbackSkills(rawText)
	}
	p.Certifications = skills.Normalize(firstPresent(doc, certificationKeys))
	p.Tools = skills.Normalize(firstPresent(doc, toolKeys))
	p.Keywords = skills.Normalize(firstPresent(doc, keywordKeys))

	p.Education = educationFrom(doc)
	if p.Education == nil && rawText != "" {
		p.Education = HighestDegreeLine(rawText)
	}

	p.Email = stringFrom(firstPresent(doc, emailKeys))
	if p.Email == "" {
		p.Email = parsing.ExtractEmail(rawText)
	}

	p.Projects = projectsFrom(firstPresent(doc, projectKeys))
	if !hasFinalYearProject(p.Projects) && MentionsFinalYearProject(rawText) {
		p.Projects = append(p.Projects, types.Project{Title: "Final Year Project"})
	}

	items := workFrom(doc, now)
	if len(items) == 0 && rawText != "" {
		items = TimelineEntries(rawText, now)
	}
	for _, item := range items {
		p.Experiences = append(p.Experiences, item.entry)
	}

	p.ExperienceYears = candidateYears(doc, items, p.Projects, rawText)
	return p
}

// candidateYears picks the first available source: an explicit number, the
// summed work history, a "N years of experience" claim in the raw text, and
// finally a nominal year for a final year or capstone project.
func candidateYears(doc map[string]any, items []workItem, projects []types.Project, rawText string) float64 {
	if y, ok := explicitYears(doc); ok {
		return floorYears(y)
	}

	total, found := 0, false
	for _, item := range items {
		if item.ok {
			total += item.months
			found = true
		}
	}
	if found && total > 0 {
		return floorYears(float64(total) / 12)
	}

	if claimed := parsing.ExtractClaimedYears(rawText); claimed > 0 {
		return float64(claimed)
	}
	if hasFinalYearProject(projects) {
		return 1
	}
	return 0
}

func explicitYears(doc map[string]any) (float64, bool) {
	for _, key := range explicitYearsKeys {
		v, ok := doc[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case []any:
			continue
		case map[string]any:
			for _, inner := range []string{"years", "total_years", "total"} {
				if y, ok := toFloat(val[inner]); ok && y > 0 {
					return y, true
				}
			}
		default:
			if y, ok := toFloat(val); ok && y > 0 {
				return y, true
			}
		}
	}
	return 0, false
}

func workFrom(doc map[string]any, now time.Time) []workItem {
	for _, key := range workKeys {
		rows, ok := doc[key].([]any)
		if !ok || len(rows) == 0 {
			continue
		}
		items := make([]workItem, 0, len(rows))
		for _, row := range rows {
			switch r := row.(type) {
			case map[string]any:
				if item, ok := decodeWork(r, now); ok {
					items = append(items, item)
				}
			case string:
				items = append(items, TimelineEntries(r, now)...)
			}
		}
		return items
	}
	return nil
}

func decodeWork(raw map[string]any, now time.Time) (workItem, bool) {
	var row workRow
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       lenientStringHook,
		Result:           &row,
	})
	if err != nil {
		return workItem{}, false
	}
	// Fields that still fail to decode stay empty; the rest of the row is kept.
	_ = decoder.Decode(raw)

	start := firstString(row.Start, row.From, row.StartDate)
	end := firstString(row.End, row.To, row.EndDate)
	if end == "" && (truthy(row.Current) || truthy(row.IsCurrent)) {
		end = "present"
	}
	if start == "" {
		if a, b, ok := splitRange(firstString(row.Period, row.Dates, row.Duration)); ok {
			start, end = a, b
		}
	}

	item := workItem{entry: types.WorkEntry{
		Title:   firstString(row.Title, row.Role, row.Position, row.JobTitle, row.Designation),
		Company: firstString(row.Company, row.Employer, row.Organization),
		Start:   start,
		End:     end,
		Bullets: textList(row.Bullets, row.Responsibilities, row.Achievements, row.Highlights),
	}}

	if y, ok := toFloat(row.Years); ok && y > 0 {
		item.entry.Years = &y
		item.months, item.ok = min(int(math.Round(y*12)), maxSpanMonths), true
		return item, true
	}
	if end == "" {
		if m, ok := durationMonths(row.Duration); ok {
			item.months, item.ok = m, true
			return item, true
		}
	}
	if m, ok := spanMonths(start, end, now); ok {
		item.months, item.ok = m, true
	} else if m, ok := durationMonths(row.Duration); ok {
		item.months, item.ok = m, true
	}
	if item.ok {
		y := float64(item.months) / 12
		item.entry.Years = &y
	}
	return item, true
}

// lenientStringHook lets a list or object land in a string field: a list
// yields its first non-empty string, anything else an empty string.
func lenientStringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch val := data.(type) {
	case []any:
		for _, item := range val {
			if s := stringFrom(item); s != "" {
				return s, nil
			}
		}
		return "", nil
	case map[string]any:
		return "", nil
	}
	return data, nil
}

func projectsFrom(v any) []types.Project {
	out := []types.Project{}
	var rows []any
	switch val := v.(type) {
	case []any:
		rows = val
	case map[string]any, string:
		rows = []any{val}
	}
	for _, row := range rows {
		switch r := row.(type) {
		case string:
			if t := strings.TrimSpace(r); t != "" {
				out = append(out, types.Project{Title: t})
			}
		case map[string]any:
			var pr projectRow
			if err := mapstructure.WeakDecode(r, &pr); err != nil {
				continue
			}
			title := firstString(pr.Title, pr.Name, pr.Project)
			desc := firstString(pr.Description, pr.Summary, pr.Details)
			if title == "" && desc == "" {
				continue
			}
			out = append(out, types.Project{Title: title, Description: desc})
		}
	}
	return out
}

func educationFrom(doc map[string]any) *string {
	v := firstPresent(doc, educationKeys)
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(val)
		return &s
	case []any, map[string]any:
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		s := string(encoded)
		return &s
	default:
		s := fmt.Sprint(val)
		return &s
	}
}

func hasFinalYearProject(projects []types.Project) bool {
	for _, p := range projects {
		if textnorm.ContainsAny(textnorm.Fold(p.Title), fypMarkers) {
			return true
		}
	}
	return false
}

func lowerKeys(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, exists := out[key]; !exists || k == key {
			out[key] = v
		}
	}
	return out
}

func firstPresent(doc map[string]any, keys []string) any {
	for _, key := range keys {
		v, ok := doc[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(val) == "" {
				continue
			}
		case []any:
			if len(val) == 0 {
				continue
			}
		case map[string]any:
			if len(val) == 0 {
				continue
			}
		}
		return v
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return val, !math.IsNaN(val) && !math.IsInf(val, 0)
	case string:
		if m := leadingNumberRe.FindStringSubmatch(val); m != nil {
			f, err := strconv.ParseFloat(m[1], 64)
			return f, err == nil
		}
		return 0, false
	}
	var f float64
	if err := mapstructure.WeakDecode(v, &f); err != nil {
		return 0, false
	}
	return f, true
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		return s == "true" || s == "yes" || s == "1"
	case float64:
		return val != 0
	}
	return false
}

func stringFrom(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func firstString(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// textList collects free-text lines; strings are split on newlines only so
// sentences with commas survive.
func textList(values ...any) []string {
	var out []string
	for _, v := range values {
		switch val := v.(type) {
		case string:
			for _, line := range strings.Split(val, "\n") {
				if l := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*")); l != "" {
					out = append(out, l)
				}
			}
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok {
					out = append(out, textList(s)...)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return out
}

func floorYears(y float64) float64 {
	if math.IsNaN(y) || y <= 0 {
		return 0
	}
	return math.Floor(y)
}
