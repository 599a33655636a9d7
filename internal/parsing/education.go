package parsing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/textnorm"
)

// UnspecifiedEducation labels text with no recognizable qualification.
const UnspecifiedEducation = "unspecified"

// fieldWindow bounds how far from the qualification keyword a field of study
// is looked for.
const fieldWindow = 60

// Education is a position on the qualification ladder plus an optional field.
type Education struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	Field string `json:"field,omitempty"`
}

// DisplayLabel returns Label, or UnspecifiedEducation at level 0.
func (e Education) DisplayLabel() string {
	if e.Level == 0 || e.Label == "" {
		return UnspecifiedEducation
	}
	return e.Label
}

type ladderRung struct {
	level int
	term  string
	// notFollowedBy rejects a match immediately followed by this text.
	notFollowedBy string
}

// ladder is scanned from the highest level down; the first hit wins.
var ladder = []ladderRung{
	{level: 7, term: "phd"},
	{level: 7, term: "ph.d"},
	{level: 7, term: "doctor of philosophy"},
	{level: 7, term: "doktor falsafah"},
	{level: 7, term: "doctorate"},
	{level: 6, term: "master"},
	{level: 6, term: "sarjana", notFollowedBy: " muda"},
	{level: 5, term: "bachelor"},
	{level: 5, term: "degree"},
	{level: 5, term: "sarjana muda"},
	{level: 5, term: "b.sc"},
	{level: 5, term: "b eng"},
	{level: 5, term: "b.eng"},
	{level: 5, term: "bsc"},
	{level: 5, term: "beng"},
	{level: 5, term: "hons"},
	{level: 4, term: "advanced diploma"},
	{level: 4, term: "higher national diploma"},
	{level: 4, term: "hnd"},
	{level: 3, term: "diploma"},
	{level: 2, term: "stpm"},
	{level: 2, term: "matriculation"},
	{level: 2, term: "asasi"},
	{level: 2, term: "foundation"},
	{level: 2, term: "pre-university"},
	{level: 1, term: "spm"},
	{level: 1, term: "o-level"},
	{level: 1, term: "sijil pelajaran malaysia"},
}

type fieldTerm struct {
	term  string
	field string
}

// fields lists recognizable fields of study; longer phrases come first so
// they win ties at the same offset.
var fields = []fieldTerm{
	{"computer science", "it"},
	{"information technology", "it"},
	{"software engineering", "it"},
	{"computing", "it"},
	{"human resource", "hr"},
	{"supply chain", "supply chain"},
	{"instrumentation", "instrumentation"},
	{"mechatronic", "mechatronic"},
	{"mechanical", "mechanical"},
	{"chemical", "chemical"},
	{"electrical", "electrical"},
	{"accountancy", "accounting"},
	{"accounting", "accounting"},
	{"finance", "finance"},
	{"business", "business"},
	{"logistics", "logistics"},
	{"process", "process"},
	{"hr", "hr"},
}

// ExtractEducation places text on the qualification ladder. Text mentioning
// several qualifications gets the highest one.
func ExtractEducation(text string) Education {
	folded := textnorm.Fold(text)
	if folded == "" {
		return Education{Label: UnspecifiedEducation}
	}
	for _, rung := range ladder {
		for _, idx := range textnorm.StemIndexes(folded, rung.term) {
			if rung.notFollowedBy != "" && strings.HasPrefix(folded[idx+len(rung.term):], rung.notFollowedBy) {
				continue
			}
			return Education{
				Level: rung.level,
				Label: strings.ToUpper(rung.term),
				Field: fieldNear(folded, idx),
			}
		}
	}
	return Education{Label: UnspecifiedEducation}
}

// ExtractHighestEducation evaluates each entry and keeps the highest level.
func ExtractHighestEducation(entries []string) Education {
	best := Education{Label: UnspecifiedEducation}
	for _, entry := range entries {
		if e := ExtractEducation(entry); e.Level > best.Level {
			best = e
		}
	}
	return best
}

// ExtractResumeEducation reads a candidate's education value. Structured
// values arrive JSON-encoded; each row is evaluated and the highest wins.
func ExtractResumeEducation(value string) Education {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return ExtractHighestEducation(educationRows(decoded))
		}
	}
	return ExtractEducation(value)
}

func educationRows(v any) []string {
	switch val := v.(type) {
	case []any:
		var rows []string
		for _, item := range val {
			rows = append(rows, strings.Join(educationRows(item), " "))
		}
		return rows
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			parts = append(parts, educationRows(val[k])...)
		}
		return []string{strings.Join(parts, " ")}
	case string:
		return []string{val}
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(val)}
	}
}

// fieldNear returns the earliest field of study mentioned within fieldWindow
// bytes of the qualification at offset.
func fieldNear(folded string, offset int) string {
	lo := max(0, offset-fieldWindow)
	hi := min(len(folded), offset+fieldWindow)
	best, bestPos := "", -1
	for _, f := range fields {
		for _, idx := range textnorm.StemIndexes(folded, f.term) {
			if idx < lo || idx > hi {
				continue
			}
			if bestPos == -1 || idx < bestPos {
				best, bestPos = f.field, idx
			}
			break
		}
	}
	return best
}
