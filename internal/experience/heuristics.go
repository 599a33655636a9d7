package experience

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// fallbackSkillLexicon is scanned in raw text when the document lists no skills.
var fallbackSkillLexicon = []string{
	"preventive maintenance",
	"corrective maintenance",
	"rotating equipment",
	"condition monitoring",
	"troubleshooting",
	"breakdown",
	"pumps",
	"motors",
	"valves",
	"pipelines",
	"piping",
	"gearboxes",
	"loto",
	"ptw",
	"p&id",
	"cmms",
	"sap pm",
	"rca",
	"calibration",
}

var fypMarkers = []string{"final year project", "capstone", "fyp"}

// timelineRe matches "Title — Company (2019–Present)" lines. Dashes are
// already folded to "-".
var timelineRe = regexp.MustCompile(`^(?:[-*•]\s*)?(.+?)\s+-\s+(.+?)\s*\(([^()]*\d{4}[^()]*)\)\s*$`)

// FallbackSkills scans raw résumé text for common technical skills.
func FallbackSkills(rawText string) []string {
	return parsing.MatchLexicon(rawText, fallbackSkillLexicon)
}

// HighestDegreeLine returns the raw-text line holding the highest
// qualification, or nil when no line mentions one.
func HighestDegreeLine(rawText string) *string {
	best, bestLevel := "", 0
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if e := parsing.ExtractEducation(line); e.Level > bestLevel {
			best, bestLevel = line, e.Level
		}
	}
	if bestLevel == 0 {
		return nil
	}
	return &best
}

// MentionsFinalYearProject reports whether text names a final year or
// capstone project.
func MentionsFinalYearProject(text string) bool {
	return textnorm.ContainsAny(textnorm.Fold(text), fypMarkers)
}

// TimelineEntries reads work history written as "Title — Company (dates)"
// lines. Lines whose dates cannot be read are kept without a duration.
func TimelineEntries(rawText string, now time.Time) []workItem {
	var items []workItem
	for _, line := range strings.Split(rawText, "\n") {
		folded := textnorm.Fold(line)
		m := timelineRe.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		original := strings.TrimSpace(line)
		item := workItem{entry: types.WorkEntry{
			Title:   recoverCase(original, m[1]),
			Company: recoverCase(original, m[2]),
		}}
		if start, end, ok := splitRange(m[3]); ok {
			item.entry.Start, item.entry.End = strings.TrimSpace(start), strings.TrimSpace(end)
			if months, ok := spanMonths(start, end, now); ok {
				y := float64(months) / 12
				item.entry.Years = &y
				item.months, item.ok = months, true
			}
		}
		items = append(items, item)
	}
	return items
}

// recoverCase returns the span of original matching the folded fragment,
// falling back to the fragment itself.
func recoverCase(original, fragment string) string {
	idx := strings.Index(strings.ToLower(original), fragment)
	if idx < 0 || idx+len(fragment) > len(original) {
		return fragment
	}
	return original[idx : idx+len(fragment)]
}
