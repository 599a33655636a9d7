package parsing

import (
	"regexp"

	"github.com/jonathan/resume-matcher/internal/family"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/textnorm"
)

// requiredWindow is how close (in bytes) a skill mention must be to a
// requirement marker to count as required.
const requiredWindow = 60

var requiredMarkers = []string{"must", "required", "mandatory"}

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// ExtractCertifications returns the canonical certifications from the
// family's lexicon that text mentions.
func ExtractCertifications(text string, f family.Family) []string {
	return lexiconHits(textnorm.Fold(text), f.CertificationLexicon())
}

// ExtractTools returns the canonical tools and systems from the family's
// lexicon that text mentions.
func ExtractTools(text string, f family.Family) []string {
	return lexiconHits(textnorm.Fold(text), f.ToolLexicon())
}

// ExtractSkills scans text with the family's skill lexicon and splits the
// hits into required and optional. A hit within requiredWindow of "must",
// "required" or "mandatory" is required; when nothing qualifies every hit is
// treated as required.
func ExtractSkills(text string, f family.Family) (required, optional []string) {
	folded := textnorm.Fold(text)
	var markers []int
	for _, m := range requiredMarkers {
		markers = append(markers, textnorm.TermIndexes(folded, m)...)
	}

	var reqRaw, optRaw []string
	for _, term := range f.SkillLexicon() {
		hits := termHits(folded, term)
		if len(hits) == 0 {
			continue
		}
		if nearAny(hits, markers, requiredWindow) {
			reqRaw = append(reqRaw, term)
		} else {
			optRaw = append(optRaw, term)
		}
	}

	required = skills.NormalizeStrings(reqRaw)
	optional = skills.NormalizeStrings(optRaw)
	if len(required) == 0 {
		return optional, []string{}
	}

	// A token reached through two aliases stays required only.
	seen := make(map[string]struct{}, len(required))
	for _, r := range required {
		seen[skills.Key(r)] = struct{}{}
	}
	filtered := optional[:0]
	for _, o := range optional {
		if _, ok := seen[skills.Key(o)]; !ok {
			filtered = append(filtered, o)
		}
	}
	return required, filtered
}

// ExtractEmail returns the first e-mail address in text, or "".
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// MatchLexicon returns the canonical lexicon entries mentioned in text.
func MatchLexicon(text string, lexicon []string) []string {
	return lexiconHits(textnorm.Fold(text), lexicon)
}

func lexiconHits(folded string, lexicon []string) []string {
	var found []string
	for _, term := range lexicon {
		if len(termHits(folded, term)) > 0 {
			found = append(found, term)
		}
	}
	return skills.NormalizeStrings(found)
}

// termHits returns the offsets of term, or of any alias spelling of it.
func termHits(folded, term string) []int {
	var hits []int
	for _, variant := range skills.Variants(term) {
		hits = append(hits, textnorm.StemIndexes(folded, variant)...)
	}
	return hits
}

func nearAny(hits, markers []int, window int) bool {
	for _, h := range hits {
		for _, m := range markers {
			d := h - m
			if d < 0 {
				d = -d
			}
			if d <= window {
				return true
			}
		}
	}
	return false
}
