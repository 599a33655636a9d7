// Package parsing extracts structured signals (experience floors, education,
// skills, certifications, tools) from unstructured vacancy and résumé text.
package parsing

import (
	"regexp"
	"strconv"
)

var (
	// yearsRe matches "3+ years", "minimum 5 years of experience", "min 2 yrs"
	// and ranges such as "2-5 years", capturing the lower bound.
	yearsRe = regexp.MustCompile(`(?i)(?:min(?:imum)?\s*)?\b(\d{1,2})(?:\s*(?:-|–|to)\s*\d{1,2})?\s*\+?\s*(?:years?|yrs?)(?:\s+of\s+experience)?`)
	// experienceYearsRe matches résumé claims such as "8 years of experience".
	experienceYearsRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:working\s+|work\s+|industry\s+|relevant\s+)?(?:experience|exp)\b`)
)

// ExtractMinYears returns the smallest non-zero year count mentioned in text,
// or 0 when none is found. Vacancies stating several floors ("3+ years of
// Java, 5 years overall") get the most permissive one.
func ExtractMinYears(text string) int {
	minYears := 0
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if minYears == 0 || n < minYears {
			minYears = n
		}
	}
	return minYears
}

// ExtractClaimedYears returns the largest "N years of experience" claim in
// résumé text, or 0.
func ExtractClaimedYears(text string) int {
	maxYears := 0
	for _, m := range experienceYearsRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxYears {
			maxYears = n
		}
	}
	return maxYears
}
