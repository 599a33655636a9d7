package experience

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/textnorm"
)

// maxSpanMonths caps a single work-history span at 50 years.
const maxSpanMonths = 50 * 12

// defaultMonth is assumed when a date carries only a year.
const defaultMonth = 6

var monthNames = map[string]int{
	"jan": 1, "january": 1, "januari": 1,
	"feb": 2, "february": 2, "februari": 2,
	"mar": 3, "march": 3, "mac": 3,
	"apr": 4, "april": 4,
	"may": 5, "mei": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7, "julai": 7,
	"aug": 8, "august": 8, "ogos": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10, "oktober": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12, "disember": 12,
}

var ongoingWords = map[string]struct{}{
	"present": {}, "current": {}, "currently": {}, "now": {}, "today": {},
	"ongoing": {}, "to date": {}, "till date": {}, "date": {}, "kini": {},
}

var (
	yearOnlyRe   = regexp.MustCompile(`^(\d{4})$`)
	yearMonthRe  = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})(?:[-/.]\d{1,2})?$`)
	monthYearRe  = regexp.MustCompile(`^(\d{1,2})[-/.](\d{4})$`)
	namedMonthRe = regexp.MustCompile(`^([a-z]+)\.?,?\s*(\d{4})$`)
	yearsDurRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:years?|yrs?|tahun)`)
	monthsDurRe  = regexp.MustCompile(`(\d+)\s*(?:months?|mos?|bulan)`)
	// spacedRangeRe needs whitespace around the separator so "2019-05" stays whole.
	spacedRangeRe = regexp.MustCompile(`^(.+?)\s+(?:-|to|until|hingga)\s+(.+)$`)
	// yearRangeRe anchors its left end on a whole date so "2019-05-2021-03"
	// splits after the month.
	yearRangeRe   = regexp.MustCompile(`^(\d{4}(?:[-/.]\d{1,2})?|\d{1,2}[-/.]\d{4}|[a-z]+\.?,?\s*\d{4})\s*-\s*(.+)$`)
)

// monthStamp is a calendar month counted from year zero.
type monthStamp int

func stamp(year, month int) monthStamp {
	return monthStamp(year*12 + month - 1)
}

// parseDate reads one end of a date range. Ongoing words resolve to now.
func parseDate(raw string, now time.Time) (monthStamp, bool) {
	s := textnorm.Fold(raw)
	s = strings.Trim(s, " .,()")
	if s == "" {
		return 0, false
	}
	if _, ok := ongoingWords[s]; ok {
		return stamp(now.Year(), int(now.Month())), true
	}
	if m := yearOnlyRe.FindStringSubmatch(s); m != nil {
		return yearMonth(m[1], strconv.Itoa(defaultMonth))
	}
	if m := yearMonthRe.FindStringSubmatch(s); m != nil {
		return yearMonth(m[1], m[2])
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		return yearMonth(m[2], m[1])
	}
	if m := namedMonthRe.FindStringSubmatch(s); m != nil {
		month, ok := monthNames[m[1]]
		if !ok {
			return 0, false
		}
		return yearMonth(m[2], strconv.Itoa(month))
	}
	return 0, false
}

func yearMonth(y, m string) (monthStamp, bool) {
	year, err := strconv.Atoi(y)
	if err != nil || year < 1900 || year > 2200 {
		return 0, false
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return stamp(year, month), true
}

// spanMonths returns the months between start and end. An empty end is
// treated as ongoing. Reversed or unparseable ranges report false.
func spanMonths(start, end string, now time.Time) (int, bool) {
	from, ok := parseDate(start, now)
	if !ok {
		return 0, false
	}
	if strings.TrimSpace(end) == "" {
		end = "present"
	}
	to, ok := parseDate(end, now)
	if !ok {
		return 0, false
	}
	months := int(to - from)
	if months < 0 {
		return 0, false
	}
	return min(months, maxSpanMonths), true
}

// splitRange splits "Jan 2019 – Present" or "2019-2022" into its two ends.
func splitRange(s string) (string, string, bool) {
	folded := textnorm.Fold(s)
	if m := spacedRangeRe.FindStringSubmatch(folded); m != nil {
		return m[1], m[2], true
	}
	if m := yearRangeRe.FindStringSubmatch(folded); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// durationMonths reads a free-text duration such as "2 years 3 months".
func durationMonths(s string) (int, bool) {
	folded := textnorm.Fold(s)
	total := 0.0
	found := false
	if m := yearsDurRe.FindStringSubmatch(folded); m != nil {
		if y, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += y * 12
			found = true
		}
	}
	if m := monthsDurRe.FindStringSubmatch(folded); m != nil {
		if mo, err := strconv.Atoi(m[1]); err == nil {
			total += float64(mo)
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return min(int(total), maxSpanMonths), true
}
