// Package textnorm provides the text folding and whole-term search helpers
// shared by the classifier and the signal extractors.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips diacritics and collapses runs of whitespace into
// single spaces. The result is safe to feed into ContainsTerm and TermIndexes.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.NewReplacer("–", "-", "—", "-", "\u00a0", " ").Replace(folded)
	return CollapseSpaces(folded)
}

// CollapseSpaces trims s and replaces every whitespace run with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Join folds and concatenates the non-empty parts with single spaces.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := Fold(p); f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// ContainsTerm reports whether term occurs in text as a whole word or phrase.
// Both arguments are expected to be folded already.
func ContainsTerm(text, term string) bool {
	return len(TermIndexes(text, term)) > 0
}

// ContainsAny reports whether any of the terms occurs in text.
func ContainsAny(text string, terms []string) bool {
	for _, term := range terms {
		if ContainsTerm(text, term) {
			return true
		}
	}
	return false
}

// TermIndexes returns the byte offsets of every whole-term occurrence of term
// in text. An edge of term that is a letter or digit must not touch another
// letter or digit in text; punctuation edges such as the pluses in "c++" are
// matched literally.
func TermIndexes(text, term string) []int {
	return termIndexes(text, term, suffixNone)
}

// ContainsStem is ContainsTerm that also accepts an "s" or "es" plural after
// terms of four or more letters, so "pump" matches "pumps" while "it" does
// not match "its".
func ContainsStem(text, term string) bool {
	return len(StemIndexes(text, term)) > 0
}

// ContainsAnyStem reports whether any of the terms occurs in text as a stem.
func ContainsAnyStem(text string, terms []string) bool {
	for _, term := range terms {
		if ContainsStem(text, term) {
			return true
		}
	}
	return false
}

// StemIndexes is TermIndexes with the plural allowance of ContainsStem.
func StemIndexes(text, term string) []int {
	if utf8.RuneCountInString(term) < minSuffixedTerm {
		return TermIndexes(text, term)
	}
	return termIndexes(text, term, suffixPlural)
}

// ContainsPrefix is ContainsTerm that lets terms of four or more letters
// open a longer word, so "account" matches "accountant" and "audit" matches
// "auditor". Shorter terms still need a whole word.
func ContainsPrefix(text, term string) bool {
	return len(PrefixIndexes(text, term)) > 0
}

// ContainsAnyPrefix reports whether any of the terms occurs in text as a prefix.
func ContainsAnyPrefix(text string, terms []string) bool {
	for _, term := range terms {
		if ContainsPrefix(text, term) {
			return true
		}
	}
	return false
}

// PrefixIndexes is TermIndexes with the word-opening allowance of ContainsPrefix.
func PrefixIndexes(text, term string) []int {
	if utf8.RuneCountInString(term) < minSuffixedTerm {
		return TermIndexes(text, term)
	}
	return termIndexes(text, term, suffixAny)
}

// minSuffixedTerm is the shortest term allowed to take a suffix.
const minSuffixedTerm = 4

// suffix selects what may follow a term's last letter.
type suffix int

const (
	suffixNone suffix = iota
	suffixPlural
	suffixAny
)

func termIndexes(text, term string, allow suffix) []int {
	if term == "" || len(term) > len(text) {
		return nil
	}
	first, _ := utf8.DecodeRuneInString(term)
	last, _ := utf8.DecodeLastRuneInString(term)
	checkStart := isWordRune(first)
	checkEnd := isWordRune(last)
	if !unicode.IsLetter(last) {
		allow = suffixNone
	}

	var out []int
	offset := 0
	for offset <= len(text)-len(term) {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(term)
		ok := true
		if checkStart && start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:start])
			ok = !isWordRune(prev)
		}
		if ok && checkEnd {
			switch allow {
			case suffixAny:
			case suffixPlural:
				rest := text[end:]
				ok = boundaryAt(text, end) ||
					(strings.HasPrefix(rest, "s") && boundaryAt(text, end+1)) ||
					(strings.HasPrefix(rest, "es") && boundaryAt(text, end+2))
			default:
				ok = boundaryAt(text, end)
			}
		}
		if ok {
			out = append(out, start)
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return out
}

func boundaryAt(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
