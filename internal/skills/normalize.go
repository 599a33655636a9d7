// Package skills canonicalizes free-text skill, tool and certification tokens
// into a stable vocabulary used for set comparison.
package skills

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// namedFields are checked in order when a skill arrives as an object.
var namedFields = []string{"name", "skill", "title", "keyword", "technology", "value"}

var (
	qualifierRe   = regexp.MustCompile(`(?i)\(\s*(?:basic|beginner|intermediate|advanced|expert|proficient|fluent|native)\s*\)`)
	punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}+#./\- ]+`)
	delimiterRe   = regexp.MustCompile(`[,;|\r\n]+`)
)

// Token pairs a canonical skill with the spelling it was first seen in.
type Token struct {
	Canonical string
	Display   string
}

// Normalize flattens raw into skill strings and returns their canonical forms,
// de-duplicated case-insensitively in first-seen order. It accepts strings,
// delimiter separated strings, JSON encoded lists, slices and objects.
func Normalize(raw any) []string {
	tokens := Tokens(raw)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Canonical
	}
	return out
}

// NormalizeStrings is Normalize for a plain string slice.
func NormalizeStrings(raw []string) []string {
	return Normalize(raw)
}

// Tokens is like Normalize but also keeps the first raw spelling of each token.
func Tokens(raw any) []Token {
	items := Flatten(raw)
	out := make([]Token, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		canonical := Canonical(item)
		if canonical == "" {
			continue
		}
		key := strings.ToLower(canonical)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Token{Canonical: canonical, Display: strings.Join(strings.Fields(item), " ")})
	}
	return out
}

// Key returns the comparison key for a token: its lowercased canonical form.
func Key(token string) string {
	return strings.ToLower(Canonical(token))
}

// Canonical maps a single raw token onto its canonical spelling. Empty input
// or input with no letters or digits yields "".
func Canonical(raw string) string {
	stripped := strings.TrimSpace(qualifierRe.ReplaceAllString(raw, " "))
	cleaned := clean(stripped)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := aliases[cleaned]; ok {
		return canonical
	}
	if isUpper(stripped) {
		return strings.ToUpper(cleaned)
	}
	return titleCase(cleaned)
}

// Variants returns every spelling that canonicalizes to the same token as
// term, including the cleaned term itself, sorted for deterministic scans.
func Variants(term string) []string {
	cleaned := clean(term)
	if cleaned == "" {
		return nil
	}
	target, ok := aliases[cleaned]
	if !ok {
		return []string{cleaned}
	}
	out := []string{}
	for k, v := range aliases {
		if v == target {
			out = append(out, strings.ReplaceAll(k, " and ", "&"), k)
		}
	}
	sort.Strings(out)
	return dedupeSorted(out)
}

// Flatten turns a heterogeneous skill value into a flat list of raw strings.
// Objects contribute their first named field; objects without one have all
// their values walked in key order.
func Flatten(raw any) []string {
	var out []string
	flatten(raw, &out)
	return out
}

func flatten(v any, out *[]string) {
	switch val := v.(type) {
	case nil:
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return
		}
		if (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) || (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				flatten(decoded, out)
				return
			}
		}
		for _, part := range delimiterRe.Split(s, -1) {
			if p := strings.TrimSpace(part); p != "" {
				*out = append(*out, p)
			}
		}
	case []string:
		for _, s := range val {
			flatten(s, out)
		}
	case []any:
		for _, item := range val {
			flatten(item, out)
		}
	case map[string]any:
		for _, field := range namedFields {
			if named, ok := val[field]; ok && isScalar(named) {
				flatten(scalarString(named), out)
				return
			}
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(val[k], out)
		}
	case float64, float32, int, int64, int32, json.Number:
		flatten(scalarString(val), out)
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, float64, float32, int, int64, int32, json.Number:
		return true
	}
	return false
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// clean lowercases s, folds "&" to "and", drops punctuation other than
// + # . - / and trims dangling separators.
func clean(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = qualifierRe.ReplaceAllString(s, " ")
	s = strings.NewReplacer("&", " and ", "–", "-", "—", "-").Replace(s)
	s = punctuationRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimLeft(s, "-/ ")
	s = strings.TrimRight(s, ".-/ ")
	return s
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if _, ok := acronyms[w]; ok {
			words[i] = strings.ToUpper(w)
			continue
		}
		r := []rune(w)
		for j, c := range r {
			if unicode.IsLetter(c) {
				r[j] = unicode.ToUpper(c)
				break
			}
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func dedupeSorted(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i > 0 && s == in[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
