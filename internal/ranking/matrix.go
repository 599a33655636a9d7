package ranking

import "github.com/jonathan/resume-matcher/internal/skills"

// overlap splits the required tokens into those the candidate holds and those
// missing, reporting each by the spelling the requirement used. Candidate is a
// set of comparison keys.
func overlap(required []skills.Token, candidate map[string]struct{}) (matched, missing []string) {
	matched, missing = []string{}, []string{}
	for _, tok := range required {
		if _, ok := candidate[skills.Key(tok.Canonical)]; ok {
			matched = append(matched, tok.Display)
		} else {
			missing = append(missing, tok.Display)
		}
	}
	return matched, missing
}

func keySet(tokens []skills.Token) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[skills.Key(tok.Canonical)] = struct{}{}
	}
	return set
}

func withoutKeys(tokens []skills.Token, exclude map[string]struct{}) []skills.Token {
	out := make([]skills.Token, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := exclude[skills.Key(tok.Canonical)]; !ok {
			out = append(out, tok)
		}
	}
	return out
}

func displays(tokens []skills.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Display
	}
	return out
}
