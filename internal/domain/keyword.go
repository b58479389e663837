package domain

import "strings"

// ValidateKeyword rejects keywords that are empty or consist only of whitespace.
// The keyword itself is never rewritten: matching is exact and case-sensitive.
func ValidateKeyword(keyword string) error {
	if strings.TrimSpace(keyword) == "" {
		return ErrEmptyKeyword
	}
	return nil
}

// ContainsExactKeyword reports whether keyword appears in phrase as a whole,
// space-delimited word or as the entire phrase. "red shoes" matches "shoes";
// "shoeshine" does not.
func ContainsExactKeyword(phrase, keyword string) bool {
	return phrase == keyword ||
		strings.Contains(phrase, keyword+" ") ||
		strings.Contains(phrase, " "+keyword)
}

// FilterExact keeps only the phrases that contain keyword exactly.
func FilterExact(phrases []string, keyword string) SuggestionSet {
	set := NewSuggestionSet()
	for _, p := range phrases {
		if ContainsExactKeyword(p, keyword) {
			set.Add(p)
		}
	}
	return set
}
