package domain

import "sort"

// SuggestionSet is an unordered set of suggestion phrases.
type SuggestionSet map[string]struct{}

// NewSuggestionSet creates a set holding the given phrases
func NewSuggestionSet(phrases ...string) SuggestionSet {
	s := make(SuggestionSet, len(phrases))
	for _, p := range phrases {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a phrase
func (s SuggestionSet) Add(phrase string) {
	s[phrase] = struct{}{}
}

// Contains reports whether phrase is in the set
func (s SuggestionSet) Contains(phrase string) bool {
	_, ok := s[phrase]
	return ok
}

// Len returns the number of distinct phrases
func (s SuggestionSet) Len() int {
	return len(s)
}

// Union adds every phrase of other into s. Applying the same union twice is a no-op.
func (s SuggestionSet) Union(other SuggestionSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Sorted returns the phrases in lexical order.
func (s SuggestionSet) Sorted() []string {
	return sortedKeys(s)
}

// ExpansionQuerySet is the set of second-round queries derived from a SuggestionSet.
type ExpansionQuerySet map[string]struct{}

// NewExpansionQuerySet creates a set holding the given queries
func NewExpansionQuerySet(queries ...string) ExpansionQuerySet {
	s := make(ExpansionQuerySet, len(queries))
	for _, q := range queries {
		s[q] = struct{}{}
	}
	return s
}

// Add inserts a query
func (s ExpansionQuerySet) Add(query string) {
	s[query] = struct{}{}
}

// Contains reports whether query is in the set
func (s ExpansionQuerySet) Contains(query string) bool {
	_, ok := s[query]
	return ok
}

// Len returns the number of distinct queries
func (s ExpansionQuerySet) Len() int {
	return len(s)
}

// Sorted returns the queries in lexical order, giving a stable submission order.
func (s ExpansionQuerySet) Sorted() []string {
	return sortedKeys(s)
}

func sortedKeys[M ~map[string]struct{}](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
