package service

import (
	"strings"

	"github.com/cloo-solutions/suggestscore/internal/domain"
)

// Expand derives second-round queries from the phrases matched for keyword.
// Every word of a matched phrase that is not exactly keyword is a novel word; each
// novel word w yields both "w keyword" and "keyword w", since the vendor ranks
// suggestions differently depending on word order.
func Expand(matched domain.SuggestionSet, keyword string) domain.ExpansionQuerySet {
	novel := make(map[string]struct{})
	for phrase := range matched {
		for _, word := range strings.Fields(phrase) {
			if word != keyword {
				novel[word] = struct{}{}
			}
		}
	}

	queries := domain.NewExpansionQuerySet()
	for word := range novel {
		queries.Add(word + " " + keyword)
		queries.Add(keyword + " " + word)
	}
	return queries
}
