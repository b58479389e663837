package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionSet_Dedup(t *testing.T) {
	s := NewSuggestionSet("red shoes", "red shoes", "blue shoes")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"blue shoes", "red shoes"}, s.Sorted())
}

func TestSuggestionSet_UnionIdempotent(t *testing.T) {
	a := NewSuggestionSet("red shoes", "shoes")
	b := NewSuggestionSet("shoes", "blue shoes")

	a.Union(b)
	once := a.Sorted()
	a.Union(b)

	assert.Equal(t, once, a.Sorted())
	assert.Equal(t, []string{"blue shoes", "red shoes", "shoes"}, a.Sorted())
}

func TestSuggestionSet_UnionCommutes(t *testing.T) {
	a1 := NewSuggestionSet("red shoes")
	a1.Union(NewSuggestionSet("blue shoes"))

	a2 := NewSuggestionSet("blue shoes")
	a2.Union(NewSuggestionSet("red shoes"))

	assert.Equal(t, a1, a2)
}

func TestExpansionQuerySet(t *testing.T) {
	q := NewExpansionQuerySet("shoes red", "red shoes")
	q.Add("red shoes")

	assert.Equal(t, 2, q.Len())
	assert.True(t, q.Contains("shoes red"))
	assert.False(t, q.Contains("shoes"))
	assert.Equal(t, []string{"red shoes", "shoes red"}, q.Sorted())
}
