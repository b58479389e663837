package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "bare group",
			raw:      `,["red shoes","blue shoes"],`,
			expected: []string{"red shoes", "blue shoes"},
		},
		{
			name:     "vendor payload",
			raw:      `["shoes",["shoes for men","shoes for women","shoes"],[{"nodes":[{"alias":"aps","name":"All"}]},{},{}],[],"1PQ8Q6X0FNM6O"]`,
			expected: []string{"shoes for men", "shoes for women", "shoes"},
		},
		{
			name:     "single phrase",
			raw:      `["shoes",["red shoes"],[],[]]`,
			expected: []string{"red shoes"},
		},
		{
			name:     "first group wins",
			raw:      `x,["a shoes"],y,["b shoes"],`,
			expected: []string{"a shoes"},
		},
		{
			name:     "punctuation kept",
			raw:      `,["shoes, size 9","shoes & socks"],`,
			expected: []string{"shoes, size 9", "shoes & socks"},
		},
		{
			name:     "empty phrase",
			raw:      `,[""],`,
			expected: []string{""},
		},
		{
			name:     "no group",
			raw:      "no bracket group here",
			expected: []string{},
		},
		{
			name:     "empty list is not a group",
			raw:      `["shoes",[],[],[]]`,
			expected: []string{},
		},
		{
			name:     "empty body",
			raw:      "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}
