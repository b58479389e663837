package completion

import (
	"regexp"
	"strings"
)

// suggestionGroup matches the first bracketed, comma-delimited list in the vendor payload,
// e.g. `,["red shoes","blue shoes"],`.
var suggestionGroup = regexp.MustCompile(`,\[([^\]]+)\],`)

const phraseSeparator = `","`

// Parse extracts suggestion phrases from a raw vendor response, preserving vendor order.
// A payload without a suggestion group yields an empty slice; that is a valid answer,
// not an error. Phrase content is not validated.
func Parse(raw string) []string {
	m := suggestionGroup.FindStringSubmatch(raw)
	if m == nil {
		return []string{}
	}

	inner := strings.TrimPrefix(m[1], `"`)
	inner = strings.TrimSuffix(inner, `"`)

	return strings.Split(inner, phraseSeparator)
}
