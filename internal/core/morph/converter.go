// Package morph rewrites consonant alternations at morpheme boundaries
// back to their dictionary form before suffix stripping.
package morph

import (
	"strings"
	"unicode/utf8"
)

// Stripper removes a single suffix whose remainder is a known root.
type Stripper interface {
	StripOne(word string) string
}

// Endings whose final g was voiced from q.
var qEndings = []string{"lig", "lug", "lag", "cig", "cag", "ig", "lıg", "cıg", "ıg"}

// Endings whose final y was softened from k.
var kEndings = []string{"liy", "luy", "cey", "iy", "uy", "ey"}

// Irregular roots whose final d was voiced from t.
var tRoots = []string{"ed", "ged", "yarad"}

// Converter applies the q, k and t alternation rules. It is stateless and safe
// for concurrent use.
type Converter struct {
	stripper Stripper
}

// NewConverter creates a converter. The stripper is consulted by the k rule;
// a nil stripper leaves the word as is before the ending check.
func NewConverter(stripper Stripper) *Converter {
	return &Converter{stripper: stripper}
}

// Convert returns word with its alternated final consonant restored.
// Rule groups are tried in q, k, t order and the first match wins.
func (c *Converter) Convert(word string) string {
	for _, end := range qEndings {
		if strings.HasSuffix(word, end) {
			return replaceLast(word, 'q')
		}
	}

	for _, end := range kEndings {
		if !strings.HasSuffix(word, end) {
			continue
		}
		stripped := word
		if c.stripper != nil {
			stripped = c.stripper.StripOne(word)
		}
		if strings.HasSuffix(stripped, end) {
			return replaceLast(stripped, 'k')
		}
	}

	for _, root := range tRoots {
		if word == root {
			return replaceLast(word, 't')
		}
	}

	return word
}

func replaceLast(word string, r rune) string {
	_, size := utf8.DecodeLastRuneInString(word)
	return word[:len(word)-size] + string(r)
}
