package normalizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/baditaflorin/go_azstemmer/internal/pool"
	"github.com/baditaflorin/go_azstemmer/internal/ports"
	"github.com/baditaflorin/go_azstemmer/internal/textenc"
)

// FilterMode selects how characters outside the permitted set are removed.
type FilterMode int

const (
	// FilterStrict drops every rune that is not an ASCII letter, digit, space, newline or period.
	FilterStrict FilterMode = iota
	// FilterCombiningDot drops a non-permitted rune only when a U+0307 follows it,
	// removing both. Lowercased uppercase diacritics survive to the second
	// substitution pass in this mode.
	FilterCombiningDot
)

const combiningDotAbove = '\u0307'

// asciiPunctuation is every printable ASCII punctuation character.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// substitutions folds language-specific letters onto plain Latin ones.
// No replacement produces another key, so one simultaneous pass equals
// applying the pairs one after another.
var substitutions = strings.NewReplacer(
	"İ", "i",
	"ü", "u",
	"ə", "e",
	"Ə", "e",
	"ı", "i",
	"ö", "o",
	"ğ", "g",
	"ş", "s",
	"ç", "c",
	"w", "s",
)

// DefaultNormalizer turns raw text into clean lowercase word tokens.
type DefaultNormalizer struct {
	mode     FilterMode
	builders *pool.BuilderPool
}

// NewDefaultNormalizer creates a normalizer using strict filtering.
func NewDefaultNormalizer() ports.Normalizer {
	return NewNormalizer(FilterStrict)
}

// NewNormalizer creates a normalizer with the given filter mode.
func NewNormalizer(mode FilterMode) *DefaultNormalizer {
	return &DefaultNormalizer{
		mode:     mode,
		builders: pool.NewBuilderPool(),
	}
}

// Normalize strips a byte-order mark, folds diacritics, lowercases, drops
// disallowed characters, folds again, splits on whitespace and removes ASCII
// punctuation other than '-' from each token. Tokens left empty are kept.
func (n *DefaultNormalizer) Normalize(text string) []string {
	text = textenc.StripBOM(text)
	if text == "" {
		return []string{}
	}

	text = substitutions.Replace(text)
	// a Caser is stateful, so one is created per call
	text = cases.Lower(language.Und).String(text)
	text = n.filter(text)
	text = substitutions.Replace(text)

	fields := strings.Fields(text)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = n.stripPunctuation(f)
	}
	return tokens
}

func (n *DefaultNormalizer) filter(text string) string {
	sb := n.builders.Get()
	defer n.builders.Put(sb)
	sb.Grow(len(text))

	switch n.mode {
	case FilterCombiningDot:
		runes := []rune(text)
		for i := 0; i < len(runes); i++ {
			if !isPermitted(runes[i]) && i+1 < len(runes) && runes[i+1] == combiningDotAbove {
				i++
				continue
			}
			sb.WriteRune(runes[i])
		}
	default:
		for _, r := range text {
			if isPermitted(r) {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

func (n *DefaultNormalizer) stripPunctuation(token string) string {
	if strings.IndexFunc(token, isStrippable) < 0 {
		return token
	}

	sb := n.builders.Get()
	defer n.builders.Put(sb)
	for _, r := range token {
		if !isStrippable(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isPermitted(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '\n', r == '.':
		return true
	}
	return false
}

func isStrippable(r rune) bool {
	return r != '-' && r < 128 && strings.ContainsRune(asciiPunctuation, r)
}
