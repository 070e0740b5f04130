// Package lexicon holds the immutable root-word set and the longest-first
// suffix list the stemmer works against.
package lexicon

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Lexicon is a read-only dictionary of roots and suffixes.
// It is safe for concurrent use once constructed.
type Lexicon struct {
	roots    map[string]struct{}
	suffixes []string
}

// New builds a Lexicon. Entries are trimmed and blank entries are skipped.
// Suffixes are ordered by descending character length; ties keep encounter order.
func New(roots, suffixes []string) *Lexicon {
	lx := &Lexicon{
		roots:    make(map[string]struct{}, len(roots)),
		suffixes: make([]string, 0, len(suffixes)),
	}

	for _, r := range roots {
		if r = strings.TrimSpace(r); r != "" {
			lx.roots[r] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		lx.suffixes = append(lx.suffixes, s)
	}

	sort.SliceStable(lx.suffixes, func(i, j int) bool {
		return utf8.RuneCountInString(lx.suffixes[i]) > utf8.RuneCountInString(lx.suffixes[j])
	})

	return lx
}

// Contains reports whether word is a verbatim root.
func (lx *Lexicon) Contains(word string) bool {
	_, ok := lx.roots[word]
	return ok
}

// Suffixes returns a copy of the suffix list, longest first.
func (lx *Lexicon) Suffixes() []string {
	out := make([]string, len(lx.suffixes))
	copy(out, lx.suffixes)
	return out
}

// EachSuffix calls fn for every suffix in longest-first order until fn returns false.
func (lx *Lexicon) EachSuffix(fn func(suffix string) bool) {
	for _, s := range lx.suffixes {
		if !fn(s) {
			return
		}
	}
}

// RootCount returns the number of distinct roots.
func (lx *Lexicon) RootCount() int {
	return len(lx.roots)
}

// SuffixCount returns the number of distinct suffixes.
func (lx *Lexicon) SuffixCount() int {
	return len(lx.suffixes)
}

// sortedRoots returns the root set as a sorted slice.
func (lx *Lexicon) sortedRoots() []string {
	out := make([]string, 0, len(lx.roots))
	for r := range lx.roots {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
