package ports

import (
	"context"

	"github.com/baditaflorin/go_azstemmer/internal/core/domain"
)

// Stemmer defines the interface for reducing tokens to their stems.
type Stemmer interface {
	// Stem returns the best stem for a single token.
	Stem(word string) string

	// Analyze returns the stem together with every candidate considered.
	Analyze(word string) domain.Result

	// StemAll stems every token, preserving input order.
	StemAll(ctx context.Context, tokens []string) ([]string, error)
}
