package ports

// Normalizer defines the interface for turning raw text into word tokens.
type Normalizer interface {
	Normalize(text string) []string
}
