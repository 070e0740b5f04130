package normalizer

import "github.com/baditaflorin/go_azstemmer/internal/ports"

// NormalizerFactory creates the appropriate normalizer for the requested filtering behaviour
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation
type NormalizerType int

const (
	// DefaultNormalizerType removes every character outside the permitted set
	DefaultNormalizerType NormalizerType = iota
	// LegacyNormalizerType reproduces the combining-dot filter the suffix rules were first tuned on
	LegacyNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case LegacyNormalizerType:
		return NewNormalizer(FilterCombiningDot)
	default:
		return NewNormalizer(FilterStrict)
	}
}
