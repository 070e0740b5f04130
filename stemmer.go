// stemmer.go
// Package azstemmer is a rule-based morphological stemmer for Azerbaijani and
// Turkish style Latin orthography. Raw text is normalized to plain lowercase
// Latin tokens, consonant alternations at morpheme boundaries are undone, and
// suffixes from a known list are stripped recursively. The stem of a token is
// the longest form reachable by suffix removal that is itself a dictionary
// root, or the token itself when no such form exists.
//
// This file offers one-call helpers over pkg/stemmer for drivers that just
// need the whole pipeline.
package azstemmer

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	stdlogger "github.com/baditaflorin/go_azstemmer/internal/adapters/logger"
	"github.com/baditaflorin/go_azstemmer/internal/adapters/source"
	"github.com/baditaflorin/go_azstemmer/pkg/stemmer"
)

// StemFile loads the lexicon and the input text from the OS filesystem and
// returns one stem per token of the text.
func StemFile(ctx context.Context, wordsPath, suffixesPath, textPath string) ([]string, error) {
	return StemFileFs(ctx, afero.NewOsFs(), wordsPath, suffixesPath, textPath)
}

// StemFileFs is StemFile over an arbitrary filesystem.
func StemFileFs(ctx context.Context, fs afero.Fs, wordsPath, suffixesPath, textPath string) ([]string, error) {
	logger, err := createDefaultLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	src := source.NewFileSource(fs, source.WithLogger(stdlogger.FromExisting(logger)))

	lx, err := src.LoadLexicon(wordsPath, suffixesPath)
	if err != nil {
		logger.Error("Failed to load lexicon", "error", err)
		return nil, err
	}

	text, err := src.ReadText(textPath)
	if err != nil {
		logger.Error("Failed to read input text", "path", textPath, "error", err)
		return nil, err
	}

	s, err := stemmer.New(stemmer.WithLexicon(lx), stemmer.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return s.StemText(ctx, text)
}

// StemText normalizes and stems text against lx with default settings.
func StemText(ctx context.Context, lx *stemmer.Lexicon, text string) ([]string, error) {
	s, err := stemmer.New(stemmer.WithLexicon(lx), stemmer.WithSilentLogger())
	if err != nil {
		return nil, err
	}
	return s.StemText(ctx, text)
}
