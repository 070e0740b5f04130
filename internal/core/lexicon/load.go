package lexicon

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/baditaflorin/go_azstemmer/internal/textenc"
)

// ErrInvalidEncoding is reported when a source is not decodable as UTF-8 text.
var ErrInvalidEncoding = textenc.ErrInvalidEncoding

// LoadError reports which lexicon source could not be loaded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load lexicon %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads line-delimited roots and suffixes. Loading is all-or-nothing:
// any failure returns a *LoadError and no Lexicon.
func Load(words, suffixes io.Reader) (*Lexicon, error) {
	return load("words", words, "suffixes", suffixes)
}

// LoadFiles opens both sources through fs and loads them.
func LoadFiles(fs afero.Fs, wordsPath, suffixesPath string) (*Lexicon, error) {
	wf, err := fs.Open(wordsPath)
	if err != nil {
		return nil, &LoadError{Source: wordsPath, Err: err}
	}
	defer wf.Close()

	sf, err := fs.Open(suffixesPath)
	if err != nil {
		return nil, &LoadError{Source: suffixesPath, Err: err}
	}
	defer sf.Close()

	return load(wordsPath, wf, suffixesPath, sf)
}

func load(wordsName string, words io.Reader, suffixesName string, suffixes io.Reader) (*Lexicon, error) {
	roots, err := readLines(wordsName, words)
	if err != nil {
		return nil, err
	}
	sfx, err := readLines(suffixesName, suffixes)
	if err != nil {
		return nil, err
	}
	return New(roots, sfx), nil
}

func readLines(source string, r io.Reader) ([]string, error) {
	if r == nil {
		return nil, &LoadError{Source: source, Err: errors.New("no reader")}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	text, err := textenc.Decode(data)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
