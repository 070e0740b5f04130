// Package source loads lexicons and input text from a filesystem.
package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/baditaflorin/go_azstemmer/internal/adapters/logger"
	"github.com/baditaflorin/go_azstemmer/internal/core/lexicon"
	"github.com/baditaflorin/go_azstemmer/internal/ports"
	"github.com/baditaflorin/go_azstemmer/internal/textenc"
)

// FileSource reads stemmer inputs through an afero filesystem.
type FileSource struct {
	fs     afero.Fs
	logger ports.Logger
}

// Option configures a FileSource.
type Option func(*FileSource)

// WithLogger sets the logger used to report snapshot fallbacks.
func WithLogger(l ports.Logger) Option {
	return func(s *FileSource) {
		s.logger = l
	}
}

// NewFileSource creates a source over fs. A nil fs means the OS filesystem.
func NewFileSource(fs afero.Fs, opts ...Option) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	s := &FileSource{fs: fs, logger: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.NewNopLogger()
	}
	return s
}

// Fs returns the underlying filesystem.
func (s *FileSource) Fs() afero.Fs {
	return s.fs
}

// ReadText reads a whole UTF-8 text file, dropping a leading BOM.
func (s *FileSource) ReadText(path string) (string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	text, err := ReadText(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}

// ReadText reads all of r as UTF-8 text, dropping a leading BOM.
func ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return textenc.Decode(data)
}

// LoadLexicon loads the root and suffix lists.
func (s *FileSource) LoadLexicon(wordsPath, suffixesPath string) (*lexicon.Lexicon, error) {
	return lexicon.LoadFiles(s.fs, wordsPath, suffixesPath)
}

// LoadSnapshot loads a lexicon snapshot.
func (s *FileSource) LoadSnapshot(path string) (*lexicon.Lexicon, error) {
	return lexicon.LoadSnapshotFile(s.fs, path)
}

// SaveSnapshot writes lx as a snapshot to path.
func (s *FileSource) SaveSnapshot(lx *lexicon.Lexicon, path string) error {
	if err := lx.SaveSnapshotFile(s.fs, path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

// Lexicon loads the snapshot at snapshotPath when it is set and readable,
// and the text lists otherwise. A snapshot failure is logged as a warning
// when the text lists are used instead, and returned alongside the text
// list error when both fail.
func (s *FileSource) Lexicon(snapshotPath, wordsPath, suffixesPath string) (*lexicon.Lexicon, error) {
	if snapshotPath == "" {
		return s.LoadLexicon(wordsPath, suffixesPath)
	}

	lx, snapErr := s.LoadSnapshot(snapshotPath)
	if snapErr == nil {
		return lx, nil
	}
	if wordsPath == "" || suffixesPath == "" {
		return nil, snapErr
	}

	s.logger.Warn("Snapshot unavailable, falling back to text lexicon",
		"snapshot", snapshotPath,
		"words", wordsPath,
		"suffixes", suffixesPath,
		"error", snapErr,
	)

	lx, err := s.LoadLexicon(wordsPath, suffixesPath)
	if err != nil {
		return nil, errors.Join(snapErr, err)
	}
	return lx, nil
}
