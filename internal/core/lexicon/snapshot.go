package lexicon

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

const snapshotVersion = 1

// ErrSnapshotVersion is returned for snapshots written by an incompatible version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

type snapshot struct {
	Version  int      `msgpack:"v"`
	Roots    []string `msgpack:"r"`
	Suffixes []string `msgpack:"s"`
}

// WriteSnapshot writes a zstd-compressed msgpack image of the lexicon.
// Suffix order is preserved, roots are written sorted.
func (lx *Lexicon) WriteSnapshot(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create snapshot encoder: %w", err)
	}

	snap := snapshot{
		Version:  snapshotVersion,
		Roots:    lx.sortedRoots(),
		Suffixes: lx.suffixes,
	}
	if err := msgpack.NewEncoder(enc).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// ReadSnapshot restores a lexicon written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Lexicon, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, &LoadError{Source: "snapshot", Err: err}
	}
	defer dec.Close()

	var snap snapshot
	if err := msgpack.NewDecoder(dec).Decode(&snap); err != nil {
		return nil, &LoadError{Source: "snapshot", Err: err}
	}
	if snap.Version != snapshotVersion {
		return nil, &LoadError{
			Source: "snapshot",
			Err:    fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version),
		}
	}
	return New(snap.Roots, snap.Suffixes), nil
}

// SaveSnapshotFile writes the snapshot to path on fs.
func (lx *Lexicon) SaveSnapshotFile(fs afero.Fs, path string) error {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err := lx.WriteSnapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadSnapshotFile reads a snapshot from path on fs.
func LoadSnapshotFile(fs afero.Fs, path string) (*Lexicon, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return ReadSnapshot(f)
}
