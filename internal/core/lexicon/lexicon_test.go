package lexicon

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrdersSuffixesLongestFirst(t *testing.T) {
	lx := New(nil, []string{"ar", "lar", "dan", "a", "ların", "in"})

	assert.Equal(t, []string{"ların", "lar", "dan", "ar", "in", "a"}, lx.Suffixes())
}

func TestNewCountsRunesNotBytes(t *testing.T) {
	// "ın" is two runes but three bytes; it must not outrank "lar".
	lx := New(nil, []string{"ın", "lar"})

	assert.Equal(t, []string{"lar", "ın"}, lx.Suffixes())
}

func TestNewTrimsAndSkipsBlank(t *testing.T) {
	lx := New([]string{"  kitab ", "", "\tev\r"}, []string{" lar", "", "   ", "lar"})

	assert.True(t, lx.Contains("kitab"))
	assert.True(t, lx.Contains("ev"))
	assert.False(t, lx.Contains(""))
	assert.Equal(t, 2, lx.RootCount())
	assert.Equal(t, []string{"lar"}, lx.Suffixes())
}

func TestSuffixesReturnsCopy(t *testing.T) {
	lx := New(nil, []string{"lar"})
	s := lx.Suffixes()
	s[0] = "mutated"

	assert.Equal(t, []string{"lar"}, lx.Suffixes())
}

func TestEachSuffixStopsEarly(t *testing.T) {
	lx := New(nil, []string{"a", "lar", "dan"})

	var seen []string
	lx.EachSuffix(func(s string) bool {
		seen = append(seen, s)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"lar", "dan"}, seen)
}

func TestLoad(t *testing.T) {
	words := strings.NewReader("\ufeffkitab\nev \n\nmaşın\n")
	suffixes := strings.NewReader("ar\r\nlar\r\n")

	lx, err := Load(words, suffixes)
	require.NoError(t, err)

	assert.True(t, lx.Contains("kitab"))
	assert.True(t, lx.Contains("ev"))
	assert.True(t, lx.Contains("maşın"))
	assert.Equal(t, 3, lx.RootCount())
	assert.Equal(t, []string{"lar", "ar"}, lx.Suffixes())
}

func TestLoadInvalidEncoding(t *testing.T) {
	_, err := Load(strings.NewReader("kitab"), bytes.NewReader([]byte{0xff, 'a'}))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "suffixes", le.Source)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLoadUnreadable(t *testing.T) {
	_, err := Load(failingReader{}, strings.NewReader("lar"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "words", le.Source)
}

func TestLoadFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/words.txt", []byte("kitab\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/suffix.txt", []byte("lar\nar\n"), 0644))

	lx, err := LoadFiles(fs, "/data/words.txt", "/data/suffix.txt")
	require.NoError(t, err)
	assert.True(t, lx.Contains("kitab"))
	assert.Equal(t, 2, lx.SuffixCount())
}

func TestLoadFilesMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/words.txt", []byte("kitab\n"), 0644))

	lx, err := LoadFiles(fs, "/data/words.txt", "/data/suffix.txt")
	assert.Nil(t, lx)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "/data/suffix.txt", le.Source)
}

func TestSnapshotRoundTrip(t *testing.T) {
	orig := New([]string{"kitab", "ev", "göz"}, []string{"ar", "lar", "dan", "da"})

	var buf bytes.Buffer
	require.NoError(t, orig.WriteSnapshot(&buf))

	restored, err := ReadSnapshot(&buf)
	require.NoError(t, err)

	assert.Equal(t, orig.Suffixes(), restored.Suffixes())
	assert.Equal(t, orig.sortedRoots(), restored.sortedRoots())
}

func TestSnapshotFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	orig := New([]string{"kitab"}, []string{"lar"})

	require.NoError(t, orig.SaveSnapshotFile(fs, "/lexicon.snap"))

	restored, err := LoadSnapshotFile(fs, "/lexicon.snap")
	require.NoError(t, err)
	assert.True(t, restored.Contains("kitab"))
}

func TestReadSnapshotGarbage(t *testing.T) {
	_, err := ReadSnapshot(strings.NewReader("definitely not zstd"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "snapshot", le.Source)
}
