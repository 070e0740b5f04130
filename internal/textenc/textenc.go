// Package textenc decodes UTF-8 text sources, dropping an optional byte-order mark.
package textenc

import (
	"errors"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned when a source is not valid UTF-8.
var ErrInvalidEncoding = errors.New("text is not valid UTF-8")

// Decode validates data as UTF-8 and returns it as a string without a leading BOM.
func Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	out, _, err := transform.Bytes(xunicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// StripBOM removes a leading byte-order mark. Invalid sequences are replaced
// with U+FFFD rather than reported.
func StripBOM(s string) string {
	out, _, err := transform.String(xunicode.UTF8BOM.NewDecoder(), s)
	if err != nil {
		return s
	}
	return out
}
