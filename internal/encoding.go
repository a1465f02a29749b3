package internal

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source encodings understood by the loader.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
	EncodingCP1252 = "cp1252"
)

// LookupEncoding maps a config/CLI encoding name to a text encoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("unknown encoding %q (available: %s, %s, %s)", name, EncodingUTF8, EncodingLatin1, EncodingCP1252)
}

// DecodingReader wraps r so that it yields UTF-8 text decoded from enc.
func DecodingReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil || enc == unicode.UTF8 {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// ToUTF8 converts a single legacy-codepage string to UTF-8.
func ToUTF8(s string, enc encoding.Encoding) (string, error) {
	out, _, err := transform.String(enc.NewDecoder(), s)
	if err != nil {
		return "", fmt.Errorf("decoding to utf-8: %w", err)
	}
	return out, nil
}
