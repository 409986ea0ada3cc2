// Package encoding normalizes uploaded catalog spreadsheets to UTF-8.
// Product sheets exported from desktop tools routinely arrive as UTF-16 or
// Windows-1252, with or without a BOM.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen covers any BOM and gives chardet enough text to work with.
const sniffLen = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var bomEncodings = []struct {
	prefix []byte
	enc    xencoding.Encoding
}{
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// NewUTF8Reader wraps the input in a reader that yields UTF-8. A BOM wins
// over everything else; content that already is valid UTF-8 passes through
// untouched; anything else goes through charset sniffing.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	if bytes.HasPrefix(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		return br, nil
	}

	for _, bom := range bomEncodings {
		if bytes.HasPrefix(head, bom.prefix) {
			return transform.NewReader(br, bom.enc.NewDecoder()), nil
		}
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, sniffCharset(head).NewDecoder()), nil
}

// sniffCharset names the legacy charset of non-UTF-8 input. Windows-1252 is
// the fallback: every byte decodes, so a mislabeled Latin sheet still comes
// through readable. A UTF-8 verdict can legitimately happen when the peeked
// prefix ends mid-rune.
func sniffCharset(head []byte) xencoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return unicode.UTF8
	case "ISO-8859-15":
		return charmap.ISO8859_15
	default:
		return charmap.Windows1252
	}
}
