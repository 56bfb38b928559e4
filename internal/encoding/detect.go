// Package encoding normalizes arbitrary statement files to UTF-8 before
// they hit the CSV parser. Bank exports show up in UTF-8, UTF-16 with a
// BOM, or a legacy Windows codepage depending on the bank and the OS
// that produced them.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how many bytes the detector inspects. Statement headers and
// a handful of rows fit comfortably.
const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so its content reads back as UTF-8.
//
// A BOM wins outright. Absent one, content that already validates as
// UTF-8 passes through untouched, otherwise chardet picks the codepage
// with Windows-1252 as the fallback for anything it cannot place.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	if decoded, ok := decodeBOM(br, head); ok {
		return decoded, nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, legacyCharmap(head).NewDecoder()), nil
}

// decodeBOM handles byte-order-marked input. The UTF-8 BOM is dropped so
// downstream parsers never see it in the first header cell.
func decodeBOM(br *bufio.Reader, head []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, true
	case bytes.HasPrefix(head, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true
	case bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

// legacyCharmap maps a chardet guess to a decoder for the single-byte
// codepages bank exports actually use.
func legacyCharmap(head []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "ISO-8859-9":
		return charmap.ISO8859_9
	case "ISO-8859-15":
		return charmap.ISO8859_15
	default:
		return charmap.Windows1252
	}
}
