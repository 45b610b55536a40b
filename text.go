package formatf

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Managed is a managed narrow string. Its text is obtained through
// ManagedString when it is formatted with a text conversion.
type Managed interface {
	ManagedString() string
}

// ManagedWide is a managed wide string.
type ManagedWide interface {
	ManagedWideString() []rune
}

type textKind uint8

const (
	textNarrow textKind = iota
	textBytes
	textWide
)

// textReader pulls code points from a narrow or wide source. A NUL unit ends
// the text the same way the end of the slice does.
type textReader struct {
	kind   textKind
	narrow string
	bytes  []byte
	wide   []rune
	pos    int
	cm     *charmap.Charmap
}

func narrowText(s string, cm *charmap.Charmap) textReader {
	return textReader{kind: textNarrow, narrow: s, cm: cm}
}

func bytesText(b []byte, cm *charmap.Charmap) textReader {
	return textReader{kind: textBytes, bytes: b, cm: cm}
}

func wideText(r []rune) textReader {
	return textReader{kind: textWide, wide: r}
}

// next returns the next code point, io.EOF at the end of the text or
// ErrInvalidEncoding when UTF-8 decoding fails. The position does not move
// past an invalid sequence.
func (t *textReader) next() (rune, error) {
	switch t.kind {
	case textWide:
		if t.pos >= len(t.wide) || t.wide[t.pos] == 0 {
			return 0, io.EOF
		}
		r := t.wide[t.pos]
		t.pos++
		return r, nil
	case textBytes:
		if t.pos >= len(t.bytes) || t.bytes[t.pos] == 0 {
			return 0, io.EOF
		}
		b := t.bytes[t.pos]
		if t.cm != nil || b < utf8.RuneSelf {
			t.pos++
			return t.decodeByte(b), nil
		}
		r, size := utf8.DecodeRune(t.bytes[t.pos:])
		if r == utf8.RuneError && size <= 1 {
			return 0, t.invalid(b)
		}
		t.pos += size
		return r, nil
	default:
		if t.pos >= len(t.narrow) || t.narrow[t.pos] == 0 {
			return 0, io.EOF
		}
		b := t.narrow[t.pos]
		if t.cm != nil || b < utf8.RuneSelf {
			t.pos++
			return t.decodeByte(b), nil
		}
		r, size := utf8.DecodeRuneInString(t.narrow[t.pos:])
		if r == utf8.RuneError && size <= 1 {
			return 0, t.invalid(b)
		}
		t.pos += size
		return r, nil
	}
}

func (t *textReader) decodeByte(b byte) rune {
	if t.cm == nil {
		return rune(b)
	}
	return t.cm.DecodeByte(b)
}

func (t *textReader) invalid(b byte) error {
	return fmt.Errorf("%w: byte 0x%02x at offset %d", ErrInvalidEncoding, b, t.pos)
}

// peek returns the next code point without consuming it.
func (t *textReader) peek() (rune, error) {
	save := t.pos
	r, err := t.next()
	t.pos = save
	return r, err
}

// WideFromUTF16 decodes UTF-16 bytes into wide text. A byte order mark, when
// present, overrides bigEndian.
func WideFromUTF16(b []byte, bigEndian bool) ([]rune, error) {
	order := unicode.LittleEndian
	if bigEndian {
		order = unicode.BigEndian
	}
	dec := unicode.UTF16(order, unicode.ExpectBOM).NewDecoder()
	if len(b) < 2 || !hasBOM(b) {
		dec = unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder()
	}
	s, err := dec.Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: utf-16: %v", ErrInvalidEncoding, err)
	}
	return []rune(string(s)), nil
}

func hasBOM(b []byte) bool {
	return (b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE)
}
