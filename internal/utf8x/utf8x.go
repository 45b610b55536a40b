// Package utf8x encodes single code points in the legacy (RFC 2279) UTF-8
// layout, which allows sequences of up to six bytes.
//
// Code points in the Unicode range are handled by [unicode/utf8]. Surrogates
// and values above U+10FFFF, which can appear in wide text, use the extended
// three to six byte forms instead of being replaced.
package utf8x

import "unicode/utf8"

// MaxBytes is the longest encoded atom.
const MaxBytes = 6

// Size returns the number of bytes Append writes for r.
// Negative values are not encodable and count as utf8.RuneError.
func Size(r rune) int {
	switch {
	case r < 0:
		return utf8.RuneLen(utf8.RuneError)
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	case r < 0x200000:
		return 4
	case r < 0x4000000:
		return 5
	default:
		return 6
	}
}

// Append appends the encoded form of r to dst.
func Append(dst []byte, r rune) []byte {
	if r < 0 {
		return utf8.AppendRune(dst, utf8.RuneError)
	}
	if utf8.ValidRune(r) {
		return utf8.AppendRune(dst, r)
	}
	n := Size(r)
	lead := [MaxBytes + 1]byte{0, 0, 0xC0, 0xE0, 0xF0, 0xF8, 0xFC}[n]
	var buf [MaxBytes]byte
	v := uint32(r)
	for i := n - 1; i > 0; i-- {
		buf[i] = 0x80 | byte(v&0x3F)
		v >>= 6
	}
	buf[0] = lead | byte(v)
	return append(dst, buf[:n]...)
}
