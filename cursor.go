package formatf

import (
	"errors"
	"io"
	"iter"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/bjaus/formatf/internal/utf8x"
)

// Len pulls the rest of the output and returns its length in code points, or
// -1 if the session stopped on an encoding error. A code point withheld by
// Fill counts.
func (s *Session) Len() int {
	n := 0
	if s.atomLen > 0 {
		n = 1
		s.atomLen = 0
	}
	for {
		if _, ok := s.get(); !ok {
			break
		}
		n++
	}
	if s.broken() {
		return -1
	}
	return n
}

// Size pulls the rest of the output and returns its UTF-8 length in bytes,
// or -1 if the session stopped on an encoding error.
func (s *Session) Size() int {
	n := s.atomLen
	s.atomLen = 0
	for {
		r, ok := s.get()
		if !ok {
			break
		}
		n += utf8x.Size(r)
	}
	if s.broken() {
		return -1
	}
	return n
}

// Fill writes UTF-8 encoded output to dst and returns the byte count. A code
// point whose encoding does not fit is held back and written first by the
// next call, so no call splits one. Fill returns 0 and a nil error once the
// output is exhausted, and 0 with ErrShortBuffer when dst cannot hold the next
// code point. On an encoding error it returns -1.
func (s *Session) Fill(dst []byte) (int, error) {
	n := 0
	if s.atomLen > 0 {
		if s.atomLen > len(dst) {
			return 0, ErrShortBuffer
		}
		n = copy(dst, s.atom[:s.atomLen])
		s.atomLen = 0
	}
	for n < len(dst) {
		r, ok := s.get()
		if !ok {
			break
		}
		if utf8x.Size(r) > len(dst)-n {
			s.atomLen = len(utf8x.Append(s.atom[:0], r))
			s.pending = r
			if n == 0 {
				return 0, ErrShortBuffer
			}
			break
		}
		n = len(utf8x.Append(dst[:n], r))
	}
	if s.broken() {
		return -1, s.err
	}
	return n, s.err
}

// FillTerminated is like Fill but reserves the last byte of dst and writes a
// NUL after the output of this call.
func (s *Session) FillTerminated(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, ErrShortBuffer
	}
	n, err := s.Fill(dst[:len(dst)-1])
	if n >= 0 {
		dst[n] = 0
	}
	return n, err
}

// FillWide writes output code points to dst without encoding them.
func (s *Session) FillWide(dst []rune) (int, error) {
	n := 0
	if s.atomLen > 0 && len(dst) > 0 {
		dst[0] = s.pending
		s.atomLen = 0
		n = 1
	}
	for n < len(dst) {
		r, ok := s.get()
		if !ok {
			break
		}
		dst[n] = r
		n++
	}
	if s.broken() {
		return -1, s.err
	}
	return n, s.err
}

// WriteTo writes the rest of the output to w as UTF-8.
func (s *Session) WriteTo(w io.Writer) (int64, error) {
	var buf [512]byte
	var total int64
	for {
		n, err := s.Fill(buf[:])
		if n > 0 {
			m, werr := w.Write(buf[:n])
			total += int64(m)
			if werr != nil {
				return total, werr
			}
		}
		if err != nil || n <= 0 {
			return total, err
		}
	}
}

// Encode writes the rest of the output to w in the character encoding enc.
// The count is of UTF-8 bytes produced before encoding.
func (s *Session) Encode(w io.Writer, enc encoding.Encoding) (int64, error) {
	tw := transform.NewWriter(w, enc.NewEncoder())
	n, err := s.WriteTo(tw)
	if cerr := tw.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// ReadAll returns the rest of the output as a string.
func (s *Session) ReadAll() (string, error) {
	var sb strings.Builder
	_, err := s.WriteTo(&sb)
	return sb.String(), err
}

// Runes yields the rest of the output one code point at a time.
func (s *Session) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		if s.atomLen > 0 {
			s.atomLen = 0
			if !yield(s.pending) {
				return
			}
		}
		for {
			r, ok := s.get()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Count returns the number of code points produced so far.
func (s *Session) Count() int { return s.count }

// Err returns the error that stopped the session, if any.
func (s *Session) Err() error { return s.err }

func (s *Session) broken() bool {
	return errors.Is(s.err, ErrInvalidEncoding)
}
