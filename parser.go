package formatf

import (
	"errors"
	"fmt"
	"io"
)

// errBadDirective marks a directive that must be recovered from or aborted
// on. It never leaves the package; callers see ErrFormatInvalid.
var errBadDirective = errors.New("bad directive")

// maxFieldDigits bounds width and precision literals.
const maxFieldDigits = 9

// engine holds what render and parse mode share: the format source and the
// directive grammar.
type engine struct {
	cfg    *config
	format textReader
	wide   bool
	args   ArgumentSource // nil in parse mode
}

// directive parses the directive following a '%'. In render mode '*' fetches
// its value from args; in parse mode it only counts. On errBadDirective the
// returned formatSpec carries the offending code point in conv.
func (e *engine) directive() (formatSpec, error) {
	var fs formatSpec
	for {
		r, err := e.format.next()
		if err == io.EOF {
			return fs, errBadDirective
		}
		if err != nil {
			return fs, err
		}
		fs.conv = r

		ok := true
		switch {
		case r == '0' && fs.has(flagDot):
			ok = fs.setSizing(flagPrec)
			if ok {
				fs.setPrec(e.number(r))
			}
		case flagChars[r] != 0:
			ok = fs.setFlag(flagChars[r])
		case r == '.':
			ok = fs.setSizing(flagDot)
		case r == '*':
			ok = e.star(&fs)
		case r >= '1' && r <= '9':
			if fs.has(flagDot) {
				ok = fs.setSizing(flagPrec)
				if ok {
					fs.setPrec(e.number(r))
				}
			} else {
				ok = fs.setSizing(flagWidth)
				if ok {
					fs.setWidth(e.number(r))
				}
			}
		case r == 'h':
			ok = fs.setLength(flagShort)
		case r == 'l' || r == 'L':
			b := flagLong
			if next, err := e.format.peek(); err == nil && next == r {
				_, _ = e.format.next()
				b = flagLongLong
			}
			ok = fs.setLength(b)
		default:
			if fs.has(flagDot) && !fs.has(flagPrec) {
				fs.flags |= flagPrec
				fs.setPrec(0)
			}
			if !fs.valid() {
				return fs, errBadDirective
			}
			return fs, nil
		}
		if !ok {
			return fs, errBadDirective
		}
	}
}

func (e *engine) star(fs *formatSpec) bool {
	b := flagWidth
	if fs.has(flagDot) {
		b = flagPrec
	}
	if !fs.setSizing(b) {
		return false
	}
	if e.args == nil {
		fs.stars++
		return true
	}
	v := int(e.args.Int())
	if b == flagWidth {
		fs.setWidth(v)
	} else {
		fs.setPrec(v)
	}
	return true
}

// number reads a decimal field starting with first. Digits past
// maxFieldDigits are consumed and ignored.
func (e *engine) number(first rune) int {
	n := int(first - '0')
	for digits := 1; ; digits++ {
		r, err := e.format.peek()
		if err != nil || r < '0' || r > '9' {
			return n
		}
		_, _ = e.format.next()
		if digits < maxFieldDigits {
			n = n*10 + int(r-'0')
		}
	}
}

// invalid describes a rejected directive that started at offset.
func invalid(fs formatSpec, offset int) error {
	return fmt.Errorf("%w: %q at offset %d", ErrFormatInvalid, fs.conv, offset)
}
