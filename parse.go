package formatf

import (
	"io"
)

// ArgType is the argument type a directive consumes.
type ArgType uint8

const (
	TypeInt ArgType = iota + 1
	TypeLong
	TypeLongLong
	TypeDouble
	TypeVoidPointer
	TypeCharPointer
	TypeWideCharPointer
	TypeShortPointer
	TypeIntPointer
	TypeStar // a '*' width or precision, always an int
)

var argTypeNames = [...]string{
	TypeInt:             "int",
	TypeLong:            "long",
	TypeLongLong:        "long long",
	TypeDouble:          "double",
	TypeVoidPointer:     "void*",
	TypeCharPointer:     "char*",
	TypeWideCharPointer: "wchar_t*",
	TypeShortPointer:    "short*",
	TypeIntPointer:      "int*",
	TypeStar:            "*",
}

// String returns the C spelling of the type.
func (t ArgType) String() string {
	if t > 0 && int(t) < len(argTypeNames) {
		return argTypeNames[t]
	}
	return "unknown"
}

// Directive is one argument a format string requires.
type Directive struct {
	Verb   rune    // conversion, or '*' for a star argument
	Type   ArgType // inferred argument type
	Offset int     // position of the directive's '%' in the format
}

// Parser reports the arguments a format string requires without consuming
// any. Each '*' yields its own TypeStar result before the result of the
// directive it belongs to.
type Parser struct {
	engine
	stars   int
	pending Directive
	ready   bool
	done    bool
	err     error
}

func newParser(cfg *config, format textReader, wide bool) *Parser {
	return &Parser{engine: engine{cfg: cfg, format: format, wide: wide}}
}

// Next returns the next required argument. It returns false at the end of the
// format, or when parsing stopped; see Err. A malformed directive yields only
// the '*' arguments it consumed before going wrong.
func (p *Parser) Next() (Directive, bool) {
	for {
		if p.stars > 0 {
			p.stars--
			return Directive{Verb: '*', Type: TypeStar, Offset: p.pending.Offset}, true
		}
		if p.ready {
			p.ready = false
			return p.pending, true
		}
		if p.done {
			return Directive{}, false
		}

		r, err := p.format.next()
		if err == io.EOF {
			p.done = true
			continue
		}
		if err != nil {
			p.stop(err)
			continue
		}
		if r != '%' {
			continue
		}

		at := p.format.pos - 1
		fs, err := p.directive()
		if err == errBadDirective {
			// Rendering fetches '*' arguments before the directive fails.
			p.stars = fs.stars
			p.pending = Directive{Offset: at}
			if p.cfg.abort {
				p.stop(invalid(fs, at))
				continue
			}
			p.format.pos = at + 1
			continue
		}
		if err != nil {
			p.stop(err)
			continue
		}
		if fs.conv == '%' {
			continue
		}
		p.stars = fs.stars
		p.pending = Directive{Verb: fs.conv, Type: p.typeOf(fs), Offset: at}
		p.ready = true
	}
}

// Err returns the error that stopped parsing, if any.
func (p *Parser) Err() error { return p.err }

func (p *Parser) stop(err error) {
	p.cfg.log.Warn().Err(err).Msg("parsing stopped")
	p.err = err
	p.done = true
}

func (p *Parser) typeOf(fs formatSpec) ArgType {
	switch fs.conv {
	case 'f', 'e', 'E', 'g', 'G':
		return TypeDouble
	case 'p':
		return TypeVoidPointer
	case 's', 'S':
		if p.wide {
			return TypeWideCharPointer
		}
		return TypeCharPointer
	case 't':
		return TypeCharPointer
	case 'w':
		return TypeWideCharPointer
	case 'n':
		if fs.has(flagShort) {
			return TypeShortPointer
		}
		return TypeIntPointer
	}
	switch fs.length() {
	case lengthLongLong:
		return TypeLongLong
	case lengthLong:
		return TypeLong
	default:
		return TypeInt
	}
}
