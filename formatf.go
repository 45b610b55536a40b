package formatf

import (
	"errors"
	"io"
	"iter"
)

// Sentinel errors for programmatic error handling.
var (
	ErrFormatInvalid   = errors.New("invalid format directive")
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrShortBuffer     = errors.New("short buffer")
)

// Formatter creates sessions and parsers sharing one set of options.
// A Formatter is immutable and safe for concurrent use; the sessions it
// creates are not.
type Formatter struct {
	cfg config
}

// NewFormatter returns a Formatter configured by opts.
func NewFormatter(opts ...Option) *Formatter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Formatter{cfg: cfg}
}

var std = NewFormatter()

// Session starts formatting a narrow format string with arguments from src.
func (f *Formatter) Session(format string, src ArgumentSource) *Session {
	return newSession(&f.cfg, narrowText(format, f.cfg.cm), false, src)
}

// WideSession starts formatting a wide format string. Text conversions
// default to wide text in parse mode.
func (f *Formatter) WideSession(format []rune, src ArgumentSource) *Session {
	return newSession(&f.cfg, wideText(format), true, src)
}

// Parser starts reporting the argument types a narrow format string needs.
func (f *Formatter) Parser(format string) *Parser {
	return newParser(&f.cfg, narrowText(format, f.cfg.cm), false)
}

// WideParser is like Parser for a wide format string.
func (f *Formatter) WideParser(format []rune) *Parser {
	return newParser(&f.cfg, wideText(format), true)
}

// Types yields the argument types format requires, in argument order.
func (f *Formatter) Types(format string) iter.Seq[Directive] {
	return func(yield func(Directive) bool) {
		p := f.Parser(format)
		for {
			d, ok := p.Next()
			if !ok || !yield(d) {
				return
			}
		}
	}
}

// Sprintf formats into a string sized exactly by a first counting pass.
func (f *Formatter) Sprintf(format string, args ...any) (string, error) {
	return f.twoPass(func() *Session { return f.Session(format, Args(args...)) })
}

// Format is like Sprintf with tagged arguments.
func (f *Formatter) Format(format string, args ...Arg) (string, error) {
	return f.twoPass(func() *Session { return f.Session(format, List(args...)) })
}

// twoPass measures the output with one session and fills a buffer of exactly
// that size with a second.
func (f *Formatter) twoPass(start func() *Session) (string, error) {
	probe := start()
	size := probe.Size()
	if size < 0 {
		return "", probe.Err()
	}
	buf := make([]byte, size+1)
	n, err := start().FillTerminated(buf)
	if n < 0 {
		return "", err
	}
	return string(buf[:n]), err
}

// Fprintf formats to w and returns the number of bytes written.
func (f *Formatter) Fprintf(w io.Writer, format string, args ...any) (int64, error) {
	return f.Session(format, Args(args...)).WriteTo(w)
}

var argFormats = [...]string{
	TagNone:            "",
	TagChar:            "%c",
	TagWChar:           "%c",
	TagInt32:           "%d",
	TagUInt32:          "%u",
	TagInt64:           "%lld",
	TagUInt64:          "%llu",
	TagReal:            "%f",
	TagPointer:         "%p",
	TagNarrowText:      "%s",
	TagWideText:        "%s",
	TagManagedText:     "%s",
	TagManagedWideText: "%s",
	TagManagedObject:   "%S",
}

// FormatArg renders one tagged argument with the default conversion for its
// tag.
func (f *Formatter) FormatArg(a Arg) (string, error) {
	if int(a.tag) >= len(argFormats) {
		return "", nil
	}
	return f.Format(argFormats[a.tag], a)
}

// New starts a session over Go values using the default options.
func New(format string, args ...any) *Session {
	return std.Session(format, Args(args...))
}

// NewList starts a session over tagged arguments using the default options.
func NewList(format string, args ...Arg) *Session {
	return std.Session(format, List(args...))
}

// NewWide starts a session over a wide format string using the default
// options.
func NewWide(format []rune, args ...any) *Session {
	return std.WideSession(format, Args(args...))
}

// Sprintf formats with the default options.
func Sprintf(format string, args ...any) (string, error) {
	return std.Sprintf(format, args...)
}

// Format formats tagged arguments with the default options.
func Format(format string, args ...Arg) (string, error) {
	return std.Format(format, args...)
}

// Fprintf formats to w with the default options.
func Fprintf(w io.Writer, format string, args ...any) (int64, error) {
	return std.Fprintf(w, format, args...)
}

// Types reports the argument types of format with the default options.
func Types(format string) iter.Seq[Directive] {
	return std.Types(format)
}

// FormatArg renders one tagged argument with the default options.
func FormatArg(a Arg) (string, error) {
	return std.FormatArg(a)
}
