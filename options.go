package formatf

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

type config struct {
	abort      bool
	cm         *charmap.Charmap
	expDigits  int
	objectText func(any) string
	log        zerolog.Logger
}

func defaultConfig() config {
	return config{
		expDigits:  2,
		objectText: defaultObjectText,
		log:        zerolog.Nop(),
	}
}

// Option configures a [Formatter].
type Option func(*config)

// WithAbortOnError stops the output at the first malformed directive and
// records [ErrFormatInvalid] instead of emitting the '%' literally.
func WithAbortOnError() Option {
	return func(c *config) { c.abort = true }
}

// WithCharmap treats narrow text, including the format string, as raw 8-bit
// bytes decoded through cm instead of UTF-8. A nil cm restores UTF-8.
func WithCharmap(cm *charmap.Charmap) Option {
	return func(c *config) { c.cm = cm }
}

// WithRawBytes treats every narrow byte as the code point of the same value.
func WithRawBytes() Option {
	return WithCharmap(charmap.ISO8859_1)
}

// WithExponentDigits sets the minimum number of exponent digits for %e and
// %g. Default: 2.
func WithExponentDigits(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.expDigits = n
		}
	}
}

// WithObjectText sets the capability used by %S to turn a managed object into
// text. Default: String for fmt.Stringer values, fmt.Sprint otherwise.
func WithObjectText(fn func(any) string) Option {
	return func(c *config) {
		if fn != nil {
			c.objectText = fn
		}
	}
}

// WithLogger sets the logger used to report recovered and fatal directive
// errors. Default: a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

func defaultObjectText(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
