// Package config loads command settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/bjaus/formatf"
	"github.com/bjaus/formatf/internal/logging"
	"github.com/bjaus/formatf/internal/report"
)

const (
	EnvAbort    = "FORMATF_ABORT"
	EnvCharset  = "FORMATF_CHARSET"
	EnvEncoding = "FORMATF_ENCODING"
	EnvOutput   = "FORMATF_OUTPUT"
	EnvLogLevel = logging.EnvLogLevel
)

var (
	ErrUnknownCharset = errors.New("unknown charset")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config holds the command settings.
type Config struct {
	Abort          bool   `toml:"abort"`
	Charset        string `toml:"charset"`
	Encoding       string `toml:"encoding"`
	Output         string `toml:"output"`
	LogLevel       string `toml:"log_level"`
	ExponentDigits int    `toml:"exponent_digits"`
}

func Default() Config {
	return Config{
		Output:         string(report.Table),
		LogLevel:       "warn",
		ExponentDigits: 2,
	}
}

// Load returns the defaults overlaid with the keys defined in the TOML file
// at path. An empty path loads only the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w (%s): unknown key %q", ErrInvalidConfig, path, undecoded[0].String())
	}

	if meta.IsDefined("abort") {
		cfg.Abort = raw.Abort
	}
	if meta.IsDefined("charset") {
		cfg.Charset = strings.TrimSpace(raw.Charset)
	}
	if meta.IsDefined("encoding") {
		cfg.Encoding = strings.TrimSpace(raw.Encoding)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("exponent_digits") {
		cfg.ExponentDigits = raw.ExponentDigits
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from the FORMATF_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v, err := strconv.ParseBool(strings.TrimSpace(getenv(EnvAbort))); err == nil {
		c.Abort = v
	}
	if v := strings.TrimSpace(getenv(EnvCharset)); v != "" {
		c.Charset = v
	}
	if v := strings.TrimSpace(getenv(EnvEncoding)); v != "" {
		c.Encoding = v
	}
	if v := strings.TrimSpace(getenv(EnvOutput)); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

func (c Config) Validate() error {
	if _, err := report.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("%w: output: %w", ErrInvalidConfig, err)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.ExponentDigits < 1 || c.ExponentDigits > 4 {
		return fmt.Errorf("%w: exponent_digits %d not in [1,4]", ErrInvalidConfig, c.ExponentDigits)
	}
	if _, err := c.Charmap(); err != nil {
		return err
	}
	if _, err := c.OutputEncoding(); err != nil {
		return err
	}
	return nil
}

// Charmap resolves Charset to the 8-bit charmap narrow text is decoded with.
// Empty and UTF-8 names return nil.
func (c Config) Charmap() (*charmap.Charmap, error) {
	if isUTF8(c.Charset) {
		return nil, nil
	}
	enc, err := lookup(c.Charset)
	if err != nil {
		return nil, err
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a single-byte charset", ErrUnknownCharset, c.Charset)
	}
	return cm, nil
}

// OutputEncoding resolves Encoding to the encoding output is written in.
// Empty and UTF-8 names return nil.
func (c Config) OutputEncoding() (encoding.Encoding, error) {
	if isUTF8(c.Encoding) {
		return nil, nil
	}
	return lookup(c.Encoding)
}

// Options returns the formatter options the settings select.
func (c Config) Options() ([]formatf.Option, error) {
	cm, err := c.Charmap()
	if err != nil {
		return nil, err
	}
	opts := []formatf.Option{formatf.WithExponentDigits(c.ExponentDigits)}
	if cm != nil {
		opts = append(opts, formatf.WithCharmap(cm))
	}
	if c.Abort {
		opts = append(opts, formatf.WithAbortOnError())
	}
	return opts, nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

func lookup(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return enc, nil
}
