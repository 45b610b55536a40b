// Command formatf renders a printf-style format string.
//
//	formatf [-config file] [-abort] [-charset name] [-encoding name] [-args file.json] FORMAT [ARG...]
//	formatf -types [-output json|jsonl|yaml|csv|tsv|table|ascii|markdown|html|list|env|plain|go-template=T] FORMAT
//	formatf -repl
//
// Positional arguments are typed from the directives of FORMAT. With -args
// the arguments come from a JSON file of tagged slots instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/bjaus/formatf"
	"github.com/bjaus/formatf/internal/argfile"
	"github.com/bjaus/formatf/internal/config"
	"github.com/bjaus/formatf/internal/logging"
	"github.com/bjaus/formatf/internal/report"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const replPrompt = "formatf> "

// argSeparator splits a REPL line into the format and its arguments.
const argSeparator = " -- "

var errArgCount = errors.New("missing argument")

type options struct {
	configPath string
	argsPath   string
	output     string
	charset    string
	encoding   string
	abort      bool
	types      bool
	repl       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(argv []string, getenv func(string) string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("formatf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "TOML settings file")
	fs.StringVar(&opts.argsPath, "args", "", "JSON file of tagged arguments")
	fs.StringVar(&opts.output, "output", "", "report format for -types and -repl: "+formatNames()+"|go-template=T")
	fs.StringVar(&opts.charset, "charset", "", "single-byte charset of narrow text arguments")
	fs.StringVar(&opts.encoding, "encoding", "", "character encoding of the output")
	fs.BoolVar(&opts.abort, "abort", false, "stop at the first malformed directive")
	fs.BoolVar(&opts.types, "types", false, "print the arguments FORMAT requires")
	fs.BoolVar(&opts.repl, "repl", false, "read FORMAT -- ARG... lines interactively")
	if err := fs.Parse(argv); err != nil {
		return exitUsage
	}

	cfg, err := settings(opts, getenv)
	if err != nil {
		fmt.Fprintln(stderr, "formatf:", err)
		return exitUsage
	}
	logger := newLogger(cfg, getenv, stderr)

	fopts, err := cfg.Options()
	if err != nil {
		logger.Error().Err(err).Msg("invalid settings")
		return exitUsage
	}
	f := formatf.NewFormatter(append(fopts, formatf.WithLogger(logger))...)

	if opts.repl {
		rl, err := readline.New(replPrompt)
		if err != nil {
			logger.Error().Err(err).Msg("failed to create readline")
			return exitError
		}
		defer rl.Close()
		if err := repl(rl, f, cfg, stdout, stderr); err != nil {
			logger.Error().Err(err).Msg("repl stopped")
			return exitError
		}
		return exitOK
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "usage: formatf [flags] FORMAT [ARG...]")
		fs.PrintDefaults()
		return exitUsage
	}
	format, rest := rest[0], rest[1:]

	if opts.types {
		if err := report.WriteIter(stdout, report.Format(cfg.Output), format, report.Rows(f.Types(format))); err != nil {
			logger.Error().Err(err).Msg("report failed")
			return exitError
		}
		return exitOK
	}

	var src formatf.ArgumentSource
	if opts.argsPath != "" {
		args, err := argfile.Load(opts.argsPath)
		if err != nil {
			logger.Error().Err(err).Str("path", opts.argsPath).Msg("failed to load arguments")
			return exitUsage
		}
		src = formatf.List(args...)
	} else {
		vals, err := typedArgs(f.Types(format), rest)
		if err != nil {
			logger.Error().Err(err).Msg("bad argument")
			return exitUsage
		}
		src = formatf.Args(vals...)
	}

	if err := render(stdout, f.Session(format, src), cfg); err != nil {
		logger.Error().Err(err).Msg("format failed")
		return exitError
	}
	return exitOK
}

// settings layers the config file, the environment and the flags, in that
// order of precedence from lowest to highest.
func settings(opts options, getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(getenv)
	if opts.abort {
		cfg.Abort = true
	}
	if opts.charset != "" {
		cfg.Charset = opts.charset
	}
	if opts.encoding != "" {
		cfg.Encoding = opts.encoding
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, getenv func(string) string, w io.Writer) zerolog.Logger {
	lc := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		lc.Level = lvl
	}
	logging.ApplyEnv(&lc, getenv)
	return logging.New(w, lc)
}

func render(w io.Writer, s *formatf.Session, cfg config.Config) error {
	enc, err := cfg.OutputEncoding()
	if err != nil {
		return err
	}
	if enc != nil {
		_, err = s.Encode(w, enc)
	} else {
		_, err = s.WriteTo(w)
	}
	return err
}

// typedArgs converts the positional strings to the types the directives
// require. Count directives take a fresh variable and no positional.
func typedArgs(dirs iter.Seq[formatf.Directive], raw []string) ([]any, error) {
	var vals []any
	i := 0
	for d := range dirs {
		switch d.Type {
		case formatf.TypeShortPointer:
			vals = append(vals, new(int16))
			continue
		case formatf.TypeIntPointer:
			vals = append(vals, new(int))
			continue
		}
		if i >= len(raw) {
			return nil, fmt.Errorf("%w for %%%c at offset %d", errArgCount, d.Verb, d.Offset)
		}
		v, err := convertArg(d, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q): %w", i+1, raw[i], err)
		}
		vals = append(vals, v)
		i++
	}
	return vals, nil
}

func convertArg(d formatf.Directive, s string) (any, error) {
	switch d.Type {
	case formatf.TypeCharPointer:
		return s, nil
	case formatf.TypeWideCharPointer:
		return []rune(s), nil
	case formatf.TypeDouble:
		return strconv.ParseFloat(s, 64)
	case formatf.TypeVoidPointer:
		n, err := strconv.ParseUint(s, 0, 64)
		return uintptr(n), err
	}

	if d.Verb == 'c' {
		if r, size := utf8.DecodeRuneInString(s); size == len(s) && s != "" {
			return r, nil
		}
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return n, nil
	}
	// Values above MaxInt64 wrap the way the unsigned conversions read them.
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return nil, err
	}
	return int64(n), nil
}

func formatNames() string {
	names := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, "|")
}
