package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/bjaus/formatf"
	"github.com/bjaus/formatf/internal/config"
	"github.com/bjaus/formatf/internal/report"
)

type lineReader interface {
	Readline() (string, error)
}

// repl renders each FORMAT -- ARG... line followed by the report of its
// arguments. Errors on a line are printed and the loop goes on.
func repl(rl lineReader, f *formatf.Formatter, cfg config.Config, stdout, stderr io.Writer) error {
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := evaluate(line, f, cfg, stdout); err != nil {
			fmt.Fprintln(stderr, "error:", err)
		}
	}
}

func evaluate(line string, f *formatf.Formatter, cfg config.Config, w io.Writer) error {
	format, rest, _ := strings.Cut(line, argSeparator)
	vals, err := typedArgs(f.Types(format), strings.Fields(rest))
	if err != nil {
		return err
	}
	if err := render(w, f.Session(format, formatf.Args(vals...)), cfg); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return report.WriteIter(w, report.Format(cfg.Output), format, report.Rows(f.Types(format)))
}
