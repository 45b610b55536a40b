// Package report renders the argument list of a format string in several
// output formats.
package report

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/bjaus/formatf"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// Format represents an output format.
type Format string

const (
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	Table    Format = "table"
	ASCII    Format = "ascii"
	Markdown Format = "markdown"
	HTML     Format = "html"
	List     Format = "list"
	ENV      Format = "env"
	Plain    Format = "plain"
)

const goTemplatePrefix = "go-template="

var formats = []Format{JSON, JSONL, YAML, CSV, TSV, Table, ASCII, Markdown, HTML, List, ENV, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that executes a Go text/template once per row.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format name. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Row is one argument a format string requires.
type Row struct {
	Index  int    `json:"index" yaml:"index"`
	Offset int    `json:"offset" yaml:"offset"`
	Verb   string `json:"verb" yaml:"verb"`
	Type   string `json:"type" yaml:"type"`
}

func (r Row) cells() []string {
	return []string{strconv.Itoa(r.Index), strconv.Itoa(r.Offset), r.Verb, r.Type}
}

var header = []string{"#", "Offset", "Verb", "Type"}

// Rows numbers the directives of seq from 1.
func Rows(seq iter.Seq[formatf.Directive]) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		i := 0
		for d := range seq {
			i++
			row := Row{Index: i, Offset: d.Offset, Verb: "%" + string(d.Verb), Type: d.Type.String()}
			if d.Type == formatf.TypeStar {
				row.Verb = "*"
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Write renders rows to w. title names the table formats; it is ignored by
// the others.
func Write(w io.Writer, f Format, title string, rows []Row) error {
	if stream, ok := streamer(f); ok {
		return stream(w, slices.Values(rows))
	}
	switch f {
	case JSON:
		return writeJSON(w, rows)
	case YAML:
		return writeYAML(w, rows)
	case Table:
		return writeTable(w, title, rows, BorderRounded)
	case ASCII:
		return writeTable(w, title, rows, BorderASCII)
	case Markdown:
		return writeMarkdown(w, rows)
	case HTML:
		return writeHTML(w, title, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// WriteIter renders rows from seq. The line-oriented formats write each row
// as it arrives; the others need all rows for layout and collect them first.
func WriteIter(w io.Writer, f Format, title string, seq iter.Seq[Row]) error {
	if stream, ok := streamer(f); ok {
		return stream(w, seq)
	}
	return Write(w, f, title, slices.Collect(seq))
}

type streamFunc func(io.Writer, iter.Seq[Row]) error

func streamer(f Format) (streamFunc, bool) {
	switch f {
	case JSONL:
		return streamJSONL, true
	case CSV:
		return streamCSV, true
	case TSV:
		return streamTSV, true
	case List:
		return streamList, true
	case ENV:
		return streamENV, true
	case Plain:
		return streamPlain, true
	}
	if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
		return func(w io.Writer, seq iter.Seq[Row]) error {
			return streamGoTemplate(w, tmpl, seq)
		}, true
	}
	return nil, false
}
