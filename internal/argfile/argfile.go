// Package argfile reads tagged format arguments from JSON.
//
// A file holds an array of slots:
//
//	[
//	  {"type": "int32", "value": -7},
//	  {"type": "text", "value": "hello"},
//	  {"type": "real", "value": 2.5}
//	]
//
// Type names are the [formatf.Tag] names. The array is validated against an
// embedded JSON Schema before it is converted.
package argfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/bjaus/formatf"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "args.schema.json"

// ErrInvalidArgs is returned for a file that fails validation or conversion.
var ErrInvalidArgs = errors.New("invalid argument file")

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return s, nil
})

type slot struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Load reads the argument file at path.
func Load(path string) ([]formatf.Arg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("argument file load failed (%s): %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads an argument array from r.
func Decode(r io.Reader) ([]formatf.Arg, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	sch, err := compiled()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	var slots []slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	args := make([]formatf.Arg, 0, len(slots))
	for i, s := range slots {
		a, err := convert(s)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d (%s): %w", ErrInvalidArgs, i, s.Type, err)
		}
		args = append(args, a)
	}
	return args, nil
}

type managedText string

func (m managedText) ManagedString() string { return string(m) }

type managedWide []rune

func (m managedWide) ManagedWideString() []rune { return m }

func convert(s slot) (formatf.Arg, error) {
	tag, ok := formatf.ParseTag(s.Type)
	if !ok {
		return formatf.Arg{}, fmt.Errorf("unknown type %q", s.Type)
	}
	raw := strings.TrimSpace(string(s.Value))

	switch tag {
	case formatf.TagNone:
		return formatf.Arg{}, nil
	case formatf.TagChar, formatf.TagWChar:
		r, err := character(s.Value, raw)
		if err != nil {
			return formatf.Arg{}, err
		}
		if tag == formatf.TagWChar {
			return formatf.WChar(r), nil
		}
		if r < 0 || r > 0xFF {
			return formatf.Arg{}, fmt.Errorf("char %U does not fit a byte", r)
		}
		return formatf.Char(byte(r)), nil
	case formatf.TagInt32:
		n, err := strconv.ParseInt(raw, 10, 32)
		return formatf.Int32(int32(n)), err
	case formatf.TagUInt32:
		n, err := strconv.ParseUint(raw, 10, 32)
		return formatf.Uint32(uint32(n)), err
	case formatf.TagInt64:
		n, err := strconv.ParseInt(raw, 10, 64)
		return formatf.Int64(n), err
	case formatf.TagUInt64:
		n, err := strconv.ParseUint(raw, 10, 64)
		return formatf.Uint64(n), err
	case formatf.TagReal:
		f, err := strconv.ParseFloat(raw, 64)
		return formatf.Real(f), err
	case formatf.TagPointer:
		if raw == "" || raw == "null" {
			return formatf.Pointer(nil), nil
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		return formatf.Pointer(uintptr(n)), err
	case formatf.TagManagedObject:
		var v any
		err := json.Unmarshal(s.Value, &v)
		return formatf.Object(v), err
	}

	if raw == "null" {
		return formatf.Arg{}, nil
	}
	var text string
	if err := json.Unmarshal(s.Value, &text); err != nil {
		return formatf.Arg{}, err
	}
	switch tag {
	case formatf.TagWideText:
		return formatf.Wide([]rune(text)), nil
	case formatf.TagManagedText:
		return formatf.ManagedText(managedText(text)), nil
	case formatf.TagManagedWideText:
		return formatf.ManagedWideText(managedWide(text)), nil
	default:
		return formatf.Text(text), nil
	}
}

// character accepts a one-character string or a code point number.
func character(value json.RawMessage, raw string) (rune, error) {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		r, size := utf8.DecodeRuneInString(s)
		if s == "" || size != len(s) {
			return 0, fmt.Errorf("want a single character, got %q", s)
		}
		return r, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	return rune(n), err
}
