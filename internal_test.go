package formatf

import (
	"io"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func drain(t *testing.T, r textReader) []rune {
	t.Helper()
	var out []rune
	for {
		c, err := r.next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, c)
	}
}

func TestTextReader(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		reader textReader
		want   []rune
	}{
		"narrow":         {reader: narrowText("a日", nil), want: []rune("a日")},
		"narrow nul":     {reader: narrowText("a\x00b", nil), want: []rune("a")},
		"bytes":          {reader: bytesText([]byte("ü!"), nil), want: []rune("ü!")},
		"bytes nul":      {reader: bytesText([]byte{'x', 0, 'y'}, nil), want: []rune("x")},
		"wide":           {reader: wideText([]rune("wide")), want: []rune("wide")},
		"wide nul":       {reader: wideText([]rune{'x', 0, 'y'}), want: []rune("x")},
		"latin1 narrow":  {reader: narrowText("caf\xe9", charmap.ISO8859_1), want: []rune("café")},
		"latin1 bytes":   {reader: bytesText([]byte{0xe9}, charmap.ISO8859_1), want: []rune("é")},
		"empty":          {reader: narrowText("", nil), want: nil},
		"cp1252 special": {reader: narrowText("\x80", charmap.Windows1252), want: []rune("€")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, drain(t, tt.reader))
		})
	}
}

func TestTextReaderInvalidDoesNotAdvance(t *testing.T) {
	t.Parallel()

	r := narrowText("a\xffb", nil)
	c, err := r.next()
	require.NoError(t, err)
	assert.Equal(t, 'a', c)

	for range 2 {
		_, err = r.next()
		require.ErrorIs(t, err, ErrInvalidEncoding)
		assert.Equal(t, 1, r.pos)
	}

	b := bytesText([]byte{0xc3}, nil)
	_, err = b.next()
	require.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Equal(t, 0, b.pos)
}

func TestTextReaderPeek(t *testing.T) {
	t.Parallel()

	r := narrowText("ab", nil)
	c, err := r.peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', c)
	assert.Equal(t, 0, r.pos)

	c, err = r.next()
	require.NoError(t, err)
	assert.Equal(t, 'a', c)
}

func parseDirective(src string) (formatSpec, error) {
	cfg := defaultConfig()
	e := engine{cfg: &cfg, format: narrowText(src, nil)}
	return e.directive()
}

func TestDirective(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src       string
		wantFlags specFlag
		wantWidth int
		wantPrec  int
		wantLen   lengthClass
		wantConv  rune
		wantStars int
	}{
		"full": {
			src:       "-08.3lld",
			wantFlags: flagMinus | flagZero | flagWidth | flagDot | flagPrec,
			wantWidth: 8, wantPrec: 3, wantLen: lengthLongLong, wantConv: 'd',
		},
		"bare dot": {
			src:       ".f",
			wantFlags: flagDot | flagPrec | flagZeroPrec,
			wantConv:  'f',
		},
		"zero precision digits": {
			src:       ".05x",
			wantFlags: flagDot | flagPrec,
			wantPrec:  5, wantConv: 'x',
		},
		"stars": {
			src:       "*.*s",
			wantFlags: flagWidth | flagDot | flagPrec,
			wantConv:  's', wantStars: 2,
		},
		"short count": {
			src:       "hn",
			wantFlags: flagShort,
			wantLen:   lengthShort, wantConv: 'n',
		},
		"long double": {
			src:       "Lf",
			wantFlags: flagLong,
			wantLen:   lengthLong, wantConv: 'f',
		},
		"wide width": {
			src:       "1234567890123d",
			wantFlags: flagWidth,
			wantWidth: 123456789, wantConv: 'd',
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fs, err := parseDirective(tt.src)
			require.NoError(t, err)
			mask := flagPlus | flagMinus | flagSpace | flagHash | flagZero | flagWidth | flagDot | flagPrec | flagZeroPrec | flagShort
			assert.Equal(t, tt.wantFlags&mask, fs.flags&mask)
			assert.Equal(t, tt.wantWidth, fs.width)
			assert.Equal(t, tt.wantPrec, fs.prec)
			assert.Equal(t, tt.wantLen, fs.length())
			assert.Equal(t, tt.wantConv, fs.conv)
			assert.Equal(t, tt.wantStars, fs.stars)
		})
	}
}

func TestDirectiveRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src      string
		wantConv rune
	}{
		"repeated flag":      {src: "--d", wantConv: '-'},
		"flag after width":   {src: "5-d", wantConv: '-'},
		"two lengths":        {src: "hld", wantConv: 'l'},
		"width after length": {src: "l5d", wantConv: '5'},
		"unknown conversion": {src: "y", wantConv: 'y'},
		"hash on char":       {src: "#c", wantConv: 'c'},
		"precision on char":  {src: ".2c", wantConv: 'c'},
		"flag on percent":    {src: "5%", wantConv: '%'},
		"plus on count":      {src: "+n", wantConv: 'n'},
		"double dot":         {src: "..d", wantConv: '.'},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fs, err := parseDirective(tt.src)
			require.ErrorIs(t, err, errBadDirective)
			assert.Equal(t, tt.wantConv, fs.conv)
		})
	}

	_, err := parseDirective("5")
	require.ErrorIs(t, err, errBadDirective)
}

func TestSetWidthNegative(t *testing.T) {
	t.Parallel()

	var fs formatSpec
	fs.setWidth(-4)
	assert.Equal(t, 4, fs.width)
	assert.True(t, fs.has(flagMinus))

	fs.flags |= flagPrec
	fs.setPrec(-1)
	_, ok := fs.precision()
	assert.False(t, ok)
}

func TestInvalidError(t *testing.T) {
	t.Parallel()
	err := invalid(formatSpec{conv: 'y'}, 3)
	require.ErrorIs(t, err, ErrFormatInvalid)
	assert.Contains(t, err.Error(), "'y' at offset 3")
}

func TestAppendFixed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		v    float64
		prec int
		alt  bool
		want string
	}{
		"two places":    {v: 3.14159, prec: 2, want: "3.14"},
		"round up":      {v: 0.5, prec: 0, want: "1"},
		"alt point":     {v: 2.5, prec: 0, alt: true, want: "3."},
		"pad fraction":  {v: 1.5, prec: 4, want: "1.5000"},
		"exact":         {v: 0.125, prec: 3, want: "0.125"},
		"leading zeros": {v: 1.01, prec: 2, want: "1.01"},
		"huge":          {v: 1e20, prec: 1, want: "100000000000000000000.0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(appendFixed(nil, tt.v, tt.prec, tt.alt)))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	m, exp := normalize(12345, 2)
	assert.InDelta(t, 1.2345, m, 1e-12)
	assert.Equal(t, 4, exp)

	m, exp = normalize(9.999, 2)
	assert.InDelta(t, 0.9999, m, 1e-12)
	assert.Equal(t, 1, exp)

	m, exp = normalize(0.00123, 3)
	assert.InDelta(t, 1.23, m, 1e-9)
	assert.Equal(t, -3, exp)

	m, exp = normalize(0, 6)
	assert.Zero(t, m)
	assert.Zero(t, exp)
}

func TestAppendExponent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "e+05", string(appendExponent(nil, 'e', 5, 2)))
	assert.Equal(t, "E-005", string(appendExponent(nil, 'E', -5, 3)))
	assert.Equal(t, "e+123", string(appendExponent(nil, 'e', 123, 2)))
}

func TestAppendGeneralCarry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1e+06", string(appendGeneral(nil, 999999.5, 6, 'e', 2, false)))
	assert.Equal(t, "99999.5", string(appendGeneral(nil, 99999.5, 6, 'e', 2, false)))
	assert.Equal(t, "10.", string(appendGeneral(nil, 9.96875, 2, 'e', 2, true)))
}

func TestTrimZeros(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in    string
		start int
		want  string
	}{
		"fraction":   {in: "1.2300", want: "1.23"},
		"all zeros":  {in: "5.000", want: "5"},
		"no point":   {in: "100", want: "100"},
		"with start": {in: "-1.50", start: 1, want: "-1.5"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(trimZeros([]byte(tt.in), tt.start)))
		})
	}
}

func TestAddress(t *testing.T) {
	t.Parallel()

	x := 1
	tests := map[string]struct {
		v      any
		want   uintptr
		wantOK bool
	}{
		"nil":            {v: nil},
		"uintptr":        {v: uintptr(0x10), want: 0x10, wantOK: true},
		"zero uintptr":   {v: uintptr(0)},
		"tagged":         {v: Pointer(uintptr(7)), want: 7, wantOK: true},
		"tagged nil":     {v: Pointer(nil)},
		"nil pointer":    {v: (*int)(nil)},
		"pointer":        {v: &x, want: uintptr(unsafe.Pointer(&x)), wantOK: true},
		"unsafe pointer": {v: unsafe.Pointer(&x), want: uintptr(unsafe.Pointer(&x)), wantOK: true},
		"empty string":   {v: ""},
		"integer":        {v: 5, want: 5, wantOK: true},
		"unsigned":       {v: uint16(9), want: 9, wantOK: true},
		"nil slice":      {v: []byte(nil)},
		"struct":         {v: struct{}{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := address(tt.v)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
