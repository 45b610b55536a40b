package utf8x

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		r    rune
		want int
	}{
		"ascii":      {r: 'a', want: 1},
		"two":        {r: 'é', want: 2},
		"three":      {r: '€', want: 3},
		"four":       {r: 0x1F600, want: 4},
		"surrogate":  {r: 0xD800, want: 3},
		"five":       {r: 0x200000, want: 5},
		"six":        {r: 0x4000000, want: 6},
		"max six":    {r: 0x7FFFFFFF, want: 6},
		"negative":   {r: -1, want: 3},
		"past rune":  {r: 0x110000, want: 4},
		"last three": {r: 0xFFFF, want: 3},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Size(tt.r))
			assert.Len(t, Append(nil, tt.r), tt.want)
		})
	}
}

func TestAppendMatchesStdlibForValidRunes(t *testing.T) {
	t.Parallel()
	for _, r := range []rune{0, 'A', 0x7FF, 0x800, '€', 0xFFFD, 0x10000, utf8.MaxRune} {
		assert.Equal(t, string(r), string(Append(nil, r)))
	}
}

func TestAppendExtendedForms(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []byte{0xED, 0xA0, 0x80}, Append(nil, 0xD800))
	assert.Equal(t, []byte{0xF4, 0x90, 0x80, 0x80}, Append(nil, 0x110000))
	assert.Equal(t, []byte{0xF8, 0x88, 0x80, 0x80, 0x80}, Append(nil, 0x200000))
	assert.Equal(t, []byte{0xFD, 0xBF, 0xBF, 0xBF, 0xBF, 0xBF}, Append(nil, 0x7FFFFFFF))
}

func TestAppendKeepsPrefix(t *testing.T) {
	t.Parallel()
	out := Append([]byte("x"), 'é')
	assert.Equal(t, "xé", string(out))
}
