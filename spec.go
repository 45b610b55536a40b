package formatf

// specFlag records what a directive has seen so far.
type specFlag uint16

const (
	flagPlus specFlag = 1 << iota
	flagMinus
	flagSpace
	flagHash
	flagZero
	flagsDone // no more flag characters accepted
	flagWidth
	flagZeroWidth
	flagDot
	flagPrec
	flagZeroPrec
	flagLenDone // no more width or precision accepted
	flagShort
	flagLong
	flagLongLong
)

const lengthMask = flagShort | flagLong | flagLongLong

var flagChars = map[rune]specFlag{
	' ': flagSpace,
	'-': flagMinus,
	'+': flagPlus,
	'#': flagHash,
	'0': flagZero,
}

type lengthClass uint8

const (
	lengthDefault lengthClass = iota
	lengthShort
	lengthLong
	lengthLongLong
)

// formatSpec is one parsed directive. It lives until the directive has been
// rendered.
type formatSpec struct {
	flags specFlag
	width int
	prec  int // negative when a '*' supplied a negative precision
	conv  rune
	stars int
}

func (f *formatSpec) has(b specFlag) bool { return f.flags&b != 0 }

func (f *formatSpec) length() lengthClass {
	switch {
	case f.has(flagLongLong):
		return lengthLongLong
	case f.has(flagLong):
		return lengthLong
	case f.has(flagShort):
		return lengthShort
	default:
		return lengthDefault
	}
}

// precision returns the explicit precision, if any.
func (f *formatSpec) precision() (int, bool) {
	if !f.has(flagPrec) || f.prec < 0 {
		return 0, false
	}
	return f.prec, true
}

func (f *formatSpec) setFlag(b specFlag) bool {
	if f.has(b) || f.has(flagsDone) {
		return false
	}
	f.flags |= b
	return true
}

func (f *formatSpec) setSizing(b specFlag) bool {
	if f.has(b) || f.has(flagLenDone) {
		return false
	}
	f.flags |= b | flagsDone
	return true
}

func (f *formatSpec) setLength(b specFlag) bool {
	if f.flags&lengthMask != 0 {
		return false
	}
	f.flags |= b | flagLenDone | flagsDone
	return true
}

func (f *formatSpec) setWidth(w int) {
	if w < 0 {
		f.flags |= flagMinus
		w = -w
	}
	if w == 0 {
		f.flags |= flagZeroWidth
	}
	f.width = w
}

func (f *formatSpec) setPrec(p int) {
	if p == 0 {
		f.flags |= flagZeroPrec
	}
	f.prec = p
}

const (
	charAllowed  = flagMinus | flagsDone | flagWidth | flagZeroWidth
	textAllowed  = flagMinus | flagsDone | flagWidth | flagZeroWidth | flagDot | flagPrec | flagZeroPrec
	countAllowed = flagShort | flagLenDone | flagsDone
)

// valid reports whether the flags seen are allowed for the conversion.
func (f *formatSpec) valid() bool {
	switch f.conv {
	case '%':
		return f.flags == 0
	case 'd', 'i', 'u', 'o', 'x', 'X', 'b', 'p', 'f', 'e', 'E', 'g', 'G':
		return true
	case 'c':
		return f.flags&^charAllowed == 0
	case 's', 'S', 't', 'w':
		return f.flags&^textAllowed == 0
	case 'n':
		return f.flags&^countAllowed == 0
	default:
		return false
	}
}
