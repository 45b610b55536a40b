package formatf

import "unsafe"

// ArgumentSource supplies directive arguments in order. Each call consumes
// one argument. The directive, not the stored value, decides which getter is
// used.
type ArgumentSource interface {
	// Float returns the next argument as a double.
	Float() float64
	// Int returns the next argument as a native C-style int. Directives
	// without a length modifier, %c and '*' use it.
	Int() int32
	// Short returns the next argument for the 'h' modifier.
	Short() int16
	// Long returns the next argument for the 'l' modifier.
	Long() int32
	// LongLong returns the next argument for the 'll' modifier.
	LongLong() int64
	// Pointer returns the next argument unconverted. %p, %n and the text
	// conversions use it.
	Pointer() any
	// Tag reports the stored tag of the argument consumed last. Sources that
	// do not store tags return TagNone.
	Tag() Tag
}

// Tag identifies the stored type of an [Arg].
type Tag uint8

const (
	TagNone Tag = iota
	TagChar
	TagWChar
	TagInt32
	TagUInt32
	TagInt64
	TagUInt64
	TagReal
	TagPointer
	TagNarrowText
	TagWideText
	TagManagedText
	TagManagedWideText
	TagManagedObject
)

var tagNames = [...]string{
	TagNone:            "none",
	TagChar:            "char",
	TagWChar:           "wchar",
	TagInt32:           "int32",
	TagUInt32:          "uint32",
	TagInt64:           "int64",
	TagUInt64:          "uint64",
	TagReal:            "real",
	TagPointer:         "pointer",
	TagNarrowText:      "text",
	TagWideText:        "wtext",
	TagManagedText:     "managed",
	TagManagedWideText: "wmanaged",
	TagManagedObject:   "object",
}

// String returns the tag name.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// ParseTag returns the tag with the given name.
func ParseTag(s string) (Tag, bool) {
	for i, name := range tagNames {
		if name == s {
			return Tag(i), true
		}
	}
	return TagNone, false
}

func (t Tag) integral() bool {
	return t >= TagChar && t <= TagUInt64
}

// Arg is one tagged argument slot.
type Arg struct {
	tag Tag
	i   int64
	f   float64
	p   any
}

// Tag returns the stored tag.
func (a Arg) Tag() Tag { return a.tag }

// Value returns the stored payload as a Go value.
func (a Arg) Value() any {
	switch a.tag {
	case TagNone:
		return nil
	case TagChar:
		return byte(a.i)
	case TagWChar:
		return rune(a.i)
	case TagInt32:
		return int32(a.i)
	case TagUInt32:
		return uint32(a.i)
	case TagInt64:
		return a.i
	case TagUInt64:
		return uint64(a.i)
	case TagReal:
		return a.f
	default:
		return a.p
	}
}

// Constructors for tagged slots.
func Char(c byte) Arg     { return Arg{tag: TagChar, i: int64(c)} }
func WChar(r rune) Arg    { return Arg{tag: TagWChar, i: int64(r)} }
func Int32(v int32) Arg   { return Arg{tag: TagInt32, i: int64(v)} }
func Uint32(v uint32) Arg { return Arg{tag: TagUInt32, i: int64(v)} }
func Int64(v int64) Arg   { return Arg{tag: TagInt64, i: v} }
func Uint64(v uint64) Arg { return Arg{tag: TagUInt64, i: int64(v)} }
func Real(v float64) Arg  { return Arg{tag: TagReal, f: v} }
func Pointer(p any) Arg   { return Arg{tag: TagPointer, p: p} }
func Text(s string) Arg   { return Arg{tag: TagNarrowText, p: s} }
func Bytes(b []byte) Arg  { return Arg{tag: TagNarrowText, p: b} }
func Wide(r []rune) Arg   { return Arg{tag: TagWideText, p: r} }
func Object(v any) Arg    { return Arg{tag: TagManagedObject, p: v} }

// ManagedText wraps a managed narrow string.
func ManagedText(m Managed) Arg { return Arg{tag: TagManagedText, p: m} }

// ManagedWideText wraps a managed wide string.
func ManagedWideText(m ManagedWide) Arg { return Arg{tag: TagManagedWideText, p: m} }

// ArgOf builds a tagged slot from a Go value, picking the tag from its type.
// Values with no better match become managed objects.
func ArgOf(v any) Arg {
	switch x := v.(type) {
	case nil:
		return Arg{}
	case Arg:
		return x
	case byte:
		return Char(x)
	case int32:
		return Int32(x)
	case int8:
		return Int32(int32(x))
	case int16:
		return Int32(int32(x))
	case uint16:
		return Uint32(uint32(x))
	case uint32:
		return Uint32(x)
	case int:
		return Int64(int64(x))
	case int64:
		return Int64(x)
	case uint:
		return Uint64(uint64(x))
	case uint64:
		return Uint64(x)
	case uintptr, unsafe.Pointer:
		return Pointer(x)
	case float32:
		return Real(float64(x))
	case float64:
		return Real(x)
	case bool:
		if x {
			return Int32(1)
		}
		return Int32(0)
	case string:
		return Text(x)
	case []byte:
		return Bytes(x)
	case []rune:
		return Wide(x)
	case Managed:
		return ManagedText(x)
	case ManagedWide:
		return ManagedWideText(x)
	default:
		return Object(x)
	}
}

func (a Arg) asInt() int64 {
	if a.tag == TagReal {
		return int64(a.f)
	}
	return a.i
}

func (a Arg) asFloat() float64 {
	switch {
	case a.tag == TagReal:
		return a.f
	case a.tag == TagUInt64:
		return float64(uint64(a.i))
	default:
		return float64(a.i)
	}
}

func (a Arg) asPointer() any {
	if a.p != nil || !a.tag.integral() {
		return a.p
	}
	return uintptr(a.i)
}

// ListArgs consumes a prebuilt slice of tagged slots strictly in order.
type ListArgs struct {
	slots []Arg
	pos   int
	last  Tag
}

// List returns an argument source over args.
func List(args ...Arg) *ListArgs {
	return &ListArgs{slots: args}
}

// Remaining reports how many slots have not been consumed.
func (l *ListArgs) Remaining() int { return len(l.slots) - l.pos }

func (l *ListArgs) take() Arg {
	if l.pos >= len(l.slots) {
		l.last = TagNone
		return Arg{}
	}
	a := l.slots[l.pos]
	l.pos++
	l.last = a.tag
	return a
}

func (l *ListArgs) Float() float64  { return l.take().asFloat() }
func (l *ListArgs) Int() int32      { return int32(l.take().asInt()) }
func (l *ListArgs) Short() int16    { return int16(l.take().asInt()) }
func (l *ListArgs) Long() int32     { return int32(l.take().asInt()) }
func (l *ListArgs) LongLong() int64 { return l.take().asInt() }
func (l *ListArgs) Pointer() any    { return l.take().asPointer() }
func (l *ListArgs) Tag() Tag        { return l.last }

// VarArgs consumes Go values on demand, converting each to the type the
// directive asks for.
type VarArgs struct {
	vals []any
	pos  int
}

// Args returns an argument source over vals.
func Args(vals ...any) *VarArgs {
	return &VarArgs{vals: vals}
}

// Remaining reports how many values have not been consumed.
func (v *VarArgs) Remaining() int { return len(v.vals) - v.pos }

func (v *VarArgs) take() any {
	if v.pos >= len(v.vals) {
		return nil
	}
	x := v.vals[v.pos]
	v.pos++
	return x
}

func (v *VarArgs) Float() float64  { return toFloat(v.take()) }
func (v *VarArgs) Int() int32      { return int32(toInt(v.take())) }
func (v *VarArgs) Short() int16    { return int16(toInt(v.take())) }
func (v *VarArgs) Long() int32     { return int32(toInt(v.take())) }
func (v *VarArgs) LongLong() int64 { return toInt(v.take()) }
func (v *VarArgs) Pointer() any    { return v.take() }
func (v *VarArgs) Tag() Tag        { return TagNone }

func toInt(x any) int64 {
	switch n := x.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case uintptr:
		return int64(n)
	case float32:
		return int64(n)
	case float64:
		return int64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case Arg:
		return n.asInt()
	default:
		return 0
	}
}

func toFloat(x any) float64 {
	switch n := x.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case uintptr:
		return float64(n)
	case Arg:
		return n.asFloat()
	default:
		return float64(toInt(x))
	}
}
