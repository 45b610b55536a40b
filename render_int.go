package formatf

import (
	"reflect"
	"strconv"
	"unsafe"
)

// addressDigits is the hex digit count of a full pointer.
const addressDigits = int(2 * unsafe.Sizeof(uintptr(0)))

var nilText = []byte("(nil)")

func (s *Session) renderSigned(fs formatSpec) {
	var v int64
	switch fs.length() {
	case lengthShort:
		v = int64(s.args.Short())
	case lengthLong:
		v = int64(s.args.Long())
	case lengthLongLong:
		v = s.args.LongLong()
	default:
		v = int64(s.args.Int())
	}
	if v < 0 {
		s.renderInteger(fs, s.sign(fs, true), uint64(-(v+1))+1, 10)
		return
	}
	s.renderInteger(fs, s.sign(fs, false), uint64(v), 10)
}

func (s *Session) renderUnsigned(fs formatSpec, base int) {
	var v uint64
	switch fs.length() {
	case lengthShort:
		v = uint64(uint16(s.args.Short()))
	case lengthLong:
		v = uint64(uint32(s.args.Long()))
	case lengthLongLong:
		v = uint64(s.args.LongLong())
	default:
		v = uint64(uint32(s.args.Int()))
	}
	s.renderInteger(fs, s.sign(fs, false), v, base)
}

// renderInteger lays out v in base. Precision is the minimum digit count, and
// an alternate-form prefix counts toward it.
func (s *Session) renderInteger(fs formatSpec, prefix []byte, v uint64, base int) {
	digits := strconv.AppendUint(s.scratch[:0], v, base)
	if fs.conv == 'X' {
		upper(digits)
	}
	want, _ := fs.precision()
	if fs.has(flagHash) && v != 0 {
		switch base {
		case 8:
			prefix = append(prefix, '0')
			want--
		case 16:
			prefix = append(prefix, '0', byte(fs.conv))
			want -= 2
		}
	}
	s.layoutNumber(fs, prefix, max(want-len(digits), 0), digits)
}

func (s *Session) renderPointer(fs formatSpec) {
	addr, ok := address(s.args.Pointer())
	if !ok {
		fs.flags &^= flagZero
		s.layoutNumber(fs, nil, 0, nilText)
		return
	}
	digits := strconv.AppendUint(s.scratch[:0], uint64(addr), 16)
	zeros := addressDigits - len(digits)
	if p, ok := fs.precision(); ok && len(digits) < p-1 {
		zeros = p - 1 - len(digits)
	}
	s.layoutNumber(fs, append(s.pfx[:0], '0', 'x'), zeros, digits)
}

// address returns the numeric address of a pointer-like value. ok is false
// for nil and for values that have no address.
func address(v any) (addr uintptr, ok bool) {
	switch p := v.(type) {
	case nil:
		return 0, false
	case Arg:
		return address(p.asPointer())
	case uintptr:
		return p, p != 0
	case unsafe.Pointer:
		return uintptr(p), p != nil
	case string:
		if p == "" {
			return 0, false
		}
		return uintptr(unsafe.Pointer(unsafe.StringData(p))), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uintptr(rv.Int()), rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintptr(rv.Uint()), rv.Uint() != 0
	default:
		return 0, false
	}
}

func upper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 'a' + 'A'
		}
	}
}
