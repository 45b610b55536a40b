// Package formatf interprets printf-style format strings lazily.
//
// A [Session] produces its output one code point at a time, pulling each
// argument from an [ArgumentSource] only when the directive that needs it is
// reached. Nothing is buffered beyond the directive being rendered, so the
// output can be counted, measured, or written into fixed buffers in pieces
// without ever materializing the whole string.
//
//	s := formatf.New("%-8s|%6.2f|%#x", "total", 12.5, 255)
//	out, err := s.ReadAll() // "total   | 12.50|0xff"
//
// # Directives
//
// A directive is '%' followed by flags, width, precision, a length modifier
// and a conversion:
//
//   - flags: ' ' '-' '+' '#' '0', each at most once
//   - width: digits or '*'
//   - precision: '.' then digits or '*'
//   - length: 'h', 'l' or 'L', doubled for 64-bit
//
// Conversions:
//
//   - d i: signed decimal
//   - u o x X b: unsigned decimal, octal, hex, binary
//   - c: one character
//   - s S t w: text; S delegates objects to [WithObjectText]
//   - p: pointer, "(nil)" for nil
//   - n: store the count of code points emitted so far
//   - f e E g G: fixed, exponential, general floating point
//   - %%: a literal '%'
//
// A malformed directive is emitted as a literal '%' and scanning resumes
// right after it, so "%y" renders as "%y". [WithAbortOnError] stops the
// session instead and records [ErrFormatInvalid].
//
// # Arguments
//
// [Args] wraps Go values and converts each to the type its directive asks
// for. [List] wraps tagged [Arg] slots and remembers the tag of the slot it
// consumed last, which decides how text and object arguments render.
//
// # Output
//
// [Session.Len] and [Session.Size] count code points and UTF-8 bytes.
// [Session.Fill] writes into a bounded buffer and never splits an encoded
// code point across calls; [Session.FillTerminated] also appends a NUL.
// [Session.WriteTo], [Session.Encode] and [Session.Runes] stream the rest.
//
// # Parse Mode
//
// [Types] and [Parser] report the argument type of each directive without
// consuming arguments. Every '*' yields a [TypeStar] result ahead of its
// directive:
//
//	for d := range formatf.Types("%d %s %*.2f") {
//		fmt.Println(d.Type) // int, char*, *, double
//	}
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrFormatInvalid]: malformed directive in abort mode
//   - [ErrInvalidEncoding]: narrow text is not valid UTF-8
//   - [ErrShortBuffer]: no room for the next code point or the terminator
package formatf
