package formatf

import (
	"math"
	"strconv"
)

const (
	defaultPrecision = 6
	maxPrecision     = 15
)

var pow10 = [maxPrecision + 1]float64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12, 1e13, 1e14, 1e15,
}

func (s *Session) renderFloat(fs formatSpec) {
	v := s.args.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		fs.flags &^= flagZero
		s.layoutNumber(fs, nil, 0, appendSpecial(s.scratch[:0], v))
		return
	}
	prec, ok := fs.precision()
	if !ok {
		prec = defaultPrecision
	}
	prec = min(prec, maxPrecision)
	alt := fs.has(flagHash)

	body := s.scratch[:0]
	switch fs.conv {
	case 'f':
		body = appendFixed(body, math.Abs(v), prec, alt)
	case 'e', 'E':
		body = appendExp(body, math.Abs(v), prec, byte(fs.conv), s.cfg.expDigits, alt)
	case 'g', 'G':
		body = appendGeneral(body, math.Abs(v), prec, byte(fs.conv)-'g'+'e', s.cfg.expDigits, alt)
	}
	s.layoutNumber(fs, s.sign(fs, v < 0), 0, body)
}

func appendSpecial(dst []byte, v float64) []byte {
	if math.Signbit(v) {
		dst = append(dst, '-')
	}
	if math.IsNaN(v) {
		return append(dst, "1.#NAN"...)
	}
	return append(dst, "1.#INF"...)
}

// appendFixed renders v >= 0 with prec decimals, rounding half away from
// zero. alt keeps the point when prec is 0.
func appendFixed(dst []byte, v float64, prec int, alt bool) []byte {
	v += 0.5 / pow10[prec]
	ip := math.Trunc(v)
	if ip < 1<<64 {
		dst = strconv.AppendUint(dst, uint64(ip), 10)
	} else {
		dst = strconv.AppendFloat(dst, ip, 'f', 0, 64)
	}
	if prec == 0 {
		if alt {
			dst = append(dst, '.')
		}
		return dst
	}
	dst = append(dst, '.')

	scale := pow10[prec]
	frac := uint64((v - ip) * scale)
	if frac >= uint64(scale) {
		frac = uint64(scale) - 1
	}
	var tmp [20]byte
	digits := strconv.AppendUint(tmp[:0], frac, 10)
	for i := len(digits); i < prec; i++ {
		dst = append(dst, '0')
	}
	return append(dst, digits...)
}

// normalize splits v >= 0 into a mantissa in [1,10) and a decimal exponent,
// accounting for the carry that rounding to prec decimals would cause.
func normalize(v float64, prec int) (float64, int) {
	if v == 0 {
		return 0, 0
	}
	exp := 0
	for v >= 10 {
		v /= 10
		exp++
	}
	for v < 1 {
		v *= 10
		exp--
	}
	if v+0.5/pow10[prec] >= 10 {
		v /= 10
		exp++
	}
	return v, exp
}

func appendExp(dst []byte, v float64, prec int, e byte, expDigits int, alt bool) []byte {
	m, exp := normalize(v, prec)
	dst = appendFixed(dst, m, prec, alt)
	return appendExponent(dst, e, exp, expDigits)
}

func appendExponent(dst []byte, e byte, exp, digits int) []byte {
	dst = append(dst, e)
	if exp < 0 {
		dst = append(dst, '-')
		exp = -exp
	} else {
		dst = append(dst, '+')
	}
	var tmp [8]byte
	d := strconv.AppendInt(tmp[:0], int64(exp), 10)
	for i := len(d); i < digits; i++ {
		dst = append(dst, '0')
	}
	return append(dst, d...)
}

// appendGeneral picks fixed or exponential notation by the exponent of v
// rounded to prec significant digits. Trailing fractional zeros are dropped
// unless alt is set.
func appendGeneral(dst []byte, v float64, prec int, e byte, expDigits int, alt bool) []byte {
	if prec == 0 {
		prec = 1
	}
	m, exp := normalize(v, prec-1)
	if exp >= -4 && exp < prec {
		// Rounding v in place can carry past the exponent normalize found.
		if v+0.5/pow10[min(prec-1-exp, maxPrecision)] >= math.Pow10(exp+1) {
			m, exp = 1, exp+1
		}
	}
	start := len(dst)
	if exp >= -4 && exp < prec {
		dst = appendFixed(dst, v, min(prec-1-exp, maxPrecision), alt)
		if !alt {
			dst = trimZeros(dst, start)
		}
		return dst
	}
	dst = appendFixed(dst, m, prec-1, alt)
	if !alt {
		dst = trimZeros(dst, start)
	}
	return appendExponent(dst, e, exp, expDigits)
}

// trimZeros removes trailing zeros after the point in dst[start:], and the
// point itself when nothing follows it.
func trimZeros(dst []byte, start int) []byte {
	point := -1
	for i := start; i < len(dst); i++ {
		if dst[i] == '.' {
			point = i
			break
		}
	}
	if point < 0 {
		return dst
	}
	end := len(dst)
	for end > point+1 && dst[end-1] == '0' {
		end--
	}
	if end == point+1 {
		end = point
	}
	return dst[:end]
}
