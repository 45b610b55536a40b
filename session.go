package formatf

import (
	"io"
)

type phase uint8

const (
	phaseRoot phase = iota
	phaseLead
	phasePrefix
	phaseZeros
	phaseBody
	phaseText
	phaseTrail
	phaseDone
)

// maxNumber fits the widest fixed-notation double: 309 integer digits, the
// point and 15 decimals.
const maxNumber = 328

// renderState is the working set of the directive being emitted. The field is
// lead spaces, prefix, zeros, body, text, then trail spaces.
type renderState struct {
	lead     int
	prefix   []byte
	zeros    int
	body     []byte
	text     textReader
	hasText  bool
	limit    int // remaining text code points, negative for no limit
	leftText bool
	width    int
	emitted  int
	trail    int
}

// Session is one formatting pass. It produces the output one code point at a
// time and keeps all state between calls, so any of the cursor methods may be
// mixed and resumed. A Session is not safe for concurrent use.
type Session struct {
	engine
	phase   phase
	rs      renderState
	count   int
	err     error
	atom    [6]byte
	atomLen int
	pending rune // code point encoded in atom
	pfx     [4]byte
	char    [1]rune
	scratch [maxNumber]byte
}

func newSession(cfg *config, format textReader, wide bool, src ArgumentSource) *Session {
	if src == nil {
		src = Args()
	}
	return &Session{engine: engine{cfg: cfg, format: format, wide: wide, args: src}}
}

// get returns the next output code point and counts it.
func (s *Session) get() (rune, bool) {
	r, ok := s.next()
	if ok {
		s.count++
	}
	return r, ok
}

func (s *Session) next() (rune, bool) {
	rs := &s.rs
	for {
		switch s.phase {
		case phaseRoot:
			r, err := s.format.next()
			if err == io.EOF {
				s.phase = phaseDone
				return 0, false
			}
			if err != nil {
				s.fail(err)
				return 0, false
			}
			if r != '%' {
				return r, true
			}
			if r, ok := s.begin(); ok {
				return r, true
			}
		case phaseLead:
			if rs.lead > 0 {
				rs.lead--
				return ' ', true
			}
			s.phase = phasePrefix
		case phasePrefix:
			if len(rs.prefix) > 0 {
				c := rs.prefix[0]
				rs.prefix = rs.prefix[1:]
				return rune(c), true
			}
			s.phase = phaseZeros
		case phaseZeros:
			if rs.zeros > 0 {
				rs.zeros--
				return '0', true
			}
			s.phase = phaseBody
		case phaseBody:
			if len(rs.body) > 0 {
				c := rs.body[0]
				rs.body = rs.body[1:]
				return rune(c), true
			}
			s.phase = phaseText
		case phaseText:
			if rs.hasText && rs.limit != 0 {
				r, err := rs.text.next()
				if err == nil {
					rs.limit--
					rs.emitted++
					return r, true
				}
				if err != io.EOF {
					s.fail(err)
					return 0, false
				}
			}
			if rs.leftText {
				rs.trail = rs.width - rs.emitted
			}
			s.phase = phaseTrail
		case phaseTrail:
			if rs.trail > 0 {
				rs.trail--
				return ' ', true
			}
			s.phase = phaseRoot
		default:
			return 0, false
		}
	}
}

// begin handles a '%' read from the format. It returns the first code point
// of the directive's output when there is one; otherwise the phase tells the
// caller how to go on.
func (s *Session) begin() (rune, bool) {
	at := s.format.pos
	fs, err := s.directive()
	if err == errBadDirective {
		if s.cfg.abort {
			s.fail(invalid(fs, at-1))
			return 0, false
		}
		s.cfg.log.Debug().
			Str("verb", string(fs.conv)).
			Int("offset", at-1).
			Msg("malformed directive emitted literally")
		s.format.pos = at
		return '%', true
	}
	if err != nil {
		s.fail(err)
		return 0, false
	}

	s.rs = renderState{}
	switch fs.conv {
	case '%':
		return '%', true
	case 'd', 'i':
		s.renderSigned(fs)
	case 'u':
		s.renderUnsigned(fs, 10)
	case 'o':
		s.renderUnsigned(fs, 8)
	case 'x', 'X':
		s.renderUnsigned(fs, 16)
	case 'b':
		s.renderUnsigned(fs, 2)
	case 'p':
		s.renderPointer(fs)
	case 'f', 'e', 'E', 'g', 'G':
		s.renderFloat(fs)
	case 'c':
		s.renderChar(fs)
	case 's', 'S', 't', 'w':
		s.renderText(fs)
	case 'n':
		s.storeCount(fs)
	}
	return 0, false
}

func (s *Session) fail(err error) {
	s.cfg.log.Warn().Err(err).Int("emitted", s.count).Msg("formatting stopped")
	s.err = err
	s.phase = phaseDone
}

// layoutNumber places a numeric field. Leftover width goes after the field
// with '-', between prefix and body with '0', and before the field otherwise.
func (s *Session) layoutNumber(fs formatSpec, prefix []byte, zeros int, body []byte) {
	s.rs = renderState{prefix: prefix, zeros: zeros, body: body}
	if pad := fs.width - len(prefix) - zeros - len(body); pad > 0 {
		switch {
		case fs.has(flagMinus):
			s.rs.trail = pad
		case fs.has(flagZero):
			s.rs.zeros += pad
		default:
			s.rs.lead = pad
		}
	}
	s.phase = phaseLead
}

// layoutText places at most limit code points of t (all of them when limit is
// negative). Right-justified text is counted ahead on a copy of the reader.
func (s *Session) layoutText(fs formatSpec, t textReader, limit int) {
	s.rs = renderState{text: t, hasText: true, limit: limit}
	switch {
	case fs.has(flagMinus):
		s.rs.leftText = true
		s.rs.width = fs.width
	case fs.width > 0:
		probe := t
		n := 0
		for limit < 0 || n < limit {
			_, err := probe.next()
			if err == io.EOF {
				break
			}
			if err != nil {
				s.fail(err)
				return
			}
			n++
		}
		s.rs.lead = fs.width - n
	}
	s.phase = phaseLead
}

func (s *Session) sign(fs formatSpec, negative bool) []byte {
	p := s.pfx[:0]
	switch {
	case negative:
		p = append(p, '-')
	case fs.has(flagPlus):
		p = append(p, '+')
	case fs.has(flagSpace):
		p = append(p, ' ')
	}
	return p
}
