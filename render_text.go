package formatf

var unknownText = []byte("(?)")

func (s *Session) renderChar(fs formatSpec) {
	s.char[0] = rune(s.args.Int())
	s.layoutText(fs, wideText(s.char[:]), 1)
}

func (s *Session) renderText(fs formatSpec) {
	limit := -1
	if p, ok := fs.precision(); ok {
		limit = p
	}
	s.layoutText(fs, s.resolveText(fs.conv), limit)
}

// resolveText picks the reader for a text argument. Tagged slots decide by
// their stored tag; untagged values by their Go type.
func (s *Session) resolveText(conv rune) textReader {
	v := s.args.Pointer()
	switch s.args.Tag() {
	case TagNone, TagNarrowText, TagWideText, TagManagedText, TagManagedWideText:
		return s.dynamicText(v, conv)
	case TagManagedObject:
		if v == nil {
			return bytesText(nilText, nil)
		}
		if conv == 'S' {
			return narrowText(s.cfg.objectText(v), nil)
		}
	}
	return bytesText(unknownText, nil)
}

func (s *Session) dynamicText(v any, conv rune) textReader {
	switch x := v.(type) {
	case nil:
		return bytesText(nilText, nil)
	case Arg:
		if x.tag == TagManagedObject && conv != 'S' {
			return bytesText(unknownText, nil)
		}
		return s.dynamicText(x.p, conv)
	case string:
		return narrowText(x, s.cfg.cm)
	case *string:
		if x == nil {
			return bytesText(nilText, nil)
		}
		return narrowText(*x, s.cfg.cm)
	case []byte:
		if x == nil {
			return bytesText(nilText, nil)
		}
		return bytesText(x, s.cfg.cm)
	case []rune:
		if x == nil {
			return bytesText(nilText, nil)
		}
		return wideText(x)
	case Managed:
		return narrowText(x.ManagedString(), nil)
	case ManagedWide:
		return wideText(x.ManagedWideString())
	}
	if conv == 'S' {
		return narrowText(s.cfg.objectText(v), nil)
	}
	return bytesText(unknownText, nil)
}

// storeCount writes the number of code points emitted so far through the
// argument pointer. The 'h' modifier truncates the count to 16 bits.
func (s *Session) storeCount(fs formatSpec) {
	n := s.count
	if fs.has(flagShort) {
		n = int(int16(n))
	}
	p := s.args.Pointer()
	if a, ok := p.(Arg); ok {
		p = a.p
	}
	switch x := p.(type) {
	case *int:
		if x != nil {
			*x = n
		}
	case *int16:
		if x != nil {
			*x = int16(n)
		}
	case *int32:
		if x != nil {
			*x = int32(n)
		}
	case *int64:
		if x != nil {
			*x = int64(n)
		}
	}
	s.phase = phaseRoot
}
