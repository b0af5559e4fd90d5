package lzma

import "errors"

// ErrEndMarker is returned by Run when the compressed stream encodes an
// explicit end-of-stream match (distance eosDist). Such a marker is always
// rejected: streams end only through the LZMA2 end-of-stream control byte.
var ErrEndMarker = errors.New("lzma: malformed end-of-stream marker")

// Run decodes operations from rc into dc until dc reaches the limit set by
// the caller's most recent call to dc.SetLimit. It mirrors the LZMA
// literal/match/rep decode loop: an isMatch bit chooses between a literal
// and a match/rep branch, and within the match/rep branch a cascade of
// isRep/isRepG0/isRepG1/isRepG2 bits picks a simple match, a short rep, or
// one of the four most recent distances.
func Run(s *State, dc *Dict, rc *RangeDecoder) error {
	for dc.Position() < dc.Limit() {
		posState := uint32(dc.Position()) & posStateMask
		state2 := (s.state << pb) | posState

		b, err := rc.decodeBit(&s.isMatch[state2])
		if err != nil {
			return err
		}
		if b == 0 {
			if err := decodeLiteral(s, dc, rc); err != nil {
				return err
			}
			continue
		}

		b, err = rc.decodeBit(&s.isRep[s.state])
		if err != nil {
			return err
		}
		if b == 0 {
			if err := decodeMatch(s, dc, rc, posState); err != nil {
				return err
			}
			continue
		}
		if err := decodeRep(s, dc, rc, state2, posState); err != nil {
			return err
		}
	}
	return nil
}

func decodeLiteral(s *State, dc *Dict, rc *RangeDecoder) error {
	var prevByte byte
	if dc.Position() > 0 {
		b, err := dc.ByteAt(1)
		if err != nil {
			return err
		}
		prevByte = b
	}
	litState := litStateIndex(prevByte)

	var match byte
	if s.rep[0] != 0 || dc.Position() > 0 {
		b, err := dc.ByteAt(int(s.rep[0]) + 1)
		if err != nil {
			return err
		}
		match = b
	}

	sym, err := s.lit.decode(rc, s.state, match, litState)
	if err != nil {
		return err
	}
	if err := dc.PutLiteral(sym); err != nil {
		return err
	}
	s.afterLiteral()
	return nil
}

func decodeMatch(s *State, dc *Dict, rc *RangeDecoder, posState uint32) error {
	s.rep[3], s.rep[2], s.rep[1] = s.rep[2], s.rep[1], s.rep[0]
	s.afterMatch()

	n, err := s.len.decode(rc, posState)
	if err != nil {
		return err
	}
	dist, err := s.dist.decode(rc, n)
	if err != nil {
		return err
	}
	s.rep[0] = dist
	if dist == eosDist {
		return ErrEndMarker
	}
	return dc.CopyMatch(int(dist)+1, int(n)+minMatchLen)
}

func decodeRep(s *State, dc *Dict, rc *RangeDecoder, state2, posState uint32) error {
	b, err := rc.decodeBit(&s.isRepG0[s.state])
	if err != nil {
		return err
	}
	dist := s.rep[0]
	if b == 0 {
		b, err = rc.decodeBit(&s.isRepG0Long[state2])
		if err != nil {
			return err
		}
		if b == 0 {
			s.afterShortRep()
			return dc.CopyMatch(int(dist)+1, 1)
		}
	} else {
		b, err = rc.decodeBit(&s.isRepG1[s.state])
		if err != nil {
			return err
		}
		if b == 0 {
			dist = s.rep[1]
		} else {
			b, err = rc.decodeBit(&s.isRepG2[s.state])
			if err != nil {
				return err
			}
			if b == 0 {
				dist = s.rep[2]
			} else {
				dist = s.rep[3]
				s.rep[3] = s.rep[2]
			}
			s.rep[2] = s.rep[1]
		}
		s.rep[1] = s.rep[0]
		s.rep[0] = dist
	}

	n, err := s.repLen.decode(rc, posState)
	if err != nil {
		return err
	}
	s.afterRep()
	return dc.CopyMatch(int(dist)+1, int(n)+minMatchLen)
}
