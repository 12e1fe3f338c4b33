package entry

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token produced by Parse.
type Kind int

const (
	// Word is a run of non-whitespace text. It may embed balanced round
	// groups, as in "go(ing)".
	Word Kind = iota + 1
	// RoundGroup is a standalone parenthesized group, e.g. "(to sb.)".
	RoundGroup
	// AngleGroup is an annotation in angle brackets, e.g. "<coll.>".
	AngleGroup
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case RoundGroup:
		return "round"
	case AngleGroup:
		return "angle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one element of a parsed entry. Text is the verbatim source
// slice, brackets included.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

// Parse scans raw into typed tokens. Whitespace separates tokens except
// inside an open group.
func Parse(raw string) ([]Token, error) {
	s := &scanner{src: raw}
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return s.tokens, nil
		}

		var err error
		switch c := s.src[s.pos]; c {
		case '<':
			err = s.scanAngle()
		case ')', '>':
			err = s.errorf(s.pos, "unexpected %q", c)
		default:
			err = s.scanSegment()
		}
		if err != nil {
			return nil, err
		}
	}
}

type scanner struct {
	src    string
	pos    int
	tokens []Token
}

func (s *scanner) errorf(offset int, format string, args ...any) error {
	return &ParseError{Input: s.src, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

// scanAngle consumes an angle group starting at s.pos.
func (s *scanner) scanAngle() error {
	start := s.pos
	end, err := s.matchGroup(start)
	if err != nil {
		return err
	}
	s.pos = end + 1
	s.tokens = append(s.tokens, Token{Kind: AngleGroup, Text: s.src[start:s.pos], Offset: start})
	return nil
}

// scanSegment consumes a word or round group starting at s.pos. The
// segment ends at whitespace or at an angle bracket outside any group.
func (s *scanner) scanSegment() error {
	start := s.pos
	firstGroupEnd := -1

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '<':
			s.emitSegment(start, firstGroupEnd)
			return nil
		case '(':
			end, err := s.matchGroup(s.pos)
			if err != nil {
				return err
			}
			if s.pos == start {
				firstGroupEnd = end
			}
			s.pos = end + 1
			continue
		case ')', '>':
			return s.errorf(s.pos, "unexpected %q", c)
		}

		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}

	s.emitSegment(start, firstGroupEnd)
	return nil
}

func (s *scanner) emitSegment(start, firstGroupEnd int) {
	kind := Word
	if firstGroupEnd == s.pos-1 {
		kind = RoundGroup
	}
	s.tokens = append(s.tokens, Token{Kind: kind, Text: s.src[start:s.pos], Offset: start})
}

// matchGroup returns the offset of the bracket closing the group opened at
// offset open. Round and angle brackets share one stack, so "(a <b) c>" is
// rejected as misnested.
func (s *scanner) matchGroup(open int) (int, error) {
	var stack []int
	for i := open; i < len(s.src); i++ {
		switch s.src[i] {
		case '(', '<':
			stack = append(stack, i)
		case ')', '>':
			top := stack[len(stack)-1]
			if closerOf(s.src[top]) != s.src[i] {
				return 0, s.errorf(i, "%q closes %q opened at offset %d", s.src[i], s.src[top], top)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	return 0, s.errorf(stack[len(stack)-1], "unclosed %q", s.src[stack[len(stack)-1]])
}

func closerOf(open byte) byte {
	if open == '(' {
		return ')'
	}
	return '>'
}
