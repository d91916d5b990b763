package sift

import "unicode/utf8"

// Scanner walks a source string one Unicode scalar at a time. It knows
// nothing about tokens; the Lexer drives it.
type Scanner struct {
	src  string
	cur  int // byte offset of the next rune
	line int // 1-based
	col  int // 1-based column of the next rune
}

// Pos is a saved scanner position.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// AtEnd reports whether all input has been consumed.
func (s *Scanner) AtEnd() bool { return s.cur >= len(s.src) }

// Pos returns the position of the next rune.
func (s *Scanner) Pos() Pos { return Pos{Offset: s.cur, Line: s.line, Col: s.col} }

// Peek returns the next rune without consuming it, or 0 at end of input.
func (s *Scanner) Peek() rune {
	if s.AtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.cur:])
	return r
}

// Advance consumes and returns the next rune (0 at end of input).
func (s *Scanner) Advance() rune {
	if s.AtEnd() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s.src[s.cur:])
	s.cur += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

// Match consumes the next rune if it equals want.
func (s *Scanner) Match(want rune) bool {
	if s.AtEnd() || s.Peek() != want {
		return false
	}
	s.Advance()
	return true
}

// SkipWhile consumes runes as long as pred holds.
func (s *Scanner) SkipWhile(pred func(rune) bool) {
	for !s.AtEnd() && pred(s.Peek()) {
		s.Advance()
	}
}

// Text returns the source between from and the current position.
func (s *Scanner) Text(from Pos) string { return s.src[from.Offset:s.cur] }
