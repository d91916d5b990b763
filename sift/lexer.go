package sift

import (
	"fmt"
	"strconv"
	"unicode"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota

	LPAREN // "("
	RPAREN // ")"
	QUOTE  // "'"
	DOT    // "."

	BOOLEAN // #t / #f
	SYMBOL
	INTEGER
	STRING
)

var tokenNames = [...]string{
	EOF:     "end of input",
	LPAREN:  "'('",
	RPAREN:  "')'",
	QUOTE:   "quote",
	DOT:     "'.'",
	BOOLEAN: "boolean",
	SYMBOL:  "symbol",
	INTEGER: "integer",
	STRING:  "string",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token with an optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string // raw text slice
	Literal any    // bool, int64 or string for literal tokens
	Line    int
	Col     int
}

// Lexer turns source text into tokens with one token of lookahead.
type Lexer struct {
	sc     *Scanner
	peeked *Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{sc: NewScanner(src)}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next consumes and returns the next token. After the input is exhausted
// it keeps returning EOF.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

// Scan lexes the whole input, including the trailing EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Type == EOF {
			return out, nil
		}
	}
}

//// END_OF_PUBLIC

func isSymbolPunct(r rune) bool {
	switch r {
	case '!', '$', '%', '&', '|', '*',
		'+', '-', '/', ':', '<', '=',
		'?', '>', '@', '^', '_', '~',
		'#':
		return true
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isSymbolStart(r rune) bool { return unicode.IsLetter(r) || isSymbolPunct(r) }

func isSymbolRest(r rune) bool { return isSymbolStart(r) || isDigit(r) }

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// skipBlank skips whitespace and ';' line comments.
func (l *Lexer) skipBlank() {
	for {
		l.sc.SkipWhile(isWhitespace)
		if l.sc.Peek() != ';' {
			return
		}
		l.sc.SkipWhile(func(r rune) bool { return r != '\n' })
	}
}

func (l *Lexer) scan() (Token, error) {
	l.skipBlank()
	start := l.sc.Pos()
	mk := func(tt TokenType, lit any) Token {
		return Token{Type: tt, Lexeme: l.sc.Text(start), Literal: lit, Line: start.Line, Col: start.Col}
	}
	if l.sc.AtEnd() {
		return mk(EOF, nil), nil
	}

	c := l.sc.Advance()
	switch {
	case c == '(':
		return mk(LPAREN, nil), nil
	case c == ')':
		return mk(RPAREN, nil), nil
	case c == '\'':
		return mk(QUOTE, nil), nil
	case c == '.':
		return mk(DOT, nil), nil

	case c == '"':
		content := l.sc.Pos()
		l.sc.SkipWhile(func(r rune) bool { return r != '"' })
		text := l.sc.Text(content)
		if !l.sc.Match('"') {
			e := parseErrAt(start.Line, start.Col, "expected a closing '\"'")
			e.Incomplete = true
			return Token{}, e
		}
		return mk(STRING, text), nil

	case isSymbolStart(c):
		l.sc.SkipWhile(isSymbolRest)
		switch name := l.sc.Text(start); name {
		case "#t":
			return mk(BOOLEAN, true), nil
		case "#f":
			return mk(BOOLEAN, false), nil
		default:
			return mk(SYMBOL, name), nil
		}

	case isDigit(c):
		l.sc.SkipWhile(isDigit)
		digits := l.sc.Text(start)
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return Token{}, parseErrAt(start.Line, start.Col, "integer literal out of range: %s", digits)
		}
		return mk(INTEGER, n), nil
	}

	return Token{}, parseErrAt(start.Line, start.Col, "unexpected character %q", c)
}
