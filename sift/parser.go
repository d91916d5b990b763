// parser.go: recursive-descent reader producing Value trees.
//
// Grammar:
//
//	expr  := atom | '(' list | "'" expr
//	list  := ')' | expr+ ')' | expr+ '.' expr ')'
//	atom  := SYMBOL | INTEGER | STRING | BOOLEAN
//
// The output is exactly the evaluator's input: a `'x` becomes the two-element
// list (quote x), a dotted tail becomes a non-Null Cdr.
//
// End of input is reported distinctly from malformed input: Next returns
// io.EOF when no expression starts before the end, and a ParseError marked
// Incomplete when the input ends inside a list or after a quote.
package sift

import (
	"errors"
	"io"
)

// Parser reads successive expressions from one source string.
type Parser struct {
	lex *Lexer
}

// NewParser creates a parser over src.
func NewParser(src string) *Parser {
	return &Parser{lex: NewLexer(src)}
}

// Next parses the next complete expression. It returns io.EOF when the
// remaining input holds no further expressions.
func (p *Parser) Next() (Value, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Null, err
	}
	if tok.Type == EOF {
		return Null, io.EOF
	}
	return p.expr(tok)
}

// ParseAll parses every expression in src.
func ParseAll(src string) ([]Value, error) {
	p := NewParser(src)
	var out []Value
	for {
		v, err := p.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// Parse parses the first expression in src. Input without any expression is
// a ParseError; anything after the first expression is ignored.
func Parse(src string) (Value, error) {
	v, err := NewParser(src).Next()
	if errors.Is(err, io.EOF) {
		return Null, &Error{Kind: ParseError, Msg: "empty input", Incomplete: true}
	}
	return v, err
}

//// END_OF_PUBLIC

// expr builds the expression starting at tok.
func (p *Parser) expr(tok Token) (Value, error) {
	switch tok.Type {
	case SYMBOL:
		return Sym(tok.Literal.(string)), nil
	case INTEGER:
		return Num(tok.Literal.(int64)), nil
	case STRING:
		return Str(tok.Literal.(string)), nil
	case BOOLEAN:
		return Bool(tok.Literal.(bool)), nil
	case LPAREN:
		return p.list(tok)
	case QUOTE:
		next, err := p.need("expected an expression after quote", tok)
		if err != nil {
			return Null, err
		}
		quoted, err := p.expr(next)
		if err != nil {
			return Null, err
		}
		return List(Sym("quote"), quoted), nil
	case EOF:
		return Null, p.incomplete("unexpected end of input", tok)
	}
	return Null, parseErrAt(tok.Line, tok.Col, "unexpected token %s", tok.Type)
}

// list parses the remainder of a list whose '(' was open.
func (p *Parser) list(open Token) (Value, error) {
	var items []Value
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return Null, err
		}
		switch tok.Type {
		case EOF:
			return Null, p.incomplete("expected ')'", open)
		case RPAREN:
			p.lex.Next()
			return List(items...), nil
		case DOT:
			p.lex.Next()
			if len(items) == 0 {
				return Null, parseErrAt(tok.Line, tok.Col, "expected an expression before '.'")
			}
			next, err := p.need("expected an expression after '.'", open)
			if err != nil {
				return Null, err
			}
			tail, err := p.expr(next)
			if err != nil {
				return Null, err
			}
			closing, err := p.lex.Next()
			if err != nil {
				return Null, err
			}
			switch closing.Type {
			case RPAREN:
				return DottedList(items, tail), nil
			case EOF:
				return Null, p.incomplete("expected ')'", open)
			}
			return Null, parseErrAt(closing.Line, closing.Col, "malformed dotted list")
		default:
			p.lex.Next()
			v, err := p.expr(tok)
			if err != nil {
				return Null, err
			}
			items = append(items, v)
		}
	}
}

// need consumes the next token, failing as Incomplete at end of input.
func (p *Parser) need(msg string, anchor Token) (Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Token{}, err
	}
	if tok.Type == EOF {
		return Token{}, p.incomplete(msg, anchor)
	}
	return tok, nil
}

func (p *Parser) incomplete(msg string, anchor Token) error {
	e := parseErrAt(anchor.Line, anchor.Col, "%s", msg)
	e.Incomplete = true
	return e
}
