// errors.go: the interpreter's error taxonomy and caret-snippet rendering.
//
// Every failure the core can report is an *Error. The Kind says which class
// of failure it is; Msg and Value carry the details. Parse errors also carry a
// 1-based Line/Col so hosts can render a snippet with WrapErrorWithSource:
//
//	PARSE ERROR at 2:1: expected ')'
//
//	   1 | (define x 1)
//	   2 | (f 1
//	     | ^
//
// Runtime errors have no source position (Values do not remember where they
// were read from) and render as a single line.
package sift

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an *Error.
type ErrorKind int

const (
	ParseError      ErrorKind = iota // malformed token stream
	UnboundVariable                  // lookup or set! of an unbound symbol
	ArityError                       // wrong argument count
	TypeMismatch                     // operand of the wrong kind
	BadSpecialForm                   // special form used with the wrong shape
	NotAFunction                     // application head is not callable
	ArithmeticError                  // division by zero, integer overflow
	ResourceLimit                    // evaluation nested deeper than allowed
	IOError                          // failure reported by a port primitive
)

var kindNames = [...]string{
	ParseError:      "ParseError",
	UnboundVariable: "UnboundVariable",
	ArityError:      "ArityError",
	TypeMismatch:    "TypeMismatch",
	BadSpecialForm:  "BadSpecialForm",
	NotAFunction:    "NotAFunction",
	ArithmeticError: "ArithmeticError",
	ResourceLimit:   "ResourceLimit",
	IOError:         "IOError",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single error type returned by the lexer, parser, environment
// and evaluator.
//
// Fields:
//   - Kind       failure class.
//   - Msg        human-readable message.
//   - Value      offending value or form, when there is one.
//   - Line, Col  1-based source position (parse errors only; 0 if unknown).
//   - Incomplete set on parse errors caused by running out of input inside
//     an unfinished construct. REPLs use it to keep reading lines.
type Error struct {
	Kind       ErrorKind
	Msg        string
	Value      Value
	Line       int
	Col        int
	Incomplete bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case ParseError:
		if e.Line > 0 {
			return fmt.Sprintf("Parsing error at %d:%d: %s", e.Line, e.Col, e.Msg)
		}
		return "Parsing error: " + e.Msg
	case UnboundVariable:
		return "Unbound variable: " + FormatValue(e.Value)
	case NotAFunction:
		return "Not a function: " + FormatValue(e.Value)
	case TypeMismatch:
		return fmt.Sprintf("Invalid type: expected %s, found %s", e.Msg, FormatValue(e.Value))
	case BadSpecialForm:
		return fmt.Sprintf("%s: %s", e.Msg, FormatValue(e.Value))
	default:
		return e.Msg
	}
}

// IsKind reports whether err (or an error it wraps) is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsIncomplete reports whether err is a parse error caused by input ending
// inside an unfinished list, string or quote.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ParseError && e.Incomplete
}

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src when err is a positioned parse error. Other errors are returned as-is.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (file path,
// "<repl>") shown in the header.
func WrapErrorWithName(err error, srcName, src string) error {
	var e *Error
	if !errors.As(err, &e) || e.Kind != ParseError || e.Line == 0 {
		return err
	}
	return &snippetError{err: e, text: prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Line, e.Col, e.Msg)}
}

//// END_OF_PUBLIC

// snippetError keeps the original *Error reachable through errors.As.
type snippetError struct {
	err  *Error
	text string
}

func (s *snippetError) Error() string { return s.text }
func (s *snippetError) Unwrap() error { return s.err }

// prettyErrorStringLabeled builds a snippet with a header and a caret, showing
// at most one line of context on either side. Coordinates are clamped.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// ---- constructors used across the package ----

func parseErrAt(line, col int, format string, args ...any) *Error {
	return &Error{Kind: ParseError, Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}

func unboundErr(name string) *Error {
	return &Error{Kind: UnboundVariable, Value: Sym(name)}
}

func arityErr(expected int, atLeast bool, got []Value) *Error {
	want := fmt.Sprintf("%d", expected)
	if atLeast {
		want = "at least " + want
	}
	parts := make([]string, len(got))
	for i, v := range got {
		parts[i] = FormatValue(v)
	}
	return &Error{
		Kind:  ArityError,
		Msg:   fmt.Sprintf("Expected %s args: found values %s", want, strings.Join(parts, " ")),
		Value: List(got...),
	}
}

func typeErr(expected string, found Value) *Error {
	return &Error{Kind: TypeMismatch, Msg: expected, Value: found}
}

func badFormErr(msg string, form Value) *Error {
	return &Error{Kind: BadSpecialForm, Msg: msg, Value: form}
}

func notFunctionErr(v Value) *Error {
	return &Error{Kind: NotAFunction, Value: v}
}

func arithErr(format string, args ...any) *Error {
	return &Error{Kind: ArithmeticError, Msg: fmt.Sprintf(format, args...)}
}

func ioErr(format string, args ...any) *Error {
	return &Error{Kind: IOError, Msg: fmt.Sprintf(format, args...)}
}
