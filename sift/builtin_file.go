// builtin_file.go
//
// File ports: the I/O primitives an embedding host can add to the core table.
//
//	(open-input-file path)      -> port         ; read-only
//	(open-output-file path)     -> port         ; append, create if missing
//	(close-input-port p)        -> #t | #f      ; #f when p is not a port
//	(close-output-port p)       -> #t | #f
//	(read p)                    -> value | #f   ; first expression of the next line, #f at end of file
//	(write obj p)               -> #t           ; writes obj's rendering
//	(read-contents path)        -> string       ; whole file
//
// Conventions:
//   - failing to open a file is an IOError; wrong operand kinds are TypeMismatch
//   - closing twice is harmless
//   - output is buffered and flushed on close
package sift

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Port is an open file handle. Ports compare by identity.
type Port struct {
	Path string

	f      *os.File
	rb     *bufio.Reader // nil for output ports
	wb     *bufio.Writer // nil for input ports
	closed bool
}

// Close flushes pending output and closes the file. Closing twice is a no-op.
func (p *Port) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	var flushErr error
	if p.wb != nil {
		flushErr = p.wb.Flush()
	}
	if err := p.f.Close(); err != nil {
		return err
	}
	return flushErr
}

// readLine returns the next line without its line terminator. ok is false at
// end of file.
func (p *Port) readLine() (line string, ok bool, err error) {
	s, err := p.rb.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if s == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true, nil
}

// PortVal wraps *Port into a Value (Tag=VTPort).
func PortVal(p *Port) Value { return Value{Tag: VTPort, Data: p} }

// RegisterFileBuiltins installs the file port primitives into ip.Global.
func RegisterFileBuiltins(ip *Interpreter) {
	openFile := func(path string, write bool) (*Port, error) {
		flag := os.O_RDONLY
		if write {
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		}
		f, err := os.OpenFile(path, flag, 0o644)
		if err != nil {
			return nil, ioErr("Could not open file %s", path)
		}
		p := &Port{Path: path, f: f}
		if write {
			p.wb = bufio.NewWriter(f)
		} else {
			p.rb = bufio.NewReader(f)
		}
		return p, nil
	}

	opener := func(write bool) NativeFunc {
		return func(args []Value) (Value, error) {
			path, err := asString(args[0])
			if err != nil {
				return Null, err
			}
			p, err := openFile(path, write)
			if err != nil {
				return Null, err
			}
			return PortVal(p), nil
		}
	}
	ip.RegisterNative("open-input-file", 1, opener(false))
	ip.RegisterNative("open-output-file", 1, opener(true))

	closer := func(args []Value) (Value, error) {
		if args[0].Tag != VTPort {
			return Bool(false), nil
		}
		if err := args[0].Data.(*Port).Close(); err != nil {
			return Null, ioErr("%v", err)
		}
		return Bool(true), nil
	}
	ip.RegisterNative("close-input-port", 1, closer)
	ip.RegisterNative("close-output-port", 1, closer)

	ip.RegisterNative("read", 1, func(args []Value) (Value, error) {
		p, err := asPort(args[0], true)
		if err != nil {
			return Null, err
		}
		line, ok, err := p.readLine()
		if err != nil {
			return Null, ioErr("%v", err)
		}
		if !ok {
			return Bool(false), nil
		}
		v, err := NewParser(line).Next()
		if errors.Is(err, io.EOF) {
			return Bool(false), nil
		}
		return v, err
	})

	ip.RegisterNative("write", 2, func(args []Value) (Value, error) {
		p, err := asPort(args[1], false)
		if err != nil {
			return Null, err
		}
		if _, err := p.wb.WriteString(FormatValue(args[0])); err != nil {
			return Null, ioErr("%v", err)
		}
		return Bool(true), nil
	})

	ip.RegisterNative("read-contents", 1, func(args []Value) (Value, error) {
		path, err := asString(args[0])
		if err != nil {
			return Null, err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return Null, ioErr("Could not open file %s", path)
		}
		return Str(string(b)), nil
	})
}

// asPort asserts v is an open port of the wanted direction.
func asPort(v Value, input bool) (*Port, error) {
	want := "output port"
	if input {
		want = "input port"
	}
	if v.Tag != VTPort {
		return nil, typeErr(want, v)
	}
	p := v.Data.(*Port)
	if (input && p.rb == nil) || (!input && p.wb == nil) {
		return nil, typeErr(want, v)
	}
	if p.closed {
		return nil, ioErr("port %s is closed", p.Path)
	}
	return p, nil
}
