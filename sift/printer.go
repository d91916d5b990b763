// printer.go: textual rendering of Values.
//
// Rendering contract (what the REPL prints and `write` emits):
//
//	symbols        their name
//	numbers        decimal digits
//	booleans       #t / #f
//	strings        "raw text" (no escaping of embedded quotes)
//	empty list     ()
//	proper lists   (a b c)
//	dotted lists   (a b . tail)
//	closures       #<lambda (params)>
//	primitives     #<primitive name>
//	ports          #<port path>
//
// Rendering is deterministic, so parse → render → parse → render reaches a
// fixed point after the first step.
package sift

import (
	"strconv"
	"strings"
)

type out struct {
	b *strings.Builder
}

func (o *out) write(s string) { o.b.WriteString(s) }

// FormatValue renders v per the contract above.
func FormatValue(v Value) string {
	var b strings.Builder
	o := out{b: &b}
	writeValue(&o, v)
	return b.String()
}

func writeValue(o *out, v Value) {
	switch v.Tag {
	case VTNull:
		o.write("()")
	case VTSymbol:
		o.write(v.Data.(string))
	case VTNumber:
		o.write(strconv.FormatInt(v.Data.(int64), 10))
	case VTString:
		o.write(`"` + v.Data.(string) + `"`)
	case VTBool:
		if v.Data.(bool) {
			o.write("#t")
		} else {
			o.write("#f")
		}
	case VTPair:
		writeList(o, v)
	case VTClosure:
		o.write("#<lambda ")
		writeValue(o, v.Data.(*Closure).Params)
		o.write(">")
	case VTNative:
		o.write("#<primitive " + v.Data.(*Native).Name + ">")
	case VTPort:
		o.write("#<port " + v.Data.(*Port).Path + ">")
	default:
		o.write("#<unknown>")
	}
}

// writeList iterates the spine instead of recursing on Cdr so long lists do
// not grow the Go stack.
func writeList(o *out, v Value) {
	o.write("(")
	first := true
	for v.Tag == VTPair {
		p := v.Data.(*Pair)
		if !first {
			o.write(" ")
		}
		writeValue(o, p.Car)
		first = false
		v = p.Cdr
	}
	if v.Tag != VTNull {
		o.write(" . ")
		writeValue(o, v)
	}
	o.write(")")
}
