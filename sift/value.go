package sift

// ValueTag enumerates all runtime kinds a Value may hold.
// The tag determines which Go type Value.Data holds.
type ValueTag int

const (
	VTNull    ValueTag = iota // empty list (no payload)
	VTSymbol                  // string
	VTNumber                  // int64
	VTString                  // string
	VTBool                    // bool
	VTPair                    // *Pair
	VTClosure                 // *Closure
	VTNative                  // *Native
	VTPort                    // *Port (file handle owned by the I/O builtins)
)

// Value is the universal runtime carrier: every datum the reader produces
// and every result the evaluator returns.
//
// Invariants:
//   - When Tag==VTNull, Data is nil.
//   - Pairs are never mutated after construction, so list structure is a
//     tree and cannot form cycles.
type Value struct {
	Tag  ValueTag
	Data any
}

// Pair is a cons cell.
type Pair struct {
	Car Value
	Cdr Value
}

// Closure is a user-defined procedure. Env is shared with the defining
// scope, never copied, so set! through any holder is visible to all.
type Closure struct {
	Params Value // proper list, dotted list, or a bare symbol
	Body   Value // source form of the body, for rendering
	Env    *Env

	expr Expr // body, classified once at lambda time
}

// NativeFunc is the calling convention for primitives: an arity-checked,
// already-evaluated argument slice in, one Value or an error out.
type NativeFunc func(args []Value) (Value, error)

// Native is a primitive implemented in Go. When Variadic is set, Arity is
// the minimum argument count.
type Native struct {
	Name     string
	Arity    int
	Variadic bool
	Fn       NativeFunc
}

// Null is the empty list.
var Null = Value{Tag: VTNull}

// Constructors. They never fail.
func Sym(name string) Value { return Value{Tag: VTSymbol, Data: name} }
func Num(n int64) Value     { return Value{Tag: VTNumber, Data: n} }
func Str(s string) Value    { return Value{Tag: VTString, Data: s} }
func Bool(b bool) Value     { return Value{Tag: VTBool, Data: b} }

// Cons builds a single pair.
func Cons(car, cdr Value) Value {
	return Value{Tag: VTPair, Data: &Pair{Car: car, Cdr: cdr}}
}

func FunVal(c *Closure) Value   { return Value{Tag: VTClosure, Data: c} }
func NativeVal(n *Native) Value { return Value{Tag: VTNative, Data: n} }

// List builds a proper list from xs.
func List(xs ...Value) Value { return DottedList(xs, Null) }

// DottedList builds a list of xs terminated by tail. With an empty xs the
// result is tail itself.
func DottedList(xs []Value, tail Value) Value {
	out := tail
	for i := len(xs) - 1; i >= 0; i-- {
		out = Cons(xs[i], out)
	}
	return out
}

// ListToSlice returns the elements of a (possibly dotted) list and its
// terminator: Null for a proper list, the dotted tail otherwise. A non-pair
// value yields no elements and itself as the terminator.
func ListToSlice(v Value) ([]Value, Value) {
	var out []Value
	for v.Tag == VTPair {
		p := v.Data.(*Pair)
		out = append(out, p.Car)
		v = p.Cdr
	}
	return out, v
}

// IsList reports whether v is a proper list (including the empty list).
func IsList(v Value) bool {
	_, tail := ListToSlice(v)
	return tail.Tag == VTNull
}

// Truthy reports whether v counts as true in a conditional. Only the
// boolean #f is false.
func Truthy(v Value) bool {
	return v.Tag != VTBool || v.Data.(bool)
}

// IsSymbol reports whether v is the symbol name.
func IsSymbol(v Value, name string) bool {
	return v.Tag == VTSymbol && v.Data.(string) == name
}

// Equal is structural equality. Symbols compare by name, pairs
// element-wise; procedures and ports compare by identity.
func Equal(a, b Value) bool {
	for {
		if a.Tag != b.Tag {
			return false
		}
		switch a.Tag {
		case VTNull:
			return true
		case VTSymbol, VTString:
			return a.Data.(string) == b.Data.(string)
		case VTNumber:
			return a.Data.(int64) == b.Data.(int64)
		case VTBool:
			return a.Data.(bool) == b.Data.(bool)
		case VTPair:
			pa, pb := a.Data.(*Pair), b.Data.(*Pair)
			if !Equal(pa.Car, pb.Car) {
				return false
			}
			a, b = pa.Cdr, pb.Cdr
		default:
			return a.Data == b.Data
		}
	}
}

// String renders v the way the REPL prints it.
func (v Value) String() string { return FormatValue(v) }
