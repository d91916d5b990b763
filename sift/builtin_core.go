package sift

import "math"

// ---- core primitive table ------------------------------------------------

func registerCoreBuiltins(ip *Interpreter) {
	// Arithmetic reducers: fold left to right over one or more numbers.
	ip.RegisterVariadic("+", 1, reducer(addInt))
	ip.RegisterVariadic("-", 1, reducer(subInt))
	ip.RegisterVariadic("*", 1, reducer(mulInt))
	ip.RegisterVariadic("/", 1, reducer(divInt))
	ip.RegisterVariadic("mod", 1, reducer(modInt))

	// Binary comparisons.
	numCmp := map[string]func(a, b int64) bool{
		"=":  func(a, b int64) bool { return a == b },
		"<":  func(a, b int64) bool { return a < b },
		">":  func(a, b int64) bool { return a > b },
		"/=": func(a, b int64) bool { return a != b },
		">=": func(a, b int64) bool { return a >= b },
		"<=": func(a, b int64) bool { return a <= b },
	}
	for name, op := range numCmp {
		ip.RegisterNative(name, 2, binary(asNumber, op))
	}

	strCmp := map[string]func(a, b string) bool{
		"string=?":  func(a, b string) bool { return a == b },
		"string<?":  func(a, b string) bool { return a < b },
		"string>?":  func(a, b string) bool { return a > b },
		"string<=?": func(a, b string) bool { return a <= b },
		"string>=?": func(a, b string) bool { return a >= b },
	}
	for name, op := range strCmp {
		ip.RegisterNative(name, 2, binary(asString, op))
	}

	ip.RegisterNative("&&", 2, binary(asBool, func(a, b bool) bool { return a && b }))
	ip.RegisterNative("||", 2, binary(asBool, func(a, b bool) bool { return a || b }))

	// Lists.
	ip.RegisterNative("car", 1, func(args []Value) (Value, error) {
		if args[0].Tag != VTPair {
			return Null, typeErr("pair", args[0])
		}
		return args[0].Data.(*Pair).Car, nil
	})
	ip.RegisterNative("cdr", 1, func(args []Value) (Value, error) {
		if args[0].Tag != VTPair {
			return Null, typeErr("pair", args[0])
		}
		return args[0].Data.(*Pair).Cdr, nil
	})
	ip.RegisterNative("cons", 2, func(args []Value) (Value, error) {
		return Cons(args[0], args[1]), nil
	})

	// Equality. eq? and eqv? are the same structural test.
	equal := func(args []Value) (Value, error) {
		return Bool(Equal(args[0], args[1])), nil
	}
	ip.RegisterNative("eq?", 2, equal)
	ip.RegisterNative("eqv?", 2, equal)
}

// ---- helpers ---------------------------------------------------------------

// reducer lifts a checked binary integer operation to a left fold over one
// or more numeric arguments. A single argument is returned unchanged.
func reducer(op func(a, b int64) (int64, error)) NativeFunc {
	return func(args []Value) (Value, error) {
		acc, err := asNumber(args[0])
		if err != nil {
			return Null, err
		}
		for _, a := range args[1:] {
			n, err := asNumber(a)
			if err != nil {
				return Null, err
			}
			if acc, err = op(acc, n); err != nil {
				return Null, err
			}
		}
		return Num(acc), nil
	}
}

// binary lifts a typed two-argument predicate.
func binary[T any](conv func(Value) (T, error), op func(a, b T) bool) NativeFunc {
	return func(args []Value) (Value, error) {
		a, err := conv(args[0])
		if err != nil {
			return Null, err
		}
		b, err := conv(args[1])
		if err != nil {
			return Null, err
		}
		return Bool(op(a, b)), nil
	}
}

func asNumber(v Value) (int64, error) {
	if v.Tag != VTNumber {
		return 0, typeErr("number", v)
	}
	return v.Data.(int64), nil
}

func asString(v Value) (string, error) {
	if v.Tag != VTString {
		return "", typeErr("string", v)
	}
	return v.Data.(string), nil
}

func asBool(v Value) (bool, error) {
	if v.Tag != VTBool {
		return false, typeErr("boolean", v)
	}
	return v.Data.(bool), nil
}

// Checked int64 arithmetic. Overflow and division by zero fail with
// ArithmeticError instead of wrapping or panicking.

func addInt(a, b int64) (int64, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, arithErr("integer overflow in %d + %d", a, b)
	}
	return c, nil
}

func subInt(a, b int64) (int64, error) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, arithErr("integer overflow in %d - %d", a, b)
	}
	return c, nil
}

func mulInt(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, arithErr("integer overflow in %d * %d", a, b)
	}
	return c, nil
}

func divInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, arithErr("division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return 0, arithErr("integer overflow in %d / %d", a, b)
	}
	return a / b, nil
}

func modInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, arithErr("division by zero")
	}
	if b == -1 {
		return 0, nil
	}
	return a % b, nil
}
