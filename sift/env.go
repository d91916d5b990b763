package sift

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward. Use Define to bind in the current frame, Set to update an
// existing visible binding (nearest frame), and Lookup to retrieve.
//
// Frames are shared by pointer: a closure keeps the frame it was created in,
// and every closure created in the same frame sees the same bindings.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Parent returns the enclosing frame, or nil for the root.
func (e *Env) Parent() *Env { return e.parent }

// Define binds name to v in the current frame, shadowing any outer binding.
// It returns v.
func (e *Env) Define(name string, v Value) Value {
	e.table[name] = v
	return v
}

// Set updates the nearest existing binding of name to v and returns v. If
// no binding exists in any visible frame, Set fails with UnboundVariable (it
// does not implicitly define).
func (e *Env) Set(name string, v Value) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return v, nil
		}
	}
	return Null, unboundErr(name)
}

// Lookup retrieves the nearest visible binding for name.
func (e *Env) Lookup(name string) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, nil
		}
	}
	return Null, unboundErr(name)
}

// Extend returns a fresh child frame binding the formals in params to args.
//
// params is a proper list of symbols (fixed arity), a dotted list whose
// tail symbol collects the surplus arguments, or a bare symbol that collects
// all of them. Surplus arguments are bound as a fresh proper list. Too few
// arguments, or too many for a fixed arity, fail with ArityError.
func (e *Env) Extend(params Value, args []Value) (*Env, error) {
	formals, rest := ListToSlice(params)
	variadic := rest.Tag != VTNull
	if len(args) < len(formals) || (!variadic && len(args) > len(formals)) {
		return nil, arityErr(len(formals), variadic, args)
	}

	child := NewEnv(e)
	for i, f := range formals {
		if f.Tag != VTSymbol {
			return nil, typeErr("symbol", f)
		}
		child.table[f.Data.(string)] = args[i]
	}
	if variadic {
		if rest.Tag != VTSymbol {
			return nil, typeErr("symbol", rest)
		}
		child.table[rest.Data.(string)] = List(args[len(formals):]...)
	}
	return child, nil
}
