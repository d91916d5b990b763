// interpreter.go: PUBLIC API SURFACE for the Sift interpreter.
//
// OVERVIEW
// ========
// Source text flows through three stages:
//
//	text ──Lexer/Parser──▶ Value tree ──Compile──▶ Expr ──eval──▶ Value
//
// This file holds the exported entry points; the evaluator itself lives in
// interpreter_exec.go and the primitive table in builtin_core.go.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// There is one root environment per Interpreter, `Global`, populated once by
// NewInterpreter with the primitive table. Every closure call creates exactly
// one child frame of the closure's captured environment; `define` binds in
// the innermost frame, `set!` mutates the nearest existing binding.
//
// Evaluation is ordinary recursive Go function calls. There is no tail-call
// elimination, so deep source-level recursion grows the Go stack. Set
// MaxDepth (or WithMaxDepth) to turn runaway recursion into a ResourceLimit
// error; with MaxDepth == 0 the only limit is the Go runtime's own stack cap,
// which aborts the process.
//
// ERRORS
// ------
// Every method returns (Value, error); failures are *Error values (see
// errors.go). Nothing is retried or swallowed: hosts decide how to recover.
package sift

// Interpreter owns the global environment and evaluation settings.
// It is not safe for concurrent use.
type Interpreter struct {
	Global *Env

	// MaxDepth bounds nested evaluation; 0 means unlimited.
	MaxDepth int

	depth int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMaxDepth sets Interpreter.MaxDepth.
func WithMaxDepth(n int) Option {
	return func(ip *Interpreter) { ip.MaxDepth = n }
}

// NewInterpreter constructs an interpreter whose Global environment holds the
// core primitive table. File ports are not installed; see
// RegisterFileBuiltins.
func NewInterpreter(opts ...Option) *Interpreter {
	ip := &Interpreter{Global: NewEnv(nil)}
	for _, o := range opts {
		o(ip)
	}
	registerCoreBuiltins(ip)
	return ip
}

// Evaluate evaluates v in env with no depth limit.
func Evaluate(v Value, env *Env) (Value, error) {
	ip := &Interpreter{Global: env}
	return ip.eval(Compile(v), env)
}

// Eval evaluates v in Global.
func (ip *Interpreter) Eval(v Value) (Value, error) {
	return ip.eval(Compile(v), ip.Global)
}

// EvalIn evaluates v in the provided environment exactly as given.
func (ip *Interpreter) EvalIn(v Value, env *Env) (Value, error) {
	return ip.eval(Compile(v), env)
}

// EvalExpr evaluates an already classified expression in env.
func (ip *Interpreter) EvalExpr(e Expr, env *Env) (Value, error) {
	return ip.eval(e, env)
}

// EvalSource parses src and evaluates each expression in Global, in order,
// returning the value of the last one (Null for empty input). Parse errors
// come back with a caret snippet; evaluation stops at the first error.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	return ip.EvalSourceNamed("", src)
}

// EvalSourceNamed is EvalSource with a source name for error snippets.
func (ip *Interpreter) EvalSourceNamed(name, src string) (Value, error) {
	forms, err := ParseAll(src)
	if err != nil {
		return Null, WrapErrorWithName(err, name, src)
	}
	result := Null
	for _, f := range forms {
		if result, err = ip.Eval(f); err != nil {
			return Null, err
		}
	}
	return result, nil
}

// Apply applies a procedure Value to already evaluated arguments.
func (ip *Interpreter) Apply(fn Value, args []Value) (Value, error) {
	return ip.apply(fn, args)
}

// RegisterNative binds a fixed-arity primitive in Global.
func (ip *Interpreter) RegisterNative(name string, arity int, fn NativeFunc) {
	ip.Global.Define(name, NativeVal(&Native{Name: name, Arity: arity, Fn: fn}))
}

// RegisterVariadic binds a primitive that accepts min or more arguments.
func (ip *Interpreter) RegisterVariadic(name string, min int, fn NativeFunc) {
	ip.Global.Define(name, NativeVal(&Native{Name: name, Arity: min, Variadic: true, Fn: fn}))
}

// Placeholder binds name in Global to the symbol void, reserving it for a
// later define or set!.
func (ip *Interpreter) Placeholder(name string) {
	ip.Global.Define(name, Sym("void"))
}

//// END_OF_PUBLIC
