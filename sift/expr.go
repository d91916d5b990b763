// expr.go: one-time classification of Values into evaluable Exprs.
//
// The reader hands the evaluator generic Value trees. Rather than matching
// list heads against special-form names every time a form is evaluated,
// Compile walks a form once and produces an Expr tree whose nodes already
// know what they are. Lambda bodies are classified when the lambda form is,
// so a closure called in a loop never re-inspects its body.
//
// Classification never fails. A special form with the wrong shape becomes a
// node that raises BadSpecialForm when (and only when) it is evaluated, so
// side effects that precede it in evaluation order still happen, exactly as
// with a direct Value walker.
package sift

// Expr is a classified expression. The concrete node types are private;
// evaluate them with Interpreter.EvalExpr or Evaluate.
type Expr interface {
	isExpr()
}

type (
	// literalExpr evaluates to v: numbers, strings, booleans, ().
	literalExpr struct{ v Value }
	// varExpr looks name up in the environment.
	varExpr struct{ name string }
	// quoteExpr evaluates to its datum unevaluated.
	quoteExpr struct{ datum Value }
	ifExpr    struct{ cond, then, els Expr }
	beginExpr struct{ body []Expr }
	setExpr   struct {
		name  string
		value Expr
	}
	defineExpr struct {
		name  string
		value Expr
	}
	lambdaExpr struct {
		params Value
		body   Value // source, kept for rendering
		expr   Expr
	}
	applyExpr struct {
		fn   Expr
		args []Expr
	}
	// errorExpr defers a classification error to evaluation time.
	errorExpr struct{ err error }
)

func (literalExpr) isExpr() {}
func (varExpr) isExpr()     {}
func (quoteExpr) isExpr()   {}
func (ifExpr) isExpr()      {}
func (beginExpr) isExpr()   {}
func (setExpr) isExpr()     {}
func (defineExpr) isExpr()  {}
func (lambdaExpr) isExpr()  {}
func (applyExpr) isExpr()   {}
func (errorExpr) isExpr()   {}

// Compile classifies v into an Expr.
func Compile(v Value) Expr {
	switch v.Tag {
	case VTSymbol:
		return varExpr{name: v.Data.(string)}
	case VTPair:
		return compileForm(v)
	default:
		return literalExpr{v: v}
	}
}

//// END_OF_PUBLIC

func compileForm(form Value) Expr {
	p := form.Data.(*Pair)
	args, tail := ListToSlice(p.Cdr)

	if p.Car.Tag == VTSymbol {
		head := p.Car.Data.(string)
		if isSpecialForm(head) {
			if tail.Tag != VTNull {
				return errorExpr{badFormErr("Malformed special form", form)}
			}
			return compileSpecial(head, form, args)
		}
	}

	if tail.Tag != VTNull {
		return errorExpr{badFormErr("Malformed application", form)}
	}
	out := applyExpr{fn: Compile(p.Car), args: make([]Expr, len(args))}
	for i, a := range args {
		out.args[i] = Compile(a)
	}
	return out
}

func isSpecialForm(head string) bool {
	switch head {
	case "quote", "if", "set!", "define", "lambda", "begin":
		return true
	}
	return false
}

func compileSpecial(head string, form Value, args []Value) Expr {
	switch head {
	case "quote":
		if len(args) != 1 {
			return errorExpr{badFormErr("quote expects exactly 1 argument", form)}
		}
		return quoteExpr{datum: args[0]}

	case "if":
		if len(args) != 3 {
			return errorExpr{badFormErr("if expects exactly 3 arguments", form)}
		}
		return ifExpr{cond: Compile(args[0]), then: Compile(args[1]), els: Compile(args[2])}

	case "set!":
		if len(args) != 2 || args[0].Tag != VTSymbol {
			return errorExpr{badFormErr("set! expects a symbol and a value", form)}
		}
		return setExpr{name: args[0].Data.(string), value: Compile(args[1])}

	case "define":
		return compileDefine(form, args)

	case "lambda":
		if len(args) < 2 {
			return errorExpr{badFormErr("lambda expects parameters and a body", form)}
		}
		return compileLambda(form, args[0], args[1:])

	default: // begin
		return compileBody(args)
	}
}

// compileDefine handles (define name value) and the procedure shorthand
// (define (name . params) body ...).
func compileDefine(form Value, args []Value) Expr {
	if len(args) == 0 {
		return errorExpr{badFormErr("define expects a name and a value", form)}
	}
	switch target := args[0]; target.Tag {
	case VTSymbol:
		if len(args) != 2 {
			return errorExpr{badFormErr("define expects a name and a value", form)}
		}
		return defineExpr{name: target.Data.(string), value: Compile(args[1])}
	case VTPair:
		tp := target.Data.(*Pair)
		if tp.Car.Tag != VTSymbol || len(args) < 2 {
			return errorExpr{badFormErr("define expects (name params...) and a body", form)}
		}
		return defineExpr{name: tp.Car.Data.(string), value: compileLambda(form, tp.Cdr, args[1:])}
	}
	return errorExpr{badFormErr("define expects a symbol", form)}
}

func compileLambda(form, params Value, body []Value) Expr {
	formals, rest := ListToSlice(params)
	for _, f := range formals {
		if f.Tag != VTSymbol {
			return errorExpr{badFormErr("lambda parameters must be symbols", form)}
		}
	}
	if rest.Tag != VTNull && rest.Tag != VTSymbol {
		return errorExpr{badFormErr("lambda parameters must be symbols", form)}
	}
	src := body[0]
	if len(body) > 1 {
		src = Cons(Sym("begin"), List(body...))
	}
	return lambdaExpr{params: params, body: src, expr: compileBody(body)}
}

// compileBody turns a sequence into a single Expr, collapsing the
// one-element case.
func compileBody(body []Value) Expr {
	if len(body) == 1 {
		return Compile(body[0])
	}
	out := beginExpr{body: make([]Expr, len(body))}
	for i, b := range body {
		out.body[i] = Compile(b)
	}
	return out
}
