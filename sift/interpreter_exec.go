// interpreter_exec.go: the evaluator.
//
// eval is a switch over classified Expr nodes. Each nested evaluation is a
// plain recursive call that returns before its caller continues; arguments
// and begin bodies are evaluated strictly left to right.
package sift

import "fmt"

func (ip *Interpreter) eval(e Expr, env *Env) (Value, error) {
	ip.depth++
	defer func() { ip.depth-- }()
	if ip.MaxDepth > 0 && ip.depth > ip.MaxDepth {
		return Null, &Error{Kind: ResourceLimit, Msg: fmt.Sprintf("maximum recursion depth %d exceeded", ip.MaxDepth)}
	}

	switch n := e.(type) {
	case literalExpr:
		return n.v, nil

	case varExpr:
		return env.Lookup(n.name)

	case quoteExpr:
		return n.datum, nil

	case ifExpr:
		c, err := ip.eval(n.cond, env)
		if err != nil {
			return Null, err
		}
		if Truthy(c) {
			return ip.eval(n.then, env)
		}
		return ip.eval(n.els, env)

	case beginExpr:
		result := Null
		for _, b := range n.body {
			v, err := ip.eval(b, env)
			if err != nil {
				return Null, err
			}
			result = v
		}
		return result, nil

	case setExpr:
		v, err := ip.eval(n.value, env)
		if err != nil {
			return Null, err
		}
		return env.Set(n.name, v)

	case defineExpr:
		v, err := ip.eval(n.value, env)
		if err != nil {
			return Null, err
		}
		return env.Define(n.name, v), nil

	case lambdaExpr:
		return FunVal(&Closure{Params: n.params, Body: n.body, Env: env, expr: n.expr}), nil

	case applyExpr:
		fn, err := ip.eval(n.fn, env)
		if err != nil {
			return Null, err
		}
		if fn.Tag != VTClosure && fn.Tag != VTNative {
			return Null, notFunctionErr(fn)
		}
		args := make([]Value, len(n.args))
		for i, a := range n.args {
			if args[i], err = ip.eval(a, env); err != nil {
				return Null, err
			}
		}
		return ip.apply(fn, args)

	case errorExpr:
		return Null, n.err
	}
	return Null, fmt.Errorf("sift: unknown expression node %T", e)
}

// apply calls a procedure with evaluated arguments.
func (ip *Interpreter) apply(fn Value, args []Value) (Value, error) {
	switch fn.Tag {
	case VTNative:
		n := fn.Data.(*Native)
		if len(args) < n.Arity || (!n.Variadic && len(args) != n.Arity) {
			return Null, arityErr(n.Arity, n.Variadic, args)
		}
		return n.Fn(args)

	case VTClosure:
		c := fn.Data.(*Closure)
		scope, err := c.Env.Extend(c.Params, args)
		if err != nil {
			return Null, err
		}
		if c.expr == nil {
			c.expr = Compile(c.Body)
		}
		return ip.eval(c.expr, scope)
	}
	return Null, notFunctionErr(fn)
}
