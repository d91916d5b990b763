package sift

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustEval(t *testing.T, ip *Interpreter, src string) Value {
	t.Helper()
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v
}

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	return mustEval(t, NewInterpreter(), src)
}

func evalErr(t *testing.T, src string, k ErrorKind) error {
	t.Helper()
	_, err := NewInterpreter().EvalSource(src)
	if !IsKind(err, k) {
		t.Fatalf("%q: want %v, got %v", src, k, err)
	}
	return err
}

func wantNum(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTNumber || v.Data.(int64) != n {
		t.Fatalf("want number %d, got %v", n, v)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != VTString || v.Data.(string) != s {
		t.Fatalf("want string %q, got %v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %v", b, v)
	}
}

func wantRender(t *testing.T, v Value, s string) {
	t.Helper()
	if got := FormatValue(v); got != s {
		t.Fatalf("want %s, got %s", s, got)
	}
}

// --- self-evaluation & lookup ---------------------------------------------

func Test_Eval_SelfEvaluating(t *testing.T) {
	wantNum(t, evalSrc(t, "42"), 42)
	wantStr(t, evalSrc(t, `"hi"`), "hi")
	wantBool(t, evalSrc(t, "#f"), false)
	wantRender(t, evalSrc(t, "()"), "()")
}

func Test_Eval_Symbol_Lookup(t *testing.T) {
	ip := NewInterpreter()
	ip.Global.Define("x", Num(3))
	wantNum(t, mustEval(t, ip, "x"), 3)
	evalErr(t, "undefined-symbol", UnboundVariable)
	evalErr(t, "(undefined-symbol)", UnboundVariable)
}

// --- quote -----------------------------------------------------------------

func Test_Eval_Quote_Returns_Datum_Unevaluated(t *testing.T) {
	for _, src := range []string{"unbound", "(a b . c)", "(+ 1 2)", "'x", "()", "42"} {
		want := mustParse(t, src)
		got := evalSrc(t, "(quote "+src+")")
		if !Equal(got, want) {
			t.Fatalf("(quote %s) = %v", src, got)
		}
		got = evalSrc(t, "'"+src)
		if !Equal(got, want) {
			t.Fatalf("'%s = %v", src, got)
		}
	}
	evalErr(t, "(quote)", BadSpecialForm)
	evalErr(t, "(quote a b)", BadSpecialForm)
}

// --- if --------------------------------------------------------------------

func Test_Eval_If(t *testing.T) {
	wantStr(t, evalSrc(t, `(if (> 2 3) "no" "yes")`), "yes")
	wantStr(t, evalSrc(t, `(if (< 2 3) "yes" "no")`), "yes")
	for _, c := range []string{"0", "'()", `""`, "'sym"} {
		wantNum(t, evalSrc(t, "(if "+c+" 1 2)"), 1)
	}
	evalErr(t, "(if #t 1)", BadSpecialForm)
	evalErr(t, "(if #t 1 2 3)", BadSpecialForm)
}

func Test_Eval_If_Only_Evaluates_Taken_Branch(t *testing.T) {
	wantNum(t, evalSrc(t, "(if #t 1 (undefined))"), 1)
	wantNum(t, evalSrc(t, "(if #f (undefined) 2)"), 2)
}

// --- define / set! ----------------------------------------------------------

func Test_Eval_Define_And_Set(t *testing.T) {
	ip := NewInterpreter()
	wantNum(t, mustEval(t, ip, "(define x 10)"), 10)
	wantNum(t, mustEval(t, ip, "(set! x (+ x 1))"), 11)
	wantNum(t, mustEval(t, ip, "x"), 11)
	wantNum(t, mustEval(t, ip, "(define x 1) x"), 1)

	_, err := ip.EvalSource("(set! never-defined 1)")
	wantKind(t, err, UnboundVariable)
	if _, err := ip.Global.Lookup("never-defined"); err == nil {
		t.Fatalf("failed set! created a binding")
	}
	evalErr(t, "(set! 1 2)", BadSpecialForm)
	evalErr(t, "(set! x)", BadSpecialForm)
	evalErr(t, "(define x)", BadSpecialForm)
	evalErr(t, "(define 1 2)", BadSpecialForm)
}

func Test_Eval_Define_Inside_Closure_Is_Local(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, "(define x 1)")
	mustEval(t, ip, "(define (f) (begin (define x 2) x))")
	wantNum(t, mustEval(t, ip, "(f)"), 2)
	wantNum(t, mustEval(t, ip, "x"), 1)
}

// --- begin -----------------------------------------------------------------

func Test_Eval_Begin(t *testing.T) {
	wantNum(t, evalSrc(t, "(begin 1 2 3)"), 3)
	wantRender(t, evalSrc(t, "(begin)"), "()")
	wantNum(t, evalSrc(t, "(begin (define a 1) (set! a (* a 5)) a)"), 5)
}

// --- lambda & application ---------------------------------------------------

func Test_Eval_Define_Procedure_And_Call(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, "(define (f x y) (+ x y))")
	wantNum(t, mustEval(t, ip, "(f 1 2)"), 3)

	for _, src := range []string{"(f 1 2 3)", "(f 1)"} {
		_, err := ip.EvalSource(src)
		wantKind(t, err, ArityError)
	}
}

func Test_Eval_Lambda_Forms(t *testing.T) {
	wantNum(t, evalSrc(t, "((lambda (x) (* x x)) 7)"), 49)
	wantRender(t, evalSrc(t, "((lambda args args) 1 2 3)"), "(1 2 3)")
	wantRender(t, evalSrc(t, "((lambda (a . rest) rest) 1 2 3)"), "(2 3)")
	wantNum(t, evalSrc(t, "((lambda (x) (define y 2) (+ x y)) 1)"), 3)
	wantRender(t, evalSrc(t, "(define (g . xs) xs) (g)"), "()")
	wantRender(t, evalSrc(t, "(lambda (x y) x)"), "#<lambda (x y)>")

	evalErr(t, "(lambda (x))", BadSpecialForm)
	evalErr(t, "(lambda (1) 1)", BadSpecialForm)
	evalErr(t, "((lambda (a . rest) rest))", ArityError)
}

func Test_Eval_Closure_Counter_Shares_Captured_State(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, `
(define (counter inc)
  (lambda (x) (begin (set! inc (+ x inc)) inc)))
(define my-count (counter 5))
`)
	first := mustEval(t, ip, "(my-count 3)")
	second := mustEval(t, ip, "(my-count 6)")
	wantNum(t, first, 8)
	wantNum(t, second, 14)
}

func Test_Eval_Sibling_Closures_See_Same_Frame(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, `
(define (make-cell v)
  (cons (lambda () v) (lambda (n) (set! v n))))
(define cell (make-cell 1))
((cdr cell) 42)
`)
	wantNum(t, mustEval(t, ip, "((car cell))"), 42)
}

func Test_Eval_Lexical_Not_Dynamic_Scope(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, `
(define x 'global)
(define (get-x) x)
(define (shadow x) (get-x))
`)
	wantRender(t, mustEval(t, ip, "(shadow 'local)"), "global")
}

func Test_Eval_Recursion(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, "(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))")
	wantNum(t, mustEval(t, ip, "(fact 10)"), 3628800)
	mustEval(t, ip, "(define (fib n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))")
	wantNum(t, mustEval(t, ip, "(fib 15)"), 610)
}

func Test_Eval_Not_A_Function(t *testing.T) {
	err := evalErr(t, "(1 2)", NotAFunction)
	if !strings.Contains(err.Error(), "Not a function: 1") {
		t.Fatalf("unexpected message: %v", err)
	}
	evalErr(t, `("f")`, NotAFunction)
	evalErr(t, "(define x 3) (x)", NotAFunction)
}

func Test_Eval_Malformed_Application(t *testing.T) {
	evalErr(t, "(+ 1 . 2)", BadSpecialForm)
	evalErr(t, "(if #t . 2)", BadSpecialForm)
}

func Test_Eval_Arguments_Left_To_Right(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, `
(define trace '())
(define (note x) (begin (set! trace (cons x trace)) x))
(define (three a b c) (cons a (cons b (cons c '()))))
`)
	wantRender(t, mustEval(t, ip, "(three (note 1) (note 2) (note 3))"), "(1 2 3)")
	wantRender(t, mustEval(t, ip, "trace"), "(3 2 1)")
}

func Test_Eval_BadForm_After_Side_Effect(t *testing.T) {
	ip := NewInterpreter()
	mustEval(t, ip, "(define x 0)")
	_, err := ip.EvalSource("(begin (set! x 1) (if))")
	wantKind(t, err, BadSpecialForm)
	wantNum(t, mustEval(t, ip, "x"), 1)
}

func Test_Eval_Stops_At_First_Error(t *testing.T) {
	ip := NewInterpreter()
	_, err := ip.EvalSource("(define a 1) (car 5) (define b 2)")
	wantKind(t, err, TypeMismatch)
	if _, err := ip.Global.Lookup("b"); err == nil {
		t.Fatalf("evaluation continued past an error")
	}
	wantNum(t, mustEval(t, ip, "a"), 1)
}

// --- public API ------------------------------------------------------------

func Test_Evaluate_Entry_Point(t *testing.T) {
	env := NewInterpreter().Global
	v, err := Evaluate(mustParse(t, "(+ 1 2)"), env)
	if err != nil {
		t.Fatal(err)
	}
	wantNum(t, v, 3)
}

func Test_Interpreter_EvalIn_Uses_Given_Env(t *testing.T) {
	ip := NewInterpreter()
	scope := NewEnv(ip.Global)
	if _, err := ip.EvalIn(mustParse(t, "(define z 9)"), scope); err != nil {
		t.Fatal(err)
	}
	if _, err := ip.Global.Lookup("z"); err == nil {
		t.Fatalf("define leaked into Global")
	}
	v, _ := ip.EvalExpr(Compile(Sym("z")), scope)
	wantNum(t, v, 9)
}

func Test_Interpreter_Apply_And_RegisterNative(t *testing.T) {
	ip := NewInterpreter()
	ip.RegisterNative("twice", 1, func(args []Value) (Value, error) {
		n, err := asNumber(args[0])
		return Num(2 * n), err
	})
	wantNum(t, mustEval(t, ip, "(twice 21)"), 42)
	_, err := ip.EvalSource("(twice 1 2)")
	wantKind(t, err, ArityError)

	sq := mustEval(t, ip, "(lambda (x) (* x x))")
	v, err := ip.Apply(sq, []Value{Num(5)})
	if err != nil {
		t.Fatal(err)
	}
	wantNum(t, v, 25)
	_, err = ip.Apply(Num(1), nil)
	wantKind(t, err, NotAFunction)
}

func Test_Interpreter_Placeholder(t *testing.T) {
	ip := NewInterpreter()
	ip.Placeholder("fib")
	wantRender(t, mustEval(t, ip, "fib"), "void")
	mustEval(t, ip, "(set! fib (lambda (n) n))")
	wantNum(t, mustEval(t, ip, "(fib 4)"), 4)
}

func Test_Interpreter_MaxDepth(t *testing.T) {
	ip := NewInterpreter(WithMaxDepth(200))
	mustEval(t, ip, "(define (loop n) (if (= n 0) 0 (+ 1 (loop (- n 1)))))")
	wantNum(t, mustEval(t, ip, "(loop 10)"), 10)
	_, err := ip.EvalSource("(loop 100000)")
	wantKind(t, err, ResourceLimit)
	// the depth counter unwinds after an error
	wantNum(t, mustEval(t, ip, "(loop 10)"), 10)
}

func Test_Interpreter_Closure_Built_By_Host(t *testing.T) {
	ip := NewInterpreter()
	c := FunVal(&Closure{Params: List(Sym("a")), Body: mustParse(t, "(+ a 1)"), Env: ip.Global})
	v, err := ip.Apply(c, []Value{Num(1)})
	if err != nil {
		t.Fatal(err)
	}
	wantNum(t, v, 2)
}
