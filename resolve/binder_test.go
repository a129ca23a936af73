package resolve

import (
	"io"
	"strings"
	"testing"

	"tigerc/ast"
	"tigerc/report"
)

func bind(root ast.Expr) (*ast.FunDecl, *report.Reporter, error) {
	rep := report.NewReporter(report.LogLevelSilent, io.Discard)
	main, err := NewBinder(rep).BindProgram(root)
	return main, rep, err
}

func mustBind(t *testing.T, root ast.Expr) (*ast.FunDecl, *report.Reporter) {
	t.Helper()

	main, rep, err := bind(root)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	return main, rep
}

func intLit(v int32) *ast.IntegerLiteral {
	return ast.NewIntegerLiteral(nil, v)
}

func id(name string) *ast.Identifier {
	return ast.NewIdentifier(nil, name)
}

func fun(name, typeName string, body ast.Expr, params ...*ast.VarDecl) *ast.FunDecl {
	return ast.NewFunDecl(nil, name, params, typeName, body, false)
}

// -----------------------------------------------------------------------------

func TestMainWrapper(t *testing.T) {
	root := intLit(7)
	main, rep := mustBind(t, root)

	if main.Name != "main" || main.ExternalName != "main" || main.TypeName != "int" {
		t.Errorf("bad main declaration: %s %s %s", main.Name, main.ExternalName, main.TypeName)
	}

	if !main.External || main.Parent != nil || main.Depth != 1 {
		t.Errorf("bad main linkage or nesting: external=%v parent=%v depth=%d", main.External, main.Parent, main.Depth)
	}

	body, ok := main.Body.(*ast.Sequence)
	if !ok || len(body.Exprs) != 2 || body.Exprs[0] != root {
		t.Fatalf("main body must be the program followed by 0: %#v", main.Body)
	}

	if lit, ok := body.Exprs[1].(*ast.IntegerLiteral); !ok || lit.Value != 0 {
		t.Errorf("main must end with 0: %#v", body.Exprs[1])
	}

	if rep.AnyErrors() {
		t.Error("unexpected errors")
	}
}

func TestShadowing(t *testing.T) {
	outer := ast.NewVarDecl(nil, "x", "", intLit(1))
	inner := ast.NewVarDecl(nil, "x", "", ast.NewStringLiteral(nil, "s"))
	innerRef, outerRef := id("x"), id("x")

	mustBind(t, ast.NewLet(nil, []ast.Decl{outer},
		ast.NewLet(nil, []ast.Decl{inner}, innerRef),
		outerRef,
	))

	if innerRef.Decl != inner {
		t.Error("inner reference must resolve to the inner declaration")
	}

	if outerRef.Decl != outer {
		t.Error("the inner declaration must not be visible after its let")
	}
}

func TestInitializerSeesOuterVariable(t *testing.T) {
	outer := ast.NewVarDecl(nil, "x", "", intLit(1))
	initRef := id("x")
	inner := ast.NewVarDecl(nil, "x", "", initRef)

	mustBind(t, ast.NewLet(nil, []ast.Decl{outer}, ast.NewLet(nil, []ast.Decl{inner}, id("x"))))

	if initRef.Decl != outer {
		t.Error("an initializer must not see the variable it initializes")
	}
}

func TestEscape(t *testing.T) {
	x := ast.NewVarDecl(nil, "x", "", intLit(1))
	y := ast.NewVarDecl(nil, "y", "", intLit(2))
	xRef := id("x")
	f := fun("f", "int", xRef)

	main, _ := mustBind(t, ast.NewLet(nil, []ast.Decl{x, y, f}, id("y")))

	if !x.Escapes {
		t.Error("x is referenced from a nested function and must escape")
	}

	if y.Escapes {
		t.Error("y is only referenced in its own function and must not escape")
	}

	if x.Owner != main || x.Depth != 1 || xRef.Depth != 2 {
		t.Errorf("bad nesting: owner=%s decl depth=%d ref depth=%d", x.Owner.Name, x.Depth, xRef.Depth)
	}

	if len(main.EscapingVars) != 1 || main.EscapingVars[0] != x {
		t.Errorf("main must own exactly x as escaping variable: %v", main.EscapingVars)
	}

	if f.Parent != main || f.Depth != 2 {
		t.Errorf("bad function nesting: parent=%v depth=%d", f.Parent, f.Depth)
	}
}

func TestEscapingVariableRecordedOnce(t *testing.T) {
	x := ast.NewVarDecl(nil, "x", "", intLit(1))
	f := fun("f", "int", ast.NewBinaryOp(nil, ast.OpPlus, id("x"), id("x")))
	g := fun("g", "", ast.NewAssign(nil, id("x"), intLit(3)))

	main, _ := mustBind(t, ast.NewLet(nil, []ast.Decl{x, f, g}, id("x")))

	if len(main.EscapingVars) != 1 {
		t.Errorf("x must be recorded once, got %d entries", len(main.EscapingVars))
	}
}

func TestEscapingParameter(t *testing.T) {
	a := ast.NewParam(nil, "a", "int")
	g := fun("g", "int", id("a"))
	f := fun("f", "int", ast.NewLet(nil, []ast.Decl{g}, ast.NewFunCall(nil, "g")), a)

	mustBind(t, ast.NewLet(nil, []ast.Decl{f}, ast.NewFunCall(nil, "f", intLit(1))))

	if !a.Escapes || a.Owner != f {
		t.Errorf("parameter must escape and be owned by f: escapes=%v", a.Escapes)
	}

	if len(f.EscapingVars) != 1 || f.EscapingVars[0] != a {
		t.Errorf("f must own a as escaping variable: %v", f.EscapingVars)
	}

	if g.ExternalName != "main.f.g" {
		t.Errorf("bad external name %s", g.ExternalName)
	}
}

func TestMutualRecursion(t *testing.T) {
	callG, callF := ast.NewFunCall(nil, "g"), ast.NewFunCall(nil, "f")
	f := fun("f", "int", callG)
	g := fun("g", "int", callF)

	mustBind(t, ast.NewLet(nil, []ast.Decl{f, g}, ast.NewFunCall(nil, "f")))

	if callG.Decl != g || callF.Decl != f {
		t.Error("consecutive function declarations must see each other")
	}
}

func TestFunctionGroupsEndAtVariables(t *testing.T) {
	f := fun("f", "int", ast.NewFunCall(nil, "g"))
	z := ast.NewVarDecl(nil, "z", "", intLit(1))
	g := fun("g", "int", intLit(1))

	_, _, err := bind(ast.NewLet(nil, []ast.Decl{f, z, g}, intLit(0)))
	if err == nil || !strings.Contains(err.Error(), "`g` cannot be found") {
		t.Errorf("expected g to be out of scope, got %v", err)
	}
}

func TestPrimitiveCall(t *testing.T) {
	call := ast.NewFunCall(nil, "print", ast.NewStringLiteral(nil, "hi"))
	mustBind(t, call)

	if call.Decl == nil || call.Decl.ExternalName != PrimitivePrefix+"print" {
		t.Fatalf("print must resolve to the runtime primitive: %#v", call.Decl)
	}

	if call.Decl.Body != nil || !call.Decl.External || call.Decl.TypeName != "void" {
		t.Errorf("bad primitive declaration: %#v", call.Decl)
	}

	if len(call.Decl.Params) != 1 || call.Decl.Params[0].Name != "a_0" || call.Decl.Params[0].TypeName != "string" {
		t.Errorf("bad primitive parameters: %#v", call.Decl.Params)
	}
}

func TestPrimitiveCanBeShadowed(t *testing.T) {
	call := ast.NewFunCall(nil, "print", intLit(1))
	userPrint := fun("print", "", ast.NewSequence(nil), ast.NewParam(nil, "n", "int"))

	_, rep := mustBind(t, ast.NewLet(nil, []ast.Decl{userPrint}, call))

	if call.Decl != userPrint || rep.AnyErrors() {
		t.Error("user functions must shadow primitives without error")
	}
}

func TestLoops(t *testing.T) {
	innerBreak, outerBreak := ast.NewBreak(nil), ast.NewBreak(nil)
	forLoop := ast.NewForLoop(nil, "i", intLit(1), intLit(10), ast.NewSequence(nil, innerBreak))
	while := ast.NewWhileLoop(nil, intLit(1), ast.NewSequence(nil, forLoop,
		ast.NewIfThenElse(nil, intLit(1), outerBreak, nil)))

	mustBind(t, while)

	if innerBreak.Loop != forLoop {
		t.Error("break must exit the innermost loop")
	}

	if outerBreak.Loop != while {
		t.Error("break after an inner loop must exit the enclosing loop")
	}
}

func TestForLoopScoping(t *testing.T) {
	outer := ast.NewVarDecl(nil, "i", "", ast.NewStringLiteral(nil, "abc"))
	boundRef, bodyRef := id("i"), id("i")
	loop := ast.NewForLoop(nil, "i", intLit(0), ast.NewFunCall(nil, "size", boundRef),
		ast.NewFunCall(nil, "print_int", bodyRef))

	mustBind(t, ast.NewLet(nil, []ast.Decl{outer}, loop, id("i")))

	if boundRef.Decl != outer {
		t.Error("the loop bound must not see the loop index")
	}

	if bodyRef.Decl != loop.Var {
		t.Error("the loop body must see the loop index")
	}
}

func TestFatalErrors(t *testing.T) {
	tests := []struct {
		name string
		root ast.Expr
		want string
	}{
		{
			"break at top level",
			ast.NewBreak(nil),
			"break must be inside a loop",
		},
		{
			"break in function without loop",
			ast.NewLet(nil, []ast.Decl{fun("f", "", ast.NewBreak(nil))}, intLit(0)),
			"break must be inside a loop",
		},
		{
			"break in function inside loop",
			ast.NewWhileLoop(nil, intLit(1),
				ast.NewLet(nil, []ast.Decl{fun("f", "", ast.NewBreak(nil))}, ast.NewFunCall(nil, "f"))),
			"break must be inside a loop",
		},
		{
			"assign to loop index",
			ast.NewForLoop(nil, "i", intLit(1), intLit(5), ast.NewSequence(nil,
				ast.NewFunCall(nil, "print_int", id("i")),
				ast.NewAssign(nil, id("i"), intLit(0)),
			)),
			"cannot assign to loop index `i`",
		},
		{
			"undefined variable",
			id("nope"),
			"`nope` cannot be found in this scope",
		},
		{
			"undefined function",
			ast.NewFunCall(nil, "nope"),
			"`nope` cannot be found in this scope",
		},
		{
			"function used as variable",
			id("print"),
			"`print` is not a variable",
		},
		{
			"variable called as function",
			ast.NewLet(nil, []ast.Decl{ast.NewVarDecl(nil, "x", "", intLit(1))}, ast.NewFunCall(nil, "x")),
			"`x` is not a function",
		},
		{
			"variable out of scope after let",
			ast.NewSequence(nil, ast.NewLet(nil, []ast.Decl{ast.NewVarDecl(nil, "x", "", intLit(1))}), id("x")),
			"`x` cannot be found in this scope",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			main, rep, err := bind(test.root)
			if err == nil {
				t.Fatal("expected a fatal error")
			}

			if main != nil {
				t.Error("a failed binding must not produce main")
			}

			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err, test.want)
			}

			diags := rep.Diagnostics()
			if len(diags) != 1 || !diags[0].Fatal {
				t.Errorf("expected exactly one fatal diagnostic, got %d", len(diags))
			}
		})
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	first := ast.NewVarDecl(&report.TextSpan{StartLine: 1, StartCol: 4}, "x", "", intLit(1))
	second := ast.NewVarDecl(&report.TextSpan{StartLine: 2, StartCol: 4}, "x", "", intLit(2))
	ref := id("x")

	main, rep, err := bind(ast.NewLet(nil, []ast.Decl{ast.NewVarDecl(nil, "y", "", intLit(0))},
		ast.NewLet(nil, []ast.Decl{first, second}, ref)))
	if err != nil {
		t.Fatalf("duplicate declarations must not be fatal: %s", err)
	}

	if main == nil {
		t.Fatal("binding must complete")
	}

	if !rep.AnyErrors() {
		t.Error("the compilation must be marked as failed")
	}

	diags := rep.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}

	if diags[0].Fatal || diags[0].Span != second.Span() {
		t.Errorf("bad diagnostic: fatal=%v span=%s", diags[0].Fatal, diags[0].Span)
	}

	if len(diags[0].Notes) != 1 || diags[0].Notes[0].Span != first.Span() {
		t.Errorf("the diagnostic must point at the previous declaration: %#v", diags[0].Notes)
	}

	if ref.Decl != second {
		t.Error("the most recent declaration must be used")
	}
}

func TestExternalNames(t *testing.T) {
	g := fun("g", "", ast.NewSequence(nil))
	f1 := fun("f", "", ast.NewLet(nil, []ast.Decl{g}))
	f2 := fun("f", "", ast.NewSequence(nil))
	f3 := fun("f", "", ast.NewSequence(nil))

	mustBind(t, ast.NewSequence(nil,
		ast.NewLet(nil, []ast.Decl{f1}),
		ast.NewLet(nil, []ast.Decl{f2}),
		ast.NewLet(nil, []ast.Decl{f3}),
	))

	for _, test := range []struct {
		fd   *ast.FunDecl
		want string
	}{{f1, "main.f"}, {g, "main.f.g"}, {f2, "main.f_"}, {f3, "main.f__"}} {
		if test.fd.ExternalName != test.want {
			t.Errorf("got external name %s, want %s", test.fd.ExternalName, test.want)
		}
	}
}

func TestBindersAreIndependent(t *testing.T) {
	f1 := fun("f", "", ast.NewSequence(nil))
	f2 := fun("f", "", ast.NewSequence(nil))

	mustBind(t, ast.NewLet(nil, []ast.Decl{f1}))
	mustBind(t, ast.NewLet(nil, []ast.Decl{f2}))

	if f1.ExternalName != "main.f" || f2.ExternalName != "main.f" {
		t.Errorf("external names must not leak between binders: %s %s", f1.ExternalName, f2.ExternalName)
	}
}
