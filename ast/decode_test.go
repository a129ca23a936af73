package ast

import (
	"strings"
	"testing"
)

func TestDecodeProgram(t *testing.T) {
	const src = `{
		"kind": "let", "span": [0, 0, 4, 3],
		"decls": [
			{"kind": "var", "span": [1, 2, 1, 16], "name": "x", "type": "int",
			 "init": {"kind": "int", "span": [1, 15, 1, 16], "value": 42}},
			{"kind": "function", "span": [2, 2, 2, 40], "name": "f", "type": "int",
			 "params": [{"name": "a", "type": "int", "span": [2, 13, 2, 19]}],
			 "body": {"kind": "binop", "op": "+",
			          "left": {"kind": "id", "name": "a"},
			          "right": {"kind": "id", "name": "x"}}}
		],
		"body": [
			{"kind": "call", "func": "f", "args": [{"kind": "int", "value": 1}]}
		]
	}`

	expr, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	let, ok := expr.(*Let)
	if !ok {
		t.Fatalf("expected *Let, got %T", expr)
	}

	if got := let.Span().String(); got != "1:1" {
		t.Errorf("let span: got %s, want 1:1", got)
	}

	if len(let.Decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(let.Decls))
	}

	vd, ok := let.Decls[0].(*VarDecl)
	if !ok || vd.Name != "x" || vd.TypeName != "int" {
		t.Fatalf("bad variable declaration: %#v", let.Decls[0])
	}

	if lit, ok := vd.Init.(*IntegerLiteral); !ok || lit.Value != 42 {
		t.Errorf("bad initializer: %#v", vd.Init)
	}

	fd, ok := let.Decls[1].(*FunDecl)
	if !ok || fd.Name != "f" || fd.TypeName != "int" || fd.External {
		t.Fatalf("bad function declaration: %#v", let.Decls[1])
	}

	if len(fd.Params) != 1 || fd.Params[0].Name != "a" || fd.Params[0].TypeName != "int" {
		t.Errorf("bad parameters: %#v", fd.Params)
	}

	if fd.Params[0].Init != nil {
		t.Error("parameters must not have initializers")
	}

	if op, ok := fd.Body.(*BinaryOp); !ok || op.Op != OpPlus {
		t.Errorf("bad function body: %#v", fd.Body)
	}

	if len(let.Body.Exprs) != 1 {
		t.Fatalf("expected 1 body expression, got %d", len(let.Body.Exprs))
	}

	call, ok := let.Body.Exprs[0].(*FunCall)
	if !ok || call.FuncName != "f" || len(call.Args) != 1 {
		t.Errorf("bad call: %#v", let.Body.Exprs[0])
	}
}

func TestDecodeControlFlow(t *testing.T) {
	const src = `{"kind": "seq", "exprs": [
		{"kind": "if", "cond": {"kind": "int", "value": 1}, "then": {"kind": "seq", "exprs": []}},
		{"kind": "if", "cond": {"kind": "int", "value": 1},
		 "then": {"kind": "int", "value": 2}, "else": {"kind": "int", "value": 3}},
		{"kind": "for", "var": "i", "low": {"kind": "int", "value": 1}, "high": {"kind": "int", "value": 10},
		 "body": {"kind": "while", "cond": {"kind": "int", "value": 1}, "body": {"kind": "break"}}},
		{"kind": "let", "decls": [{"kind": "var", "name": "s", "init": {"kind": "string", "value": "a\nb"}}],
		 "body": [{"kind": "assign", "lhs": {"kind": "id", "name": "s"}, "rhs": {"kind": "string", "value": ""}}]}
	]}`

	expr, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	seq := expr.(*Sequence)
	if len(seq.Exprs) != 4 {
		t.Fatalf("expected 4 expressions, got %d", len(seq.Exprs))
	}

	if ite := seq.Exprs[0].(*IfThenElse); ite.HasElse() {
		t.Error("missing else must decode to an empty sequence")
	}

	if ite := seq.Exprs[1].(*IfThenElse); !ite.HasElse() {
		t.Error("explicit else was dropped")
	}

	loop := seq.Exprs[2].(*ForLoop)
	if loop.Var.Name != "i" || loop.Var.Init == nil {
		t.Errorf("bad loop index: %#v", loop.Var)
	}

	if _, ok := loop.Body.(*WhileLoop).Body.(*Break); !ok {
		t.Error("expected break inside while body")
	}

	let := seq.Exprs[3].(*Let)
	if lit := let.Decls[0].(*VarDecl).Init.(*StringLiteral); lit.Value != "a\nb" {
		t.Errorf("bad string value: %q", lit.Value)
	}

	if as := let.Body.Exprs[0].(*Assign); as.Lhs.Name != "s" {
		t.Errorf("bad assignment target: %s", as.Lhs.Name)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing kind", `{"value": 1}`, "missing its kind"},
		{"unknown kind", `{"kind": "record"}`, "unknown expression kind `record`"},
		{"unknown operator", `{"kind": "binop", "op": "&", "left": {"kind": "int", "value": 1}, "right": {"kind": "int", "value": 1}}`, "unknown operator `&`"},
		{"assign to call", `{"kind": "assign", "lhs": {"kind": "call", "func": "f"}, "rhs": {"kind": "int", "value": 1}}`, "must be an identifier"},
		{"malformed span", `{"kind": "int", "value": 1, "span": [1, 2]}`, "malformed span"},
		{"integer overflow", `{"kind": "int", "value": 4294967296}`, "invalid integer literal"},
		{"missing operand", `{"kind": "binop", "op": "+", "left": {"kind": "int", "value": 1}}`, "missing AST node"},
		{"unknown declaration", `{"kind": "let", "decls": [{"kind": "type", "name": "t"}], "body": []}`, "unknown declaration kind `type`"},
		{"not json", `let x := 1`, "decoding AST"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(test.src))
			if err == nil {
				t.Fatal("expected an error")
			}

			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err, test.want)
			}
		})
	}
}
