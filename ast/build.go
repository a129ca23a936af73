package ast

import "tigerc/report"

// The constructors below are used by the JSON decoder, the binder's synthetic
// nodes and tests.  A nil span marks a compiler-synthesized node.

func NewIntegerLiteral(span *report.TextSpan, value int32) *IntegerLiteral {
	return &IntegerLiteral{ExprBase: NewExprBase(span), Value: value}
}

func NewStringLiteral(span *report.TextSpan, value string) *StringLiteral {
	return &StringLiteral{ExprBase: NewExprBase(span), Value: value}
}

func NewBinaryOp(span *report.TextSpan, op Operator, lhs, rhs Expr) *BinaryOp {
	return &BinaryOp{ExprBase: NewExprBase(span), Op: op, Lhs: lhs, Rhs: rhs}
}

func NewSequence(span *report.TextSpan, exprs ...Expr) *Sequence {
	return &Sequence{ExprBase: NewExprBase(span), Exprs: exprs}
}

func NewLet(span *report.TextSpan, decls []Decl, body ...Expr) *Let {
	return &Let{ExprBase: NewExprBase(span), Decls: decls, Body: NewSequence(span, body...)}
}

func NewIdentifier(span *report.TextSpan, name string) *Identifier {
	return &Identifier{ExprBase: NewExprBase(span), Name: name}
}

// NewIfThenElse creates a conditional.  A nil else branch becomes an empty
// sequence.
func NewIfThenElse(span *report.TextSpan, cond, then, els Expr) *IfThenElse {
	if els == nil {
		els = NewSequence(span)
	}

	return &IfThenElse{ExprBase: NewExprBase(span), Cond: cond, Then: then, Else: els}
}

func NewWhileLoop(span *report.TextSpan, cond, body Expr) *WhileLoop {
	return &WhileLoop{ExprBase: NewExprBase(span), Cond: cond, Body: body}
}

// NewForLoop creates a for loop whose index is a fresh variable declaration
// initialized to low.
func NewForLoop(span *report.TextSpan, index string, low, high, body Expr) *ForLoop {
	return &ForLoop{
		ExprBase: NewExprBase(span),
		Var:      NewVarDecl(span, index, "", low),
		High:     high,
		Body:     body,
	}
}

func NewBreak(span *report.TextSpan) *Break {
	return &Break{ExprBase: NewExprBase(span)}
}

func NewAssign(span *report.TextSpan, lhs *Identifier, rhs Expr) *Assign {
	return &Assign{ExprBase: NewExprBase(span), Lhs: lhs, Rhs: rhs}
}

func NewFunCall(span *report.TextSpan, name string, args ...Expr) *FunCall {
	return &FunCall{ExprBase: NewExprBase(span), FuncName: name, Args: args}
}

// -----------------------------------------------------------------------------

func NewVarDecl(span *report.TextSpan, name, typeName string, init Expr) *VarDecl {
	return &VarDecl{DeclBase: NewDeclBase(span, name), TypeName: typeName, Init: init}
}

// NewParam creates a function parameter.
func NewParam(span *report.TextSpan, name, typeName string) *VarDecl {
	return &VarDecl{DeclBase: NewDeclBase(span, name), TypeName: typeName}
}

func NewFunDecl(span *report.TextSpan, name string, params []*VarDecl, typeName string, body Expr, external bool) *FunDecl {
	return &FunDecl{
		DeclBase: NewDeclBase(span, name),
		Params:   params,
		TypeName: typeName,
		Body:     body,
		External: external,
	}
}
