package ast

import (
	"tigerc/report"
)

// Expr represents an expression.  The set of expressions is closed: every
// implementation lives in this file.
type Expr interface {
	Typed

	exprNode()
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase
	typeSlot
}

// NewExprBase creates a new expression base with the given span.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

func (*ExprBase) exprNode() {}

// Loop is a loop expression: the target of a `break`.
type Loop interface {
	Expr

	loopNode()
}

// -----------------------------------------------------------------------------

// IntegerLiteral is an integer constant.
type IntegerLiteral struct {
	ExprBase

	Value int32
}

// StringLiteral is a string constant.  The value is already unescaped.
type StringLiteral struct {
	ExprBase

	Value string
}

// -----------------------------------------------------------------------------

// Operator is a binary operator.
type Operator int

// Enumeration of binary operators.
const (
	OpPlus Operator = iota
	OpMinus
	OpTimes
	OpDivide
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
)

var operatorNames = [...]string{
	OpPlus:   "+",
	OpMinus:  "-",
	OpTimes:  "*",
	OpDivide: "/",
	OpEq:     "=",
	OpNeq:    "<>",
	OpLt:     "<",
	OpLe:     "<=",
	OpGt:     ">",
	OpGe:     ">=",
}

func (op Operator) String() string {
	return operatorNames[op]
}

// IsArithmetic returns whether the operator is one of `+ - * /`.
func (op Operator) IsArithmetic() bool {
	return op <= OpDivide
}

// LookupOperator returns the operator with the given source spelling.
func LookupOperator(name string) (Operator, bool) {
	for op, opName := range operatorNames {
		if opName == name {
			return Operator(op), true
		}
	}

	return 0, false
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ExprBase

	Op       Operator
	Lhs, Rhs Expr
}

// -----------------------------------------------------------------------------

// Sequence is an ordered list of expressions evaluated for effect; it yields
// the value of its last expression.  An empty sequence yields no value.
type Sequence struct {
	ExprBase

	Exprs []Expr
}

// Let is a let block: declarations visible in a body sequence.
type Let struct {
	ExprBase

	Decls []Decl
	Body  *Sequence
}

// Identifier is a reference to a variable.
type Identifier struct {
	ExprBase

	Name string

	// The resolved declaration: set by the binder.
	Decl *VarDecl

	// The function nesting depth at which the identifier occurs: set by the
	// binder.
	Depth int
}

// IfThenElse is a conditional.  Else is never nil: a missing else branch is
// represented by an empty sequence.
type IfThenElse struct {
	ExprBase

	Cond, Then, Else Expr
}

// HasElse returns whether the conditional has a structurally non-empty else
// branch.
func (ite *IfThenElse) HasElse() bool {
	if seq, ok := ite.Else.(*Sequence); ok && len(seq.Exprs) == 0 {
		return false
	}

	return true
}

// WhileLoop is a while loop.
type WhileLoop struct {
	ExprBase

	Cond, Body Expr
}

func (*WhileLoop) loopNode() {}

// ForLoop is a for loop: `for Var := Var.Init to High do Body`.
type ForLoop struct {
	ExprBase

	Var  *VarDecl
	High Expr
	Body Expr
}

func (*ForLoop) loopNode() {}

// Break exits the innermost enclosing loop.
type Break struct {
	ExprBase

	// The loop exited by the break: set by the binder.
	Loop Loop
}

// Assign is a variable assignment.
type Assign struct {
	ExprBase

	Lhs *Identifier
	Rhs Expr
}

// FunCall is a function call.
type FunCall struct {
	ExprBase

	FuncName string
	Args     []Expr

	// The resolved declaration: set by the binder.
	Decl *FunDecl
}
