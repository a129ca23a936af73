// Package ast defines the abstract syntax tree consumed by the semantic passes.
// The tree is produced by an external parser; the passes only ever write the
// annotation slots: resolved declarations, depths, escape flags, external
// names and types.
package ast

import (
	"tigerc/report"
	"tigerc/types"
)

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// typeSlot is the mutable type annotation carried by expressions and
// declarations.  It starts out as `types.Undefined`.
type typeSlot struct {
	typ types.Type
}

func (ts *typeSlot) Type() types.Type {
	return ts.typ
}

func (ts *typeSlot) SetType(typ types.Type) {
	ts.typ = typ
}

// Typed is implemented by every node carrying a type slot.
type Typed interface {
	ASTNode

	Type() types.Type
	SetType(types.Type)
}
