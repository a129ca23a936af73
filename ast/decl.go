package ast

import (
	"tigerc/report"
)

// Decl represents a declaration.  The set of declarations is closed: every
// implementation lives in this file.
type Decl interface {
	Typed

	// DeclName returns the declared name.
	DeclName() string

	declNode()
}

// DeclBase is the base struct for all declarations.
type DeclBase struct {
	ASTBase
	typeSlot

	Name string
}

// NewDeclBase creates a new declaration base.
func NewDeclBase(span *report.TextSpan, name string) DeclBase {
	return DeclBase{ASTBase: NewASTBaseOn(span), Name: name}
}

func (db *DeclBase) DeclName() string {
	return db.Name
}

func (*DeclBase) declNode() {}

// -----------------------------------------------------------------------------

// VarDecl is a variable declaration.  It also represents function parameters
// (which have no initializer) and for-loop indices.
type VarDecl struct {
	DeclBase

	// TypeName is the declared type name.  It is empty if omitted.
	TypeName string

	// Init is the initializer.  It is nil for parameters.
	Init Expr

	// The function nesting depth of the declaration: set by the binder.
	Depth int

	// Whether the variable is accessed from a function nested inside its
	// owner: set by the binder.
	Escapes bool

	// The function whose frame holds the variable: set by the binder.
	Owner *FunDecl
}

// FunDecl is a function declaration.
type FunDecl struct {
	DeclBase

	Params []*VarDecl

	// TypeName is the declared return type name.  It is empty if omitted.
	TypeName string

	// Body is the function body.  It is nil for external functions.
	Body Expr

	// External functions are linked against rather than defined internally.
	External bool

	// The innermost enclosing function: set by the binder.
	Parent *FunDecl

	// The globally unique link name: set by the binder.
	ExternalName string

	// The function nesting depth of the body: set by the binder.
	Depth int

	// The variables owned by this function that escape into nested
	// functions, in the order they were found to escape: set by the binder.
	EscapingVars []*VarDecl
}
