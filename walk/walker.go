// Package walk performs type checking on a bound Tiger program.
package walk

import (
	"tigerc/ast"
	"tigerc/report"
	"tigerc/types"
)

// Walker is responsible for walking a bound program and assigning a type to
// every expression and declaration.  Any type error is fatal.
type Walker struct {
	rep *report.Reporter

	// funcStates stores the function declarations that have already been
	// walked or are in the process of being walked.  The value is a boolean
	// flag indicating whether or not the declaration is still being walked:
	// true if in progress, false if done.
	funcStates map[*ast.FunDecl]bool
}

// NewWalker creates a new walker.
func NewWalker(rep *report.Reporter) *Walker {
	return &Walker{
		rep:        rep,
		funcStates: make(map[*ast.FunDecl]bool),
	}
}

// WalkProgram type checks the `main` function produced by the binder and
// everything reachable from it.  The first type error is returned.
func (w *Walker) WalkProgram(main *ast.FunDecl) (err error) {
	defer w.rep.CatchErrors(&err)

	w.walkFunDecl(main)
	return nil
}

// -----------------------------------------------------------------------------

// setType sets the type of a node.  Types are written once: walking a node
// again must produce the same type.
func (w *Walker) setType(node ast.Typed, typ types.Type) types.Type {
	if prev := node.Type(); prev != types.Undefined && prev != typ {
		report.ICE("type of %T at %s changed from %s to %s", node, node.Span(), prev, typ)
	}

	node.SetType(typ)
	return typ
}

// lookupType returns the type named by a type name.
func (w *Walker) lookupType(span *report.TextSpan, name string) types.Type {
	typ, ok := types.Lookup(name)
	if !ok {
		w.error(span, "unknown type `%s`", name)
	}

	return typ
}

// error reports an error on the given span: type checking is aborted.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}
