// Package resolve binds every name of a Tiger program to its declaration. It
// also computes function nesting: parents, depths, external names, and which
// variables escape into nested functions.
package resolve

import (
	"tigerc/ast"
	"tigerc/report"
)

// Binder is responsible for walking a program once and attaching declarations
// to every identifier, call, and break.  A binder binds a single program.
type Binder struct {
	rep *report.Reporter

	// The stack of scopes used to lookup declarations.  The first scope holds
	// the runtime primitives.
	scopes []scope

	// The stack of enclosing function declarations.
	functions []*ast.FunDecl

	// The function nesting depth of the current position.
	depth int

	// The stack of loops enclosing the current position within the current
	// function body.
	loops []ast.Loop

	// The set of for-loop indices: they may not be assigned to.
	loopIndices map[*ast.VarDecl]struct{}

	// The set of external names already given out.
	externalNames map[string]struct{}
}

// NewBinder creates a new binder whose outermost scope holds the runtime
// primitives.
func NewBinder(rep *report.Reporter) *Binder {
	b := &Binder{
		rep:           rep,
		loopIndices:   make(map[*ast.VarDecl]struct{}),
		externalNames: make(map[string]struct{}),
	}

	b.pushScope()
	b.enterPrimitives()

	return b
}

// BindProgram wraps a whole program inside a top-level `main` function
// returning `int` and binds it.  Non-fatal errors are reported to the
// reporter; the first fatal error aborts binding and is returned.
func (b *Binder) BindProgram(root ast.Expr) (*ast.FunDecl, error) {
	body := ast.NewSequence(root.Span(), root, ast.NewIntegerLiteral(nil, 0))
	main := ast.NewFunDecl(nil, "main", nil, "int", body, true)

	if err := b.bindTop(main); err != nil {
		return nil, err
	}

	return main, nil
}

// bindTop binds a top-level function and catches any fatal errors that occur.
func (b *Binder) bindTop(fd *ast.FunDecl) (err error) {
	defer b.rep.CatchErrors(&err)

	b.bindFunDecl(fd)
	return nil
}

// -----------------------------------------------------------------------------

// bindExpr binds an expression.
func (b *Binder) bindExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.IntegerLiteral, *ast.StringLiteral:
		// nothing to bind
	case *ast.BinaryOp:
		b.bindExpr(v.Lhs)
		b.bindExpr(v.Rhs)
	case *ast.Sequence:
		for _, sub := range v.Exprs {
			b.bindExpr(sub)
		}
	case *ast.Let:
		b.pushScope()
		b.bindDecls(v.Decls)
		b.bindExpr(v.Body)
		b.popScope()
	case *ast.Identifier:
		b.bindIdentifier(v)
	case *ast.IfThenElse:
		b.bindExpr(v.Cond)
		b.bindExpr(v.Then)
		b.bindExpr(v.Else)
	case *ast.WhileLoop:
		b.bindExpr(v.Cond)

		b.loops = append(b.loops, v)
		b.bindExpr(v.Body)
		b.loops = b.loops[:len(b.loops)-1]
	case *ast.ForLoop:
		// The bound is evaluated in the enclosing scope: it cannot see the
		// loop index.
		b.bindExpr(v.High)

		b.pushScope()
		b.bindVarDecl(v.Var)
		b.loopIndices[v.Var] = struct{}{}

		b.loops = append(b.loops, v)
		b.bindExpr(v.Body)
		b.loops = b.loops[:len(b.loops)-1]

		b.popScope()
	case *ast.Break:
		if len(b.loops) == 0 {
			b.error(v.Span(), "break must be inside a loop")
		}

		v.Loop = b.loops[len(b.loops)-1]
	case *ast.Assign:
		b.bindIdentifier(v.Lhs)

		if _, ok := b.loopIndices[v.Lhs.Decl]; ok {
			b.error(v.Lhs.Span(), "cannot assign to loop index `%s`", v.Lhs.Name)
		}

		b.bindExpr(v.Rhs)
	case *ast.FunCall:
		for _, arg := range v.Args {
			b.bindExpr(arg)
		}

		fd, ok := b.find(v.Span(), v.FuncName).(*ast.FunDecl)
		if !ok {
			b.error(v.Span(), "`%s` is not a function", v.FuncName)
		}

		v.Decl = fd
	default:
		report.ICE("binder: unknown expression %T", expr)
	}
}

// bindIdentifier resolves an identifier to a variable declaration and marks
// the declaration as escaping if it is referenced from a nested function.
func (b *Binder) bindIdentifier(id *ast.Identifier) {
	vd, ok := b.find(id.Span(), id.Name).(*ast.VarDecl)
	if !ok {
		b.error(id.Span(), "`%s` is not a variable", id.Name)
	}

	id.Decl = vd
	id.Depth = b.depth

	if vd.Depth != b.depth && !vd.Escapes {
		vd.Escapes = true
		vd.Owner.EscapingVars = append(vd.Owner.EscapingVars, vd)
	}
}

// -----------------------------------------------------------------------------

// bindDecls binds the declarations of a let block in order.  Consecutive
// function declarations are all entered before any of their bodies are bound
// so that they can reference each other.
func (b *Binder) bindDecls(decls []ast.Decl) {
	for i := 0; i < len(decls); {
		switch v := decls[i].(type) {
		case *ast.VarDecl:
			b.bindVarDecl(v)
			i++
		case *ast.FunDecl:
			j := i
			for ; j < len(decls); j++ {
				fd, ok := decls[j].(*ast.FunDecl)
				if !ok {
					break
				}

				b.enter(fd)
			}

			for _, decl := range decls[i:j] {
				b.bindFunDecl(decl.(*ast.FunDecl))
			}

			i = j
		default:
			report.ICE("binder: unknown declaration %T", decls[i])
		}
	}
}

// bindVarDecl binds a variable declaration.  The initializer is bound before
// the variable is entered: it cannot see the variable it initializes.
func (b *Binder) bindVarDecl(vd *ast.VarDecl) {
	if vd.Init != nil {
		b.bindExpr(vd.Init)
	}

	vd.Depth = b.depth
	vd.Owner = b.functions[len(b.functions)-1]
	b.enter(vd)
}

// bindFunDecl binds the parameters and body of a function declaration.  The
// function itself must already be entered in scope (except `main`).
func (b *Binder) bindFunDecl(fd *ast.FunDecl) {
	b.setParentAndExternalName(fd)

	b.functions = append(b.functions, fd)
	b.depth++
	fd.Depth = b.depth
	b.pushScope()

	// Loops outside of the function cannot be exited from inside it.
	enclosingLoops := b.loops
	b.loops = nil

	for _, param := range fd.Params {
		param.Depth = b.depth
		param.Owner = fd
		b.enter(param)
	}

	if fd.Body != nil {
		b.bindExpr(fd.Body)
	}

	b.loops = enclosingLoops
	b.popScope()
	b.depth--
	b.functions = b.functions[:len(b.functions)-1]
}

// setParentAndExternalName sets the parent of a function declaration and
// computes its unique external name.
func (b *Binder) setParentAndExternalName(fd *ast.FunDecl) {
	externalName := fd.Name
	if len(b.functions) > 0 {
		fd.Parent = b.functions[len(b.functions)-1]
		externalName = fd.Parent.ExternalName + "." + fd.Name
	}

	for {
		if _, ok := b.externalNames[externalName]; !ok {
			break
		}

		externalName += "_"
	}

	b.externalNames[externalName] = struct{}{}
	fd.ExternalName = externalName
}

// -----------------------------------------------------------------------------

// error reports a fatal error on the given span: binding of the program is
// aborted.
func (b *Binder) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}
