package walk

import (
	"tigerc/ast"
	"tigerc/report"
	"tigerc/types"
)

// walkExpr walks an expression and returns its type.
func (w *Walker) walkExpr(expr ast.Expr) types.Type {
	switch v := expr.(type) {
	case *ast.IntegerLiteral:
		return w.setType(v, types.Int)
	case *ast.StringLiteral:
		return w.setType(v, types.String)
	case *ast.BinaryOp:
		return w.walkBinaryOp(v)
	case *ast.Sequence:
		return w.walkSequence(v)
	case *ast.Let:
		w.walkDecls(v.Decls)
		return w.setType(v, w.walkExpr(v.Body))
	case *ast.Identifier:
		return w.walkIdentifier(v)
	case *ast.IfThenElse:
		return w.walkIfThenElse(v)
	case *ast.WhileLoop:
		return w.walkWhileLoop(v)
	case *ast.ForLoop:
		return w.walkForLoop(v)
	case *ast.Break:
		return w.setType(v, types.Void)
	case *ast.Assign:
		return w.walkAssign(v)
	case *ast.FunCall:
		return w.walkFunCall(v)
	}

	report.ICE("walker: unknown expression %T", expr)
	return types.Undefined
}

// walkBinaryOp walks a binary operator application.  Both operands must have
// the same value type; arithmetic is only defined on integers.  Every
// operator yields an integer: comparisons yield 0 or 1.
func (w *Walker) walkBinaryOp(op *ast.BinaryOp) types.Type {
	lhsType := w.walkExpr(op.Lhs)
	rhsType := w.walkExpr(op.Rhs)

	if !lhsType.IsValue() {
		w.error(op.Lhs.Span(), "left operand of `%s` produces no value", op.Op)
	}

	if !rhsType.IsValue() {
		w.error(op.Rhs.Span(), "right operand of `%s` produces no value", op.Op)
	}

	if lhsType != rhsType {
		w.error(op.Span(), "operands of `%s` have different types: %s and %s", op.Op, lhsType, rhsType)
	}

	if op.Op.IsArithmetic() && lhsType != types.Int {
		w.error(op.Span(), "arithmetic operator `%s` cannot be applied to %s operands", op.Op, lhsType)
	}

	return w.setType(op, types.Int)
}

// walkSequence walks a sequence.  Its type is the type of its last expression
// or void if it is empty.
func (w *Walker) walkSequence(seq *ast.Sequence) types.Type {
	typ := types.Void
	for _, expr := range seq.Exprs {
		typ = w.walkExpr(expr)
	}

	return w.setType(seq, typ)
}

// walkIdentifier walks a variable reference.
func (w *Walker) walkIdentifier(id *ast.Identifier) types.Type {
	if id.Decl == nil {
		w.error(id.Span(), "unresolved identifier `%s`", id.Name)
	}

	if id.Decl.Type() == types.Undefined {
		report.ICE("variable `%s` referenced before its declaration was checked", id.Name)
	}

	return w.setType(id, id.Decl.Type())
}

// walkAssign walks an assignment.  The assigned value must have the type of
// the variable.
func (w *Walker) walkAssign(as *ast.Assign) types.Type {
	rhsType := w.walkExpr(as.Rhs)
	lhsType := w.walkIdentifier(as.Lhs)

	if lhsType != rhsType {
		w.error(as.Span(), "cannot assign value of type %s to `%s` of type %s", rhsType, as.Lhs.Name, lhsType)
	}

	return w.setType(as, types.Void)
}

// walkFunCall walks a function call.  Callees that have not been walked yet
// are walked on demand.
func (w *Walker) walkFunCall(call *ast.FunCall) types.Type {
	fd := call.Decl
	if fd == nil {
		w.error(call.Span(), "unresolved function `%s`", call.FuncName)
	}

	w.walkFunDecl(fd)

	if len(call.Args) != len(fd.Params) {
		w.error(call.Span(), "`%s` expects %d arguments but received %d", call.FuncName, len(fd.Params), len(call.Args))
	}

	for i, arg := range call.Args {
		argType := w.walkExpr(arg)
		if paramType := fd.Params[i].Type(); argType != paramType {
			w.error(
				arg.Span(),
				"argument %d of `%s` must be of type %s but has type %s",
				i+1,
				call.FuncName,
				paramType,
				argType,
			)
		}
	}

	return w.setType(call, fd.Type())
}
