package walk

import (
	"tigerc/ast"
	"tigerc/types"
)

// walkIfThenElse walks a conditional.  A conditional with an else branch
// yields the common type of its branches.  A conditional without one is a
// statement: its then branch must not produce a value.
func (w *Walker) walkIfThenElse(ite *ast.IfThenElse) types.Type {
	if condType := w.walkExpr(ite.Cond); condType != types.Int {
		w.error(ite.Cond.Span(), "condition must be of type int but has type %s", condType)
	}

	thenType := w.walkExpr(ite.Then)
	elseType := w.walkExpr(ite.Else)

	if !ite.HasElse() {
		if thenType != types.Void {
			w.error(ite.Then.Span(), "if without else must not produce a value but then branch has type %s", thenType)
		}

		return w.setType(ite, types.Void)
	}

	if thenType != elseType {
		w.error(ite.Span(), "then and else branches have different types: %s and %s", thenType, elseType)
	}

	return w.setType(ite, thenType)
}

// walkWhileLoop walks a while loop.
func (w *Walker) walkWhileLoop(loop *ast.WhileLoop) types.Type {
	if condType := w.walkExpr(loop.Cond); condType != types.Int {
		w.error(loop.Cond.Span(), "condition must be of type int but has type %s", condType)
	}

	w.walkLoopBody(loop.Body)
	return w.setType(loop, types.Void)
}

// walkForLoop walks a for loop.
func (w *Walker) walkForLoop(loop *ast.ForLoop) types.Type {
	if indexType := w.walkVarDecl(loop.Var); indexType != types.Int {
		w.error(loop.Var.Init.Span(), "loop index `%s` must be of type int but has type %s", loop.Var.Name, indexType)
	}

	if highType := w.walkExpr(loop.High); highType != types.Int {
		w.error(loop.High.Span(), "loop bound must be of type int but has type %s", highType)
	}

	w.walkLoopBody(loop.Body)
	return w.setType(loop, types.Void)
}

// walkLoopBody walks the body of a loop which must not produce a value.
func (w *Walker) walkLoopBody(body ast.Expr) {
	if bodyType := w.walkExpr(body); bodyType != types.Void {
		w.error(body.Span(), "loop body must not produce a value but has type %s", bodyType)
	}
}
