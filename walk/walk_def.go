package walk

import (
	"tigerc/ast"
	"tigerc/report"
	"tigerc/types"
)

// walkDecls walks the declarations of a let block in order.  Functions that
// were already walked on demand by an earlier call are skipped.
func (w *Walker) walkDecls(decls []ast.Decl) {
	for _, decl := range decls {
		switch v := decl.(type) {
		case *ast.VarDecl:
			w.walkVarDecl(v)
		case *ast.FunDecl:
			w.walkFunDecl(v)
		default:
			report.ICE("walker: unknown declaration %T", decl)
		}
	}
}

// walkVarDecl walks a variable declaration and returns its type.  The type is
// the declared type if one is given and is otherwise inferred from the
// initializer.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) types.Type {
	if vd.Init == nil {
		w.error(vd.Span(), "variable `%s` must be initialized", vd.Name)
	}

	initType := w.walkExpr(vd.Init)

	if vd.TypeName == "" {
		if !initType.IsValue() {
			w.error(vd.Init.Span(), "cannot infer the type of `%s` from an expression producing no value", vd.Name)
		}

		return w.setType(vd, initType)
	}

	declType := w.lookupType(vd.Span(), vd.TypeName)
	if declType == types.Void {
		w.error(vd.Span(), "variable `%s` cannot be declared void", vd.Name)
	}

	if declType != initType {
		w.error(vd.Init.Span(), "cannot initialize `%s` of type %s with a value of type %s", vd.Name, declType, initType)
	}

	return w.setType(vd, declType)
}

// walkFunDecl walks a function declaration.  The function's type is fixed from
// its declaration before its body is walked: a recursive call made while the
// body is being walked uses that type rather than walking the body again.
func (w *Walker) walkFunDecl(fd *ast.FunDecl) {
	// Walked or being walked: its type is already set.
	if _, ok := w.funcStates[fd]; ok {
		return
	}

	w.funcStates[fd] = true

	rtType := types.Void
	if fd.TypeName != "" {
		rtType = w.lookupType(fd.Span(), fd.TypeName)
	}

	w.setType(fd, rtType)

	for _, param := range fd.Params {
		if param.TypeName == "" {
			w.error(param.Span(), "parameter `%s` of `%s` must have a type", param.Name, fd.Name)
		}

		paramType := w.lookupType(param.Span(), param.TypeName)
		if paramType == types.Void {
			w.error(param.Span(), "parameter `%s` of `%s` cannot be void", param.Name, fd.Name)
		}

		w.setType(param, paramType)
	}

	if fd.Body == nil {
		if !fd.External {
			w.error(fd.Span(), "function `%s` must have a body", fd.Name)
		}
	} else if fd.TypeName != "" {
		if rtType == types.Void {
			w.error(fd.Span(), "function `%s` cannot declare a void return type", fd.Name)
		}

		if bodyType := w.walkExpr(fd.Body); bodyType != rtType {
			w.error(fd.Body.Span(), "body of `%s` must be of type %s but has type %s", fd.Name, rtType, bodyType)
		}
	} else if bodyType := w.walkExpr(fd.Body); bodyType != types.Void {
		w.error(fd.Body.Span(), "procedure `%s` must not produce a value but its body has type %s", fd.Name, bodyType)
	}

	w.funcStates[fd] = false
}
