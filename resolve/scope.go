package resolve

import (
	"tigerc/ast"
	"tigerc/report"
)

// scope is a single flat mapping from names to declarations.
type scope map[string]ast.Decl

// pushScope pushes a new scope onto the scope stack.
func (b *Binder) pushScope() {
	b.scopes = append(b.scopes, make(scope))
}

// popScope removes the top scope from the scope stack.
func (b *Binder) popScope() {
	b.scopes = b.scopes[:len(b.scopes)-1]
}

// enter enters a declaration in the current scope.  A declaration whose name
// is already defined in that scope is reported as a non-fatal error and then
// replaces the previous declaration.
func (b *Binder) enter(decl ast.Decl) {
	currScope := b.scopes[len(b.scopes)-1]

	if prev, ok := currScope[decl.DeclName()]; ok {
		b.rep.ReportNonFatal(
			report.Raise(decl.Span(), "`%s` is already defined in this scope", decl.DeclName()).
				WithNote(prev.Span(), "previous declaration was here"),
		)
	}

	currScope[decl.DeclName()] = decl
}

// find looks up a declaration by name in all visible scopes.  If no
// declaration by the given name can be found, then a fatal error is raised.
func (b *Binder) find(span *report.TextSpan, name string) ast.Decl {
	// Traverse scopes in reverse order to implement shadowing.
	for i := len(b.scopes) - 1; i > -1; i-- {
		if decl, ok := b.scopes[i][name]; ok {
			return decl
		}
	}

	b.error(span, "`%s` cannot be found in this scope", name)
	return nil
}
