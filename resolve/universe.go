package resolve

import (
	"fmt"

	"tigerc/ast"
)

// PrimitivePrefix is prepended to the name of every runtime primitive to form
// its link name.  User functions never start with it: their external names
// are rooted at `main`.
const PrimitivePrefix = "__"

// primitive is the signature of a runtime library function.
type primitive struct {
	name       string
	typeName   string
	paramTypes []string
}

// primitives is the table of functions exposed by the runtime library.
var primitives = []primitive{
	{"print_err", "void", []string{"string"}},
	{"print", "void", []string{"string"}},
	{"print_int", "void", []string{"int"}},
	{"flush", "void", nil},
	{"getchar", "string", nil},
	{"ord", "int", []string{"string"}},
	{"chr", "string", []string{"int"}},
	{"size", "int", []string{"string"}},
	{"substring", "string", []string{"string", "int", "int"}},
	{"concat", "string", []string{"string", "string"}},
	{"strcmp", "int", []string{"string", "string"}},
	{"streq", "int", []string{"string", "string"}},
	{"not", "int", []string{"int"}},
	{"exit", "void", []string{"int"}},
}

// enterPrimitives declares all the runtime primitives in the current scope.
func (b *Binder) enterPrimitives() {
	for _, prim := range primitives {
		params := make([]*ast.VarDecl, len(prim.paramTypes))
		for i, typeName := range prim.paramTypes {
			params[i] = ast.NewParam(nil, fmt.Sprintf("a_%d", i), typeName)
		}

		fd := ast.NewFunDecl(nil, prim.name, params, prim.typeName, nil, true)
		fd.ExternalName = PrimitivePrefix + prim.name
		for _, param := range params {
			param.Owner = fd
		}

		b.enter(fd)
	}
}
