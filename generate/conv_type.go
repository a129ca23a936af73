package generate

import (
	"tigerc/ast"
	"tigerc/report"
	ttypes "tigerc/types"

	"github.com/llir/llvm/ir/types"
)

// convType converts a Tiger type to its LLVM type.
func (g *Generator) convType(typ ttypes.Type) types.Type {
	switch typ {
	case ttypes.Int:
		return types.I32
	case ttypes.String:
		return types.I8Ptr
	case ttypes.Void:
		return types.Void
	}

	report.ICE("no LLVM type for %s", typ)
	return nil
}

// -----------------------------------------------------------------------------

// frame is the layout of the storage holding the escaping variables of a
// function.  A frame is allocated on each call of its function: nested
// functions reach it through their static link.
type frame struct {
	// typ is the named struct type of the frame.  If the function has a
	// parent, field 0 is the static link: a pointer to the parent's frame.
	typ *types.StructType

	// fields maps each escaping variable to its field index.
	fields map[*ast.VarDecl]int
}

// frameOf returns the frame layout of a function with a body, creating it if
// necessary.
func (g *Generator) frameOf(fd *ast.FunDecl) *frame {
	if fr, ok := g.frames[fd]; ok {
		return fr
	}

	fr := &frame{fields: make(map[*ast.VarDecl]int)}

	var fieldTypes []types.Type
	if hasStaticLink(fd) {
		fieldTypes = append(fieldTypes, types.NewPointer(g.frameOf(fd.Parent).typ))
	}

	for _, vd := range fd.EscapingVars {
		fr.fields[vd] = len(fieldTypes)
		fieldTypes = append(fieldTypes, g.convType(vd.Type()))
	}

	fr.typ = types.NewStruct(fieldTypes...)
	g.mod.NewTypeDef("ft."+fd.ExternalName, fr.typ)

	g.frames[fd] = fr
	return fr
}

// hasStaticLink returns whether a function receives a pointer to its parent's
// frame as its first parameter.
func hasStaticLink(fd *ast.FunDecl) bool {
	return fd.Body != nil && fd.Parent != nil
}
