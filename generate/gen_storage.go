package generate

import (
	"tigerc/ast"
	"tigerc/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// slotOf returns a pointer to the storage of a variable.  Non-escaping
// variables live in a stack slot of their function which is allocated the
// first time the variable is seen.  Escaping variables live in a field of
// their owner's frame.
func (g *Generator) slotOf(vd *ast.VarDecl) value.Value {
	if vd.Escapes {
		fr := g.frameOf(vd.Owner)
		index, ok := fr.fields[vd]
		if !ok {
			report.ICE("escaping variable `%s` has no frame field in `%s`", vd.Name, vd.Owner.ExternalName)
		}

		return g.block.NewGetElementPtr(
			fr.typ,
			g.framePtrOf(vd.Owner),
			constant.NewInt(types.I32, 0),
			constant.NewInt(types.I32, int64(index)),
		)
	}

	if slot, ok := g.allocations[vd]; ok {
		return slot
	}

	if vd.Owner != g.enclosingDecl {
		report.ICE("non-escaping variable `%s` accessed outside of `%s`", vd.Name, vd.Owner.ExternalName)
	}

	slot := g.allocBlock.NewAlloca(g.convType(vd.Type()))
	g.allocations[vd] = slot
	return slot
}

// framePtrOf returns a pointer to the frame of an enclosing function by
// following the chain of static links from the current function.
func (g *Generator) framePtrOf(target *ast.FunDecl) value.Value {
	ptr := g.framePtr
	for fd := g.enclosingDecl; fd != target; fd = fd.Parent {
		if fd.Parent == nil {
			report.ICE("`%s` does not enclose `%s`", target.ExternalName, g.enclosingDecl.ExternalName)
		}

		linkPtr := g.block.NewGetElementPtr(
			g.frameOf(fd).typ,
			ptr,
			constant.NewInt(types.I32, 0),
			constant.NewInt(types.I32, 0),
		)

		ptr = g.block.NewLoad(types.NewPointer(g.frameOf(fd.Parent).typ), linkPtr)
	}

	return ptr
}
