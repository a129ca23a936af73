package generate

import (
	"tigerc/ast"
	"tigerc/report"
	"tigerc/resolve"
	ttypes "tigerc/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// genDecls generates the declarations of a let block in order.
func (g *Generator) genDecls(decls []ast.Decl) {
	for _, decl := range decls {
		switch v := decl.(type) {
		case *ast.VarDecl:
			g.genVarDecl(v)
		case *ast.FunDecl:
			g.declareFunc(v)
		default:
			report.ICE("generator: unknown declaration %T", decl)
		}
	}
}

// genVarDecl generates a variable declaration: its initializer is stored into
// the variable's slot.
func (g *Generator) genVarDecl(vd *ast.VarDecl) {
	initVal := g.genExpr(vd.Init)
	g.block.NewStore(initVal, g.slotOf(vd))
}

// declareFunc declares the LLVM function for a function declaration if it has
// not already been declared.  The body, if any, is queued to be generated
// once the current function is complete.
func (g *Generator) declareFunc(fd *ast.FunDecl) *ir.Func {
	if llvmFunc, ok := g.funcs[fd.ExternalName]; ok {
		return llvmFunc
	}

	var params []*ir.Param
	if hasStaticLink(fd) {
		params = append(params, ir.NewParam(".sl", types.NewPointer(g.frameOf(fd.Parent).typ)))
	}

	// parameters are left unnamed: Tiger names could collide with block names
	for _, param := range fd.Params {
		params = append(params, ir.NewParam("", g.convType(param.Type())))
	}

	llvmFunc := g.mod.NewFunc(fd.ExternalName, g.convType(fd.Type()), params...)
	if fd.External {
		llvmFunc.Linkage = enum.LinkageExternal
	} else {
		llvmFunc.Linkage = enum.LinkageInternal
	}

	g.funcs[fd.ExternalName] = llvmFunc

	if fd.Body != nil {
		// Tiger has no exceptions
		llvmFunc.FuncAttrs = append(llvmFunc.FuncAttrs, enum.FuncAttrNoUnwind)

		g.pendingBodies = append(g.pendingBodies, fd)
	}

	return llvmFunc
}

// declareRuntime declares a runtime primitive used by generated code that does
// not appear in the program itself.  If the program also calls the primitive,
// both share the same declaration.
func (g *Generator) declareRuntime(name string, rtType types.Type, paramTypes ...types.Type) *ir.Func {
	name = resolve.PrimitivePrefix + name
	if llvmFunc, ok := g.funcs[name]; ok {
		return llvmFunc
	}

	params := make([]*ir.Param, len(paramTypes))
	for i, typ := range paramTypes {
		params[i] = ir.NewParam("", typ)
	}

	llvmFunc := g.mod.NewFunc(name, rtType, params...)
	llvmFunc.Linkage = enum.LinkageExternal

	g.funcs[name] = llvmFunc
	return llvmFunc
}

// -----------------------------------------------------------------------------

// genFuncBody generates the body of a declared function.
func (g *Generator) genFuncBody(fd *ast.FunDecl) {
	llvmFunc := g.funcs[fd.ExternalName]

	g.enclosingDecl = fd
	g.enclosingFunc = llvmFunc
	g.allocBlock = llvmFunc.NewBlock("entry")
	g.block = g.appendBlock()
	bodyStart := g.block

	fr := g.frameOf(fd)
	g.framePtr = g.allocBlock.NewAlloca(fr.typ)

	params := llvmFunc.Params
	if hasStaticLink(fd) {
		linkPtr := g.block.NewGetElementPtr(fr.typ, g.framePtr, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
		g.block.NewStore(params[0], linkPtr)
		params = params[1:]
	}

	// parameters are mutable: they are copied into slots like any variable
	for i, param := range fd.Params {
		g.block.NewStore(params[i], g.slotOf(param))
	}

	result := g.genExpr(fd.Body)
	if fd.Type() == ttypes.Void {
		result = nil
	}

	// NewRet with nil generates `ret void`
	g.block.NewRet(result)

	g.allocBlock.NewBr(bodyStart)
}
