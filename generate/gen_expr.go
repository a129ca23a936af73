package generate

import (
	"fmt"

	"tigerc/ast"
	"tigerc/report"
	ttypes "tigerc/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr generates an expression into the current block and returns its
// value.  If the expression produces no value, `nil` is returned.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntegerLiteral:
		return constant.NewInt(types.I32, int64(v.Value))
	case *ast.StringLiteral:
		return g.genStringLit(v.Value)
	case *ast.BinaryOp:
		return g.genBinaryOp(v)
	case *ast.Sequence:
		var result value.Value
		for _, sub := range v.Exprs {
			result = g.genExpr(sub)
		}

		return result
	case *ast.Let:
		g.genDecls(v.Decls)
		return g.genExpr(v.Body)
	case *ast.Identifier:
		return g.block.NewLoad(g.convType(v.Type()), g.slotOf(v.Decl))
	case *ast.IfThenElse:
		return g.genIfThenElse(v)
	case *ast.WhileLoop:
		g.genWhileLoop(v)
		return nil
	case *ast.ForLoop:
		g.genForLoop(v)
		return nil
	case *ast.Break:
		g.genBreak(v)
		return nil
	case *ast.Assign:
		rhs := g.genExpr(v.Rhs)
		g.block.NewStore(rhs, g.slotOf(v.Lhs.Decl))
		return nil
	case *ast.FunCall:
		return g.genFunCall(v)
	}

	report.ICE("generator: unknown expression %T", expr)
	return nil
}

// genStringLit generates a string literal: the bytes are stored in a private,
// immutable global and the literal evaluates to a pointer to the first byte.
func (g *Generator) genStringLit(s string) value.Value {
	if str, ok := g.strings[s]; ok {
		return str
	}

	strBytes := g.mod.NewGlobalDef(fmt.Sprintf("str.%d", g.globalCounter), constant.NewCharArrayFromString(s+"\x00"))
	strBytes.Immutable = true
	strBytes.Linkage = enum.LinkagePrivate
	g.globalCounter++

	str := constant.NewBitCast(strBytes, types.I8Ptr)
	g.strings[s] = str
	return str
}

// intPredicates maps comparison operators to their signed integer predicates.
var intPredicates = map[ast.Operator]enum.IPred{
	ast.OpEq:  enum.IPredEQ,
	ast.OpNeq: enum.IPredNE,
	ast.OpLt:  enum.IPredSLT,
	ast.OpLe:  enum.IPredSLE,
	ast.OpGt:  enum.IPredSGT,
	ast.OpGe:  enum.IPredSGE,
}

// genBinaryOp generates a binary operator application.  Comparisons yield 0 or
// 1 as an `i32`; strings are compared by comparing the result of the runtime's
// `strcmp` against zero.
func (g *Generator) genBinaryOp(op *ast.BinaryOp) value.Value {
	lhs := g.genExpr(op.Lhs)
	rhs := g.genExpr(op.Rhs)

	switch op.Op {
	case ast.OpPlus:
		return g.block.NewAdd(lhs, rhs)
	case ast.OpMinus:
		return g.block.NewSub(lhs, rhs)
	case ast.OpTimes:
		return g.block.NewMul(lhs, rhs)
	case ast.OpDivide:
		return g.block.NewSDiv(lhs, rhs)
	}

	pred, ok := intPredicates[op.Op]
	if !ok {
		report.ICE("generator: unknown operator %s", op.Op)
	}

	if op.Lhs.Type() == ttypes.String {
		strcmp := g.declareRuntime("strcmp", types.I32, types.I8Ptr, types.I8Ptr)
		lhs = g.block.NewCall(strcmp, lhs, rhs)
		rhs = constant.NewInt(types.I32, 0)
	}

	cmp := g.block.NewICmp(pred, lhs, rhs)
	return g.block.NewZExt(cmp, types.I32)
}

// genFunCall generates a function call.  Nested functions are passed the frame
// of their parent as their first argument.
func (g *Generator) genFunCall(call *ast.FunCall) value.Value {
	llvmFunc := g.declareFunc(call.Decl)

	var args []value.Value
	if hasStaticLink(call.Decl) {
		args = append(args, g.framePtrOf(call.Decl.Parent))
	}

	for _, arg := range call.Args {
		args = append(args, g.genExpr(arg))
	}

	result := g.block.NewCall(llvmFunc, args...)
	if call.Decl.Type() == ttypes.Void {
		return nil
	}

	return result
}
