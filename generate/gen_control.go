package generate

import (
	"tigerc/ast"
	"tigerc/report"
	ttypes "tigerc/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genTruth converts an integer into a boolean: any non-zero value is true.
func (g *Generator) genTruth(val value.Value) value.Value {
	return g.block.NewICmp(enum.IPredNE, val, constant.NewInt(types.I32, 0))
}

// genIfThenElse generates a conditional.  If the conditional produces a value,
// each branch stores its value into a result slot which is read once both
// branches have joined.
func (g *Generator) genIfThenElse(ite *ast.IfThenElse) value.Value {
	var resultSlot value.Value
	if ite.Type() != ttypes.Void {
		resultSlot = g.allocBlock.NewAlloca(g.convType(ite.Type()))
	}

	condVal := g.genTruth(g.genExpr(ite.Cond))

	thenBlock := g.appendBlock()
	elseBlock := g.appendBlock()
	joinBlock := g.appendBlock()
	g.block.NewCondBr(condVal, thenBlock, elseBlock)

	for _, branch := range []struct {
		block *ir.Block
		body  ast.Expr
	}{{thenBlock, ite.Then}, {elseBlock, ite.Else}} {
		g.block = branch.block
		branchVal := g.genExpr(branch.body)
		if resultSlot != nil {
			g.block.NewStore(branchVal, resultSlot)
		}

		g.block.NewBr(joinBlock)
	}

	g.block = joinBlock

	if resultSlot != nil {
		return g.block.NewLoad(g.convType(ite.Type()), resultSlot)
	}

	return nil
}

// genWhileLoop generates a while loop.
func (g *Generator) genWhileLoop(loop *ast.WhileLoop) {
	testBlock := g.appendBlock()
	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()
	g.loopExits[loop] = endBlock

	g.block.NewBr(testBlock)

	g.block = testBlock
	condVal := g.genTruth(g.genExpr(loop.Cond))
	g.block.NewCondBr(condVal, bodyBlock, endBlock)

	g.block = bodyBlock
	g.genExpr(loop.Body)
	g.block.NewBr(testBlock)

	g.block = endBlock
}

// genForLoop generates a for loop.  The index is initialized and the upper
// bound is evaluated once before the loop is entered.
func (g *Generator) genForLoop(loop *ast.ForLoop) {
	g.genVarDecl(loop.Var)
	highVal := g.genExpr(loop.High)

	testBlock := g.appendBlock()
	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()
	g.loopExits[loop] = endBlock

	g.block.NewBr(testBlock)

	g.block = testBlock
	index := g.block.NewLoad(types.I32, g.slotOf(loop.Var))
	g.block.NewCondBr(g.block.NewICmp(enum.IPredSLE, index, highVal), bodyBlock, endBlock)

	g.block = bodyBlock
	g.genExpr(loop.Body)

	indexSlot := g.slotOf(loop.Var)
	index = g.block.NewLoad(types.I32, indexSlot)
	g.block.NewStore(g.block.NewAdd(index, constant.NewInt(types.I32, 1)), indexSlot)
	g.block.NewBr(testBlock)

	g.block = endBlock
}

// genBreak generates a jump to the exit of the loop a break exits.  Any code
// following the break is generated into a new, unreachable block.
func (g *Generator) genBreak(br *ast.Break) {
	exitBlock, ok := g.loopExits[br.Loop]
	if !ok {
		report.ICE("break to a loop that is not being generated")
	}

	g.block.NewBr(exitBlock)
	g.block = g.appendBlock()
}
