// Package generate lowers a bound and typed Tiger program into an LLVM module.
package generate

import (
	"fmt"

	"tigerc/ast"
	"tigerc/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"
)

// Options are the module-level settings copied onto the generated module.
type Options struct {
	// SourceFileName is the name of the file the program was read from.
	SourceFileName string

	// TargetTriple is the LLVM target triple.  It is omitted if empty.
	TargetTriple string

	// DataLayout is the LLVM data layout string.  It is omitted if empty.
	DataLayout string
}

// Generator is responsible for converting a typed Tiger program into LLVM IR.
// A generator generates a single module.
type Generator struct {
	rep *report.Reporter

	// mod is the LLVM module being generated.
	mod *ir.Module

	// funcs maps external names to their declared LLVM functions.  Runtime
	// primitives are only added when they are first called.
	funcs map[string]*ir.Func

	// pendingBodies is the queue of functions which have been declared but
	// whose bodies have not been generated yet.
	pendingBodies []*ast.FunDecl

	// frames stores the frame layout of every function with a body.
	frames map[*ast.FunDecl]*frame

	// allocations stores the stack slot of every non-escaping variable.
	allocations map[*ast.VarDecl]value.Value

	// loopExits stores the block that control jumps to when a loop is exited.
	loopExits map[ast.Loop]*ir.Block

	// strings stores the interned global for each string literal.
	strings map[string]constant.Constant

	// globalCounter is a counter used to generate anonymous globals such as
	// those for interned strings.
	globalCounter int

	// enclosingDecl is the declaration of the function being generated.
	enclosingDecl *ast.FunDecl

	// enclosingFunc is function enclosing the block being compiled.
	enclosingFunc *ir.Func

	// allocBlock is the entry block of the enclosing function: it only holds
	// allocations and jumps to the first block of the body once the body is
	// complete.
	allocBlock *ir.Block

	// framePtr is the frame allocated for the enclosing function.
	framePtr value.Value

	// block stores the current block begin generated.
	block *ir.Block
}

// NewGenerator creates a new generator.
func NewGenerator(rep *report.Reporter, opts Options) *Generator {
	mod := ir.NewModule()
	mod.SourceFilename = opts.SourceFileName
	mod.TargetTriple = opts.TargetTriple
	mod.DataLayout = opts.DataLayout

	return &Generator{
		rep:         rep,
		mod:         mod,
		funcs:       make(map[string]*ir.Func),
		frames:      make(map[*ast.FunDecl]*frame),
		allocations: make(map[*ast.VarDecl]value.Value),
		loopExits:   make(map[ast.Loop]*ir.Block),
		strings:     make(map[string]constant.Constant),
	}
}

// Generate generates the module for the `main` function produced by the binder.
// The program must have been type checked successfully: any error here is an
// internal compiler error.
func (g *Generator) Generate(main *ast.FunDecl) (mod *ir.Module, err error) {
	defer g.rep.CatchErrors(&err)

	g.declareFunc(main)

	// function bodies are generated in the order they were declared
	for len(g.pendingBodies) > 0 {
		fd := g.pendingBodies[0]
		g.pendingBodies = g.pendingBodies[1:]

		g.genFuncBody(fd)
	}

	return g.mod, nil
}

// -----------------------------------------------------------------------------

// appendBlock adds a new block to the enclosing function.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb%d", len(g.enclosingFunc.Blocks)))
}
