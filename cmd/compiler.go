package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tigerc/ast"
	"tigerc/common"
	"tigerc/generate"
	"tigerc/report"
	"tigerc/resolve"
	"tigerc/walk"
)

// Compiler represents the state of a single compilation: one program read from
// one AST file.
type Compiler struct {
	rep *report.Reporter

	// astAbsPath is the absolute path to the AST file being compiled.
	astAbsPath string

	// profile is current build profile of the compiler.
	profile *BuildProfile

	// root is the decoded program.
	root ast.Expr

	// main is the synthetic `main` function wrapping the program once it has
	// been bound.
	main *ast.FunDecl
}

// NewCompiler creates a new compiler.  The source path is the Tiger source
// file the AST was parsed from: it is only used to display source excerpts in
// diagnostics and may be empty.
func NewCompiler(rep *report.Reporter, astRelPath, srcRelPath string, profile *BuildProfile) (*Compiler, error) {
	astAbsPath, err := filepath.Abs(astRelPath)
	if err != nil {
		return nil, fmt.Errorf("error calculating absolute path: %w", err)
	}

	if srcRelPath == "" {
		rep.SetSource("", astRelPath)
	} else {
		srcAbsPath, err := filepath.Abs(srcRelPath)
		if err != nil {
			return nil, fmt.Errorf("error calculating absolute path: %w", err)
		}

		rep.SetSource(srcAbsPath, srcRelPath)
	}

	return &Compiler{
		rep:        rep,
		astAbsPath: astAbsPath,
		profile:    profile,
	}, nil
}

// Analyze runs the analysis phase of the compiler: the program is loaded,
// bound, and type checked.  It returns whether the program can be generated.
func (c *Compiler) Analyze() bool {
	if !c.load() {
		return false
	}

	c.rep.BeginPhase("Binding")
	main, err := resolve.NewBinder(c.rep).BindProgram(c.root)
	c.rep.EndPhase()
	if err != nil {
		return false
	}

	c.main = main

	// the checker still runs after non-fatal binding errors so that type
	// errors are reported in the same run
	c.rep.BeginPhase("Checking")
	err = walk.NewWalker(c.rep).WalkProgram(c.main)
	c.rep.EndPhase()
	if err != nil {
		return false
	}

	return !c.rep.AnyErrors()
}

// load decodes the AST file.
func (c *Compiler) load() bool {
	f, err := os.Open(c.astAbsPath)
	if err != nil {
		c.rep.ReportError("File Error", err)
		return false
	}
	defer f.Close()

	root, err := ast.Decode(f)
	if err != nil {
		c.rep.ReportError("AST Error", err)
		return false
	}

	c.root = root
	return true
}

// Generate runs the generation phase of the compiler and writes the LLVM
// module to the output path.  Analysis must have succeeded before this is
// called.
func (c *Compiler) Generate() bool {
	if c.main == nil || c.rep.AnyErrors() {
		report.ICE("generation requested for a program that failed analysis")
	}

	c.rep.BeginPhase("Generating")
	g := generate.NewGenerator(c.rep, generate.Options{
		SourceFileName: filepath.Base(c.astAbsPath),
		TargetTriple:   c.profile.TargetTriple,
		DataLayout:     c.profile.DataLayout,
	})
	mod, err := g.Generate(c.main)
	c.rep.EndPhase()
	if err != nil {
		return false
	}

	outPath := c.OutputPath()
	f, err := os.Create(outPath)
	if err != nil {
		c.rep.ReportError("Output Error", err)
		return false
	}
	defer f.Close()

	if _, err := mod.WriteTo(f); err != nil {
		c.rep.ReportError("Output Error", fmt.Errorf("error writing LLVM module: %w", err))
		return false
	}

	c.rep.ReportInfo("Output", outPath)
	return true
}

// OutputPath returns the path the LLVM module is written to.  If the profile
// does not specify one, it is the AST file path with the IR file extension.
func (c *Compiler) OutputPath() string {
	if c.profile.OutputPath != "" {
		return c.profile.OutputPath
	}

	return strings.TrimSuffix(c.astAbsPath, filepath.Ext(c.astAbsPath)) + common.IRFileExt
}

// Dump writes the decoded program in Tiger syntax.
func (c *Compiler) Dump(w io.Writer) {
	if c.root == nil {
		return
	}

	if err := ast.Print(w, c.root); err != nil {
		c.rep.ReportError("Output Error", err)
	}
}
