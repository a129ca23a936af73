package cmd

import (
	"io"
	"os"

	"tigerc/common"
	"tigerc/report"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `tigerc` CLI utility.
func Execute() {
	os.Exit(Run(os.Args, os.Stdout))
}

// Run runs the CLI with the given arguments (including the program name) and
// returns the process exit code.  All output is written to out.
func Run(args []string, out io.Writer) int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("tigerc", "tigerc checks Tiger programs and compiles them to LLVM IR", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile an AST file to LLVM IR", true)
	buildCmd.AddPrimaryArg("ast-path", "the path to the AST file to build", true)
	buildCmd.AddStringArg("profile", "p", "the path to the build profile", false)
	buildCmd.AddStringArg("output", "o", "the path to write the LLVM IR to", false)
	buildCmd.AddStringArg("source", "s", "the Tiger source file the AST was parsed from", false)

	checkCmd := cli.AddSubcommand("check", "check an AST file without generating code", true)
	checkCmd.AddPrimaryArg("ast-path", "the path to the AST file to check", true)
	checkCmd.AddStringArg("source", "s", "the Tiger source file the AST was parsed from", false)
	checkCmd.AddFlag("dump", "d", "print the program in Tiger syntax")

	initCmd := cli.AddSubcommand("init", "create a default build profile", true)
	initCmd.AddPrimaryArg("dir", "the directory to create the profile in", false)

	cli.AddSubcommand("version", "print the tigerc version", false)

	// the log level given on the command line overrides the profile
	logLevel := ""

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.NewReporter(report.LogLevelError, out).ReportError("Usage Error", err)
		return 1
	}

	if logLvlArg, ok := result.Arguments["loglevel"]; ok {
		logLevel = logLvlArg.(string)
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult, logLevel, out, false)
	case "check":
		return execBuildCommand(subResult, logLevel, out, true)
	case "init":
		return execInitCommand(subResult, out)
	case "version":
		report.NewReporter(report.LogLevelVerbose, out).ReportInfo("tigerc Version", common.TigerVersion)
	}

	return 0
}

// execBuildCommand executes the build and check subcommands and handles all
// errors.
func execBuildCommand(result *olive.ArgParseResult, logLevel string, out io.Writer, checkOnly bool) int {
	// extract CLI data
	astPath, _ := result.PrimaryArg()

	srcPath := ""
	if srcArgVal, ok := result.Arguments["source"]; ok {
		srcPath = srcArgVal.(string)
	}

	profile := DefaultProfile()
	if profArgVal, ok := result.Arguments["profile"]; ok {
		loadedProfile, err := LoadProfile(profArgVal.(string))
		if err != nil {
			report.NewReporter(report.LogLevelError, out).ReportError("Profile Error", err)
			return 1
		}

		profile = loadedProfile
	}

	if outArgVal, ok := result.Arguments["output"]; ok {
		profile.OutputPath = outArgVal.(string)
	}

	if logLevel != "" {
		profile.LogLevel = logLevel
	}

	if checkOnly {
		profile.Emit = EmitCheck
	}

	// initialize the reporter
	rep := report.NewReporter(report.LogLevelNames[profile.LogLevel], out)

	c, err := NewCompiler(rep, astPath, srcPath, profile)
	if err != nil {
		rep.ReportError("Path Error", err)
		return 1
	}

	ok := c.Analyze()

	if checkOnly && result.HasFlag("dump") {
		c.Dump(out)
	}

	if ok && profile.Emit == EmitLLVM {
		ok = c.Generate()
	}

	if !ok {
		return 1
	}

	return 0
}

// execInitCommand executes the `init` subcommand.
func execInitCommand(result *olive.ArgParseResult, out io.Writer) int {
	dir, ok := result.PrimaryArg()
	if !ok {
		workDir, err := os.Getwd()
		if err != nil {
			report.NewReporter(report.LogLevelError, out).ReportError("Path Error", err)
			return 1
		}

		dir = workDir
	}

	if err := InitProfile(dir); err != nil {
		report.NewReporter(report.LogLevelError, out).ReportError("Profile Init Error", err)
		return 1
	}

	return 0
}
