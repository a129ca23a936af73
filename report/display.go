package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	NoteStyleBG    = pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	InfoColorFG    = pterm.FgLightGreen
)

// displayICE displays an internal compiler error message.
func (r *Reporter) displayICE(message string) {
	fmt.Fprintf(r.out, "%s %s\n", ErrorStyleBG.Sprint("internal compiler error"), message)
	fmt.Fprint(r.out, "This error was not supposed to happen: please file a bug report\n\n")
}

// displayError displays a tagged error message.
func (r *Reporter) displayError(tag string, err error) {
	fmt.Fprintf(r.out, "%s %s\n", ErrorStyleBG.Sprint(tag), ErrorColorFG.Sprint(err.Error()))
}

// displayInfo displays a tagged informational message.
func (r *Reporter) displayInfo(tag, message string) {
	fmt.Fprintf(r.out, "%s %s\n", SuccessStyleBG.Sprint(tag), InfoColorFG.Sprint(message))
}

// displayPhase displays the conclusion of a compilation phase.
func (r *Reporter) displayPhase(phase string, ok bool, elapsed time.Duration) {
	if ok {
		fmt.Fprintf(r.out, "%s %s (%s)\n", SuccessStyleBG.Sprint("Done"), phase, elapsed.Round(time.Microsecond))
	} else {
		fmt.Fprintf(r.out, "%s %s (%s)\n", ErrorStyleBG.Sprint("Fail"), phase, elapsed.Round(time.Microsecond))
	}
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func (r *Reporter) displayCompileMessage(label string, labelStyle *pterm.Style, cerr *CompileError) {
	r.displayMessageAt(label, labelStyle, cerr.Span, cerr.Message)

	for _, note := range cerr.Notes {
		r.displayMessageAt("note", NoteStyleBG, note.Span, note.Message)
	}
}

func (r *Reporter) displayMessageAt(label string, labelStyle *pterm.Style, span *TextSpan, message string) {
	if span == nil {
		fmt.Fprintf(r.out, "%s: %s %s\n\n", r.reprPath, labelStyle.Sprint(label), message)
		return
	}

	fmt.Fprintf(r.out, "%s:%d:%d: %s %s\n\n", r.reprPath, span.StartLine+1, span.StartCol+1, labelStyle.Sprint(label), message)

	if r.absPath != "" {
		r.displaySourceText(span)
	}
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span.
// Excerpts are best-effort: an unreadable source file displays nothing.
func (r *Reporter) displaySourceText(span *TextSpan) {
	file, err := os.Open(r.absPath)
	if err != nil {
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprint(r.out, InfoColorFG.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Fprintln(r.out, line[minIndent:])
		fmt.Fprint(r.out, strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and
		// continues from the line start on every following line.
		carretPrefixCount := 0
		if i == 0 {
			carretPrefixCount = span.StartCol - minIndent
		}

		// Underlining stops at the end column on the last line.
		carretSuffixCount := 0
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol - 1
		}

		carretCount := len(line) - carretSuffixCount - carretPrefixCount - minIndent
		if carretPrefixCount < 0 || carretCount < 1 {
			fmt.Fprintln(r.out)
			continue
		}

		fmt.Fprint(r.out, strings.Repeat(" ", carretPrefixCount))
		fmt.Fprintln(r.out, ErrorColorFG.Sprint(strings.Repeat("^", carretCount)))
	}

	fmt.Fprintln(r.out)
}
