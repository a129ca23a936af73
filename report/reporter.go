package report

import (
	"io"
	"sync"
	"time"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized: its methods can be safely called from multiple
// goroutines.  Each compilation owns its own reporter.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool

	// The writer messages are displayed to.
	out io.Writer

	// The absolute and representative paths to the source file.  The absolute
	// path is used to display source excerpts and may be empty.
	absPath, reprPath string

	// Every diagnostic reported so far, in order.
	diagnostics []*Diagnostic

	// The name and start time of the current phase.
	phase      string
	phaseStart time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames maps the command-line names of log levels to their values.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// Diagnostic is a single recorded compilation message.
type Diagnostic struct {
	// Fatal diagnostics aborted the pass that raised them.
	Fatal bool

	// Warning is set for warnings; all other diagnostics are errors.
	Warning bool

	Span    *TextSpan
	Message string
	Notes   []Note
}

// NewReporter creates a new reporter displaying to out at the given log level.
func NewReporter(logLevel int, out io.Writer) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		out:      out,
		reprPath: "<ast>",
	}
}

// SetSource sets the source file diagnostics refer to.  The absolute path may
// be empty if the source text is not available.
func (r *Reporter) SetSource(absPath, reprPath string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.absPath = absPath
	r.reprPath = reprPath
}

// -----------------------------------------------------------------------------

// ReportCompileError reports a non-fatal compilation error: ie. erroneous input
// code which does not prevent the current pass from continuing.
func (r *Reporter) ReportCompileError(span *TextSpan, message string, args ...interface{}) {
	r.ReportNonFatal(Raise(span, message, args...))
}

// ReportNonFatal records a non-fatal compile error.  The compilation is marked
// as failed.
func (r *Reporter) ReportNonFatal(cerr *CompileError) {
	r.record(cerr, false)
}

// ReportCompileWarning reports a compilation warning.
func (r *Reporter) ReportCompileWarning(span *TextSpan, message string, args ...interface{}) {
	cerr := Raise(span, message, args...)

	r.m.Lock()
	defer r.m.Unlock()

	r.diagnostics = append(r.diagnostics, &Diagnostic{
		Warning: true,
		Span:    cerr.Span,
		Message: cerr.Message,
	})

	if r.logLevel >= LogLevelWarn {
		r.displayCompileMessage("warning", WarnStyleBG, cerr)
	}
}

// record records a compile error and displays it if the log level permits.
func (r *Reporter) record(cerr *CompileError, fatal bool) {
	r.m.Lock()
	defer r.m.Unlock()

	r.isErr = true
	r.diagnostics = append(r.diagnostics, &Diagnostic{
		Fatal:   fatal,
		Span:    cerr.Span,
		Message: cerr.Message,
		Notes:   cerr.Notes,
	})

	if r.logLevel > LogLevelSilent {
		r.displayCompileMessage("error", ErrorStyleBG, cerr)
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.isErr
}

// Diagnostics returns all the diagnostics recorded so far.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.m.Lock()
	defer r.m.Unlock()

	return append([]*Diagnostic(nil), r.diagnostics...)
}

// -----------------------------------------------------------------------------

// CatchErrors catches any errors thrown by a `panic` during a pass of
// compilation and stores them in errp.  In effect, this handler determines
// where errors "unrecoverable" within a given pass should stop bubbling.
// Compile errors are recorded as fatal diagnostics; internal compiler errors
// are displayed and returned; any other panic is propagated.
// NB: This function must ALWAYS be deferred.
func (r *Reporter) CatchErrors(errp *error) {
	if x := recover(); x != nil {
		switch v := x.(type) {
		case *CompileError:
			r.record(v, true)
			*errp = v
		case *InternalError:
			r.m.Lock()
			r.isErr = true
			r.displayICE(v.Message)
			r.m.Unlock()

			*errp = v
		default:
			panic(x)
		}
	}
}

// -----------------------------------------------------------------------------

// BeginPhase marks the start of a compilation phase.  Phases are only
// displayed at the verbose log level.
func (r *Reporter) BeginPhase(phase string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.phase = phase
	r.phaseStart = time.Now()
}

// EndPhase marks the end of the current compilation phase.
func (r *Reporter) EndPhase() {
	r.m.Lock()
	defer r.m.Unlock()

	if r.phase == "" {
		return
	}

	if r.logLevel == LogLevelVerbose {
		r.displayPhase(r.phase, !r.isErr, time.Since(r.phaseStart))
	}

	r.phase = ""
}

// ReportInfo displays an informational message at the verbose log level.
func (r *Reporter) ReportInfo(tag, message string) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel == LogLevelVerbose {
		r.displayInfo(tag, message)
	}
}

// ReportError reports an error which is not attached to the program: eg. a
// file which could not be opened.  The compilation is marked as failed.
func (r *Reporter) ReportError(tag string, err error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.isErr = true

	if r.logLevel > LogLevelSilent {
		r.displayError(tag, err)
	}
}
