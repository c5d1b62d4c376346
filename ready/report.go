package ready

import (
	"os"
	"strconv"

	charmlog "github.com/charmbracelet/log"
)

// Component is the name reported in every Diagnostic.
const Component = "onready"

// Diagnostic describes a non-fatal problem found during Initialize.
type Diagnostic struct {
	Component string
	Member    string
	Type      string
	Path      string
}

// Message renders the diagnostic as one line of free text.
func (d Diagnostic) Message() string {
	return d.Component + ": property " + d.Member + " in " + d.Type +
		" is marked with path " + strconv.Quote(d.Path) + " but lacks a setter"
}

// Reporter receives diagnostics. Delivery is best effort.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

// Report implements Reporter.
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// LogReporter writes diagnostics as warnings to a charm logger.
type LogReporter struct {
	logger *charmlog.Logger
}

// NewLogReporter wraps logger. A nil logger falls back to DefaultReporter's logger.
func NewLogReporter(logger *charmlog.Logger) *LogReporter {
	if logger == nil {
		logger = newStderrLogger()
	}
	return &LogReporter{logger: logger}
}

// DefaultReporter writes warnings to stderr.
func DefaultReporter() *LogReporter {
	return NewLogReporter(nil)
}

// Report implements Reporter.
func (r *LogReporter) Report(d Diagnostic) {
	r.logger.Warn(d.Message(),
		"component", d.Component,
		"member", d.Member,
		"type", d.Type,
		"path", d.Path,
	)
}

func newStderrLogger() *charmlog.Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix:          Component,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           charmlog.WarnLevel,
	})
}
