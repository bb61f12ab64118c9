package driver

import (
	"fmt"

	"github.com/lumenlang/lumenc/internal/srcpos"
)

// Severity distinguishes the two counters the global context keeps
// (§3): only Error increments the counter the scheduler checks between
// passes.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single front-end report, produced by a pass and
// recorded against the Context. It is the driver's equivalent of the
// teacher's ParsingError: a message plus the Span it occurred at.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     srcpos.Span
	Module   string // dotted module path, empty for driver-level diagnostics
}

func (d Diagnostic) Error() string {
	if d.Module != "" {
		return fmt.Sprintf("%s: %s @ %s (%s)", d.Severity, d.Message, d.Span, d.Module)
	}
	return fmt.Sprintf("%s: %s @ %s", d.Severity, d.Message, d.Span)
}

// AddDiagnostic records d and, if it's an Error, increments the global
// error counter the scheduler inspects after every pass.
func (c *Context) AddDiagnostic(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	switch d.Severity {
	case SeverityError:
		c.nerrors++
	case SeverityWarning:
		c.nwarnings++
	}
}

// Errors returns the number of errors recorded since the last
// compilation started. Per §7, the scheduler never resets this mid
// compile; it is only meaningful as "has anything failed yet".
func (c *Context) Errors() int { return c.nerrors }

// Warnings returns the number of warnings recorded.
func (c *Context) Warnings() int { return c.nwarnings }

// HasErrors reports whether any Error-severity diagnostic has been
// recorded.
func (c *Context) HasErrors() bool { return c.nerrors > 0 }

// Diagnostics returns every diagnostic recorded so far, in report
// order.
func (c *Context) Diagnostics() []Diagnostic { return c.diagnostics }
