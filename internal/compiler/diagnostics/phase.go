package diagnostics

import (
	"fmt"
	"os"
)

// Phase identifies one stage of the compilation pipeline.
type Phase uint8

const (
	Lexing Phase = iota
	Parsing
	Semantics
)

func (p Phase) String() string {
	switch p {
	case Lexing:
		return "lexing"
	case Parsing:
		return "parsing"
	case Semantics:
		return "semantics"
	default:
		return "unknown"
	}
}

// PhaseContext tracks the current phase and running error/warning
// counts for a single compilation. Unlike the original process-global
// singleton, this is an explicit per-pipeline object so that multiple
// compilations can run concurrently without sharing state.
type PhaseContext struct {
	current   Phase
	errors    int
	warnings  int
	maxErrors int // 0 means unbounded
	exitFn    func(code int)
}

// NewPhaseContext returns a context whose PrintSummary calls os.Exit
// on unrecovered errors. Use this for a direct CLI entry point that
// has no further caller to report failure to.
func NewPhaseContext() *PhaseContext {
	return &PhaseContext{exitFn: os.Exit}
}

// NewNonExitingPhaseContext returns a context whose PrintSummary never
// terminates the process. The driver uses this: it reports failure
// through the Result it returns, and the caller (cmd/zivc, or a test)
// decides what to do about it.
func NewNonExitingPhaseContext() *PhaseContext {
	return &PhaseContext{exitFn: func(int) {}}
}

func (c *PhaseContext) Errors() int   { return c.errors }
func (c *PhaseContext) Warnings() int { return c.warnings }
func (c *PhaseContext) Phase() Phase  { return c.current }

// SetMaxErrors caps the number of errors ShouldContinue tolerates
// before reporting the phase must stop, regardless of phase. 0 (the
// default) leaves the cap unbounded.
func (c *PhaseContext) SetMaxErrors(n int) { c.maxErrors = n }

func (c *PhaseContext) record(sev Severity) {
	switch sev {
	case Error:
		c.errors++
	case Warning:
		c.warnings++
	}
}

// ShouldContinue reports whether the pipeline may proceed past the
// current phase: true unless errors have been recorded and the
// current phase is not Parsing. Parsing is allowed to continue past
// errors so the parser can surface as many diagnostics as possible in
// one pass.
func (c *PhaseContext) ShouldContinue() bool {
	if c.maxErrors > 0 && c.errors >= c.maxErrors {
		return false
	}
	if c.errors == 0 {
		return true
	}
	return c.current == Parsing
}

// PrintSummary reports total counts to stderr and exits the process
// with code 1 if any errors were recorded.
func (c *PhaseContext) PrintSummary() {
	if c.errors == 0 && c.warnings == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n", c.errors, c.warnings)
	if c.errors > 0 {
		c.exitFn(1)
	}
}

// PhaseGuard scopes a PhaseContext to a single phase. Enter sets the
// current phase; Exit prints a summary and, on a context built with
// NewPhaseContext, terminates the process if ShouldContinue is false
// once the phase has finished, mirroring the original's
// destructor-triggered check.
type PhaseGuard struct {
	ctx   *PhaseContext
	phase Phase
}

func EnterPhase(ctx *PhaseContext, phase Phase) *PhaseGuard {
	ctx.current = phase
	return &PhaseGuard{ctx: ctx, phase: phase}
}

func (g *PhaseGuard) Exit() {
	if !g.ctx.ShouldContinue() {
		g.ctx.PrintSummary()
	}
}
