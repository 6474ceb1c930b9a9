// Package driver orchestrates the source -> lexer -> parser ->
// semantics pipeline the way cmd/gmx's main.go once orchestrated
// lexer -> parser -> resolver -> generator: read the input, run each
// stage in order, stop early when a stage says the pipeline shouldn't
// continue.
package driver

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/btouchard/zivc/internal/compiler/ast"
	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/lexer"
	"github.com/btouchard/zivc/internal/compiler/parser"
	"github.com/btouchard/zivc/internal/compiler/semantics"
	"github.com/btouchard/zivc/internal/compiler/source"
	"github.com/btouchard/zivc/internal/compiler/token"
)

// Options configures a single run of the pipeline.
type Options struct {
	IndentWidth int
	MaxErrors   int // soft cap; 0 means unbounded
}

// Result carries every artifact a caller might want to inspect or
// dump, regardless of how far the pipeline got before stopping.
type Result struct {
	Buffer  *source.Buffer
	Tokens  *token.Buffer
	Tree    *ast.Tree
	Phase   *diagnostics.PhaseContext
	Checked bool // true iff semantics ran and reported success
}

// Driver runs the pipeline against one source buffer, emitting
// diagnostics through consumer and phase timings through log.
type Driver struct {
	consumer diagnostics.Consumer
	log      *zap.SugaredLogger
	opts     Options
}

func New(consumer diagnostics.Consumer, log *zap.SugaredLogger, opts Options) *Driver {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 4
	}
	return &Driver{consumer: consumer, log: log, opts: opts}
}

// Run lexes, parses, and checks buf. It always returns the artifacts
// produced before any early stop, so a caller asking only for tokens
// (--lexer) still gets them even if semantics was never reached.
func (d *Driver) Run(buf *source.Buffer) *Result {
	phase := diagnostics.NewNonExitingPhaseContext()
	phase.SetMaxErrors(d.opts.MaxErrors)
	emit := diagnostics.NewEmitter(buf, d.consumer, phase)
	result := &Result{Buffer: buf, Phase: phase}

	tokens := d.lex(buf, emit, phase)
	result.Tokens = tokens
	if !phase.ShouldContinue() {
		return result
	}

	tree := d.parse(tokens, emit, phase)
	result.Tree = tree
	if !phase.ShouldContinue() {
		return result
	}

	result.Checked = d.check(tree, emit, phase)
	return result
}

func (d *Driver) lex(buf *source.Buffer, emit *diagnostics.Emitter, phase *diagnostics.PhaseContext) *token.Buffer {
	start := time.Now()
	guard := diagnostics.EnterPhase(phase, diagnostics.Lexing)
	defer guard.Exit()

	tokens := lexer.New(buf, emit, d.opts.IndentWidth).Lex()
	d.log.Debugw("lexing finished", "tokens", tokens.Len(), "elapsed", time.Since(start))
	return tokens
}

func (d *Driver) parse(tokens *token.Buffer, emit *diagnostics.Emitter, phase *diagnostics.PhaseContext) *ast.Tree {
	start := time.Now()
	guard := diagnostics.EnterPhase(phase, diagnostics.Parsing)
	defer guard.Exit()

	tree := parser.Parse(tokens, emit)
	d.log.Debugw("parsing finished", "nodes", tree.Size(), "elapsed", time.Since(start))
	return tree
}

func (d *Driver) check(tree *ast.Tree, emit *diagnostics.Emitter, phase *diagnostics.PhaseContext) bool {
	start := time.Now()
	guard := diagnostics.EnterPhase(phase, diagnostics.Semantics)
	defer guard.Exit()

	ok := semantics.NewChecker(tree, emit).Check()
	d.log.Debugw("semantic check finished", "ok", ok, "elapsed", time.Since(start))
	return ok
}

// Load reads filename through fs and wraps it in a Buffer, wrapping
// any failure the way the rest of the toolchain wraps plumbing errors
// (plain error, not a diagnostic, since there's no buffer yet to
// anchor one against).
func Load(fs source.FileSystem, filename string) (*source.Buffer, error) {
	buf, err := source.NewFromFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	return buf, nil
}
