package driver

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/source"
)

func runString(t *testing.T, input string, opts Options) (*Result, *diagnostics.AccumulatingConsumer) {
	t.Helper()
	buf, err := source.NewFromStdin(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error building buffer: %v", err)
	}
	consumer := diagnostics.NewAccumulatingConsumer()
	d := New(consumer, zap.NewNop().Sugar(), opts)
	return d.Run(buf), consumer
}

func TestRunCleanSourceProducesNoDiagnostics(t *testing.T) {
	result, diags := runString(t, "fn add(a: int, b: int) -> int:\n    return a + b\n", Options{})
	if len(diags.Messages) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags.Messages)
	}
	if !result.Checked {
		t.Fatal("expected semantics to run and pass")
	}
	if result.Tree == nil || result.Tokens == nil {
		t.Fatal("expected tokens and tree to be populated")
	}
}

func TestRunStopsAtLexerOnLexicalError(t *testing.T) {
	result, diags := runString(t, "let x: int = \"unterminated\n", Options{})
	if len(diags.Messages) == 0 {
		t.Fatal("expected a lexical diagnostic")
	}
	if result.Tree != nil {
		t.Fatal("expected parsing to be skipped after a lexer failure")
	}
}

func TestRunReachesSemanticsAndRejectsRedeclaration(t *testing.T) {
	result, _ := runString(t, "let x: int = 1;\nlet x: int = 2;\n", Options{})
	if result.Tree == nil {
		t.Fatal("expected a tree even though semantics rejected the program")
	}
	if result.Checked {
		t.Fatal("expected semantics to reject the redeclaration")
	}
}

func TestRunHonorsMaxErrors(t *testing.T) {
	result, diags := runString(t, "@ @ @ @ @\n", Options{MaxErrors: 1})
	if len(diags.Messages) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	if result.Tree != nil {
		t.Fatal("expected lexing to stop before parsing once the error cap was hit")
	}
}
