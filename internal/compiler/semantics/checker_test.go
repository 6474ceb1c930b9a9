package semantics

import (
	"strings"
	"testing"

	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/lexer"
	"github.com/btouchard/zivc/internal/compiler/parser"
	"github.com/btouchard/zivc/internal/compiler/source"
)

func checkSource(t *testing.T, input string) (bool, *diagnostics.AccumulatingConsumer) {
	t.Helper()
	buf, err := source.NewFromStdin(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error building source buffer: %v", err)
	}
	consumer := diagnostics.NewAccumulatingConsumer()
	emitter := diagnostics.NewEmitter(buf, consumer, diagnostics.NewPhaseContext())
	tokens := lexer.New(buf, emitter, 4).Lex()
	tree := parser.Parse(tokens, emitter)
	ok := NewChecker(tree, emitter).Check()
	return ok, consumer
}

func TestCheckAcceptsDistinctDeclarations(t *testing.T) {
	ok, diags := checkSource(t, "let x: int = 1;\nlet y: int = 2;\n")
	if !ok {
		t.Fatalf("expected check to pass, diagnostics: %v", diags.Messages)
	}
}

func TestCheckRejectsVariableRedeclaration(t *testing.T) {
	ok, diags := checkSource(t, "let x: int = 1;\nlet x: int = 2;\n")
	if ok {
		t.Fatal("expected check to fail on redeclaration")
	}
	if !diags.HasCode("ZIV-3001") {
		t.Errorf("expected VariableRedeclaration diagnostic, got %v", diags.Messages)
	}
}

func TestCheckAllowsShadowingInNestedFunctionScope(t *testing.T) {
	ok, diags := checkSource(t, "let x: int = 1;\nfn f(x: int) -> int:\n    return x\n")
	if !ok {
		t.Fatalf("expected check to pass, diagnostics: %v", diags.Messages)
	}
}

func TestCheckRejectsDuplicateParameterNames(t *testing.T) {
	ok, diags := checkSource(t, "fn f(a: int, a: int) -> int:\n    return a\n")
	if ok {
		t.Fatal("expected check to fail on duplicate parameter name")
	}
	if !diags.HasCode("ZIV-3001") {
		t.Errorf("expected VariableRedeclaration diagnostic, got %v", diags.Messages)
	}
}

func TestCheckRejectsFunctionRedeclaration(t *testing.T) {
	ok, diags := checkSource(t, "fn f() -> int:\n    return 1\nfn f() -> int:\n    return 2\n")
	if ok {
		t.Fatal("expected check to fail on function redeclaration")
	}
	if !diags.HasCode("ZIV-3001") {
		t.Errorf("expected VariableRedeclaration diagnostic, got %v", diags.Messages)
	}
}

func TestCheckFindsRedeclarationNestedInsideIfBlock(t *testing.T) {
	ok, _ := checkSource(t, "fn f() -> int:\n    if true { let x: int = 1; let x: int = 2; }\n    return 1\n")
	if ok {
		t.Fatal("expected check to fail on redeclaration nested inside an if-block")
	}
}
