package diagnostics

import (
	"strings"
	"testing"

	"github.com/btouchard/zivc/internal/compiler/source"
)

func newTestBuffer(t *testing.T, content string) *source.Buffer {
	t.Helper()
	buf, err := source.NewFromStdin(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error building buffer: %v", err)
	}
	return buf
}

func TestEmitRecordsSeverityAndFormatsMessage(t *testing.T) {
	buf := newTestBuffer(t, "let s: string = \"hi\n")
	consumer := NewAccumulatingConsumer()
	phase := NewPhaseContext()
	e := NewEmitter(buf, consumer, phase)

	e.Emit(UnterminatedString, source.Location{File: "test.z", Line: 1, Column: 17})

	if phase.Errors() != 1 {
		t.Fatalf("Errors() = %d, want 1", phase.Errors())
	}
	if len(consumer.Messages) != 1 {
		t.Fatalf("len(Messages) = %d, want 1", len(consumer.Messages))
	}
	msg := consumer.Messages[0]
	if msg.Code != "ZIV-1002" {
		t.Errorf("Code = %q, want ZIV-1002", msg.Code)
	}
	if msg.SourceLine != `let s: string = "hi` {
		t.Errorf("SourceLine = %q", msg.SourceLine)
	}
	if msg.Hint == "" {
		t.Error("expected a hint for UnterminatedString")
	}
}

func TestEmitFormatsPositionalArgs(t *testing.T) {
	buf := newTestBuffer(t, "let x: int = 1;\n")
	consumer := NewAccumulatingConsumer()
	e := NewEmitter(buf, consumer, NewPhaseContext())

	e.Emit(VariableRedeclaration, source.Location{File: "test.z", Line: 1, Column: 5}, "x")

	if got := consumer.Messages[0].Message; got != "variable x is already declared in this scope" {
		t.Errorf("Message = %q", got)
	}
}

func TestShouldContinueAllowsParsingPastErrors(t *testing.T) {
	ctx := NewPhaseContext()
	EnterPhase(ctx, Parsing)
	ctx.record(Error)
	if !ctx.ShouldContinue() {
		t.Error("Parsing phase should continue past errors")
	}
}

func TestShouldContinueStopsLexingPastErrors(t *testing.T) {
	ctx := NewPhaseContext()
	EnterPhase(ctx, Lexing)
	ctx.record(Error)
	if ctx.ShouldContinue() {
		t.Error("Lexing phase should not continue past errors")
	}
}

func TestShouldContinueWithNoErrors(t *testing.T) {
	ctx := NewPhaseContext()
	EnterPhase(ctx, Semantics)
	if !ctx.ShouldContinue() {
		t.Error("no errors recorded, should continue")
	}
}

func TestAccumulatingConsumerHasCode(t *testing.T) {
	c := NewAccumulatingConsumer()
	c.Consume(Message{Code: "ZIV-1001"})
	if !c.HasCode("ZIV-1001") {
		t.Error("expected HasCode to find ZIV-1001")
	}
	if c.HasCode("ZIV-9999") {
		t.Error("did not expect HasCode to find ZIV-9999")
	}
}
