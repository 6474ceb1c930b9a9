package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Consumer is the abstract sink a Emitter hands finished diagnostic
// messages to.
type Consumer interface {
	Consume(msg Message)
}

// ConsoleConsumer prints diagnostics to an io.Writer (normally
// os.Stderr) in the toolchain's human-readable format.
type ConsoleConsumer struct {
	out       io.Writer
	colorMode string // "auto", "always", "never"
}

// NewConsoleConsumer returns a consumer writing to w. colorMode
// controls fatih/color's behavior: "always" and "never" force color
// on or off; anything else leaves color auto-detection in place.
func NewConsoleConsumer(w io.Writer, colorMode string) *ConsoleConsumer {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	return &ConsoleConsumer{out: w, colorMode: colorMode}
}

func NewDefaultConsoleConsumer() *ConsoleConsumer {
	return NewConsoleConsumer(os.Stderr, "auto")
}

var (
	boldFn  = color.New(color.Bold).SprintFunc()
	errFn   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnFn  = color.New(color.FgYellow, color.Bold).SprintFunc()
	noteFn  = color.New(color.FgBlue).SprintFunc()
	helpFn  = color.New(color.FgGreen, color.Bold).SprintFunc()
	caretFn = color.New(color.FgRed, color.Bold).SprintFunc()
	docFn   = color.New(color.FgCyan).SprintFunc()
)

func severityText(s Severity) string {
	switch s {
	case Error:
		return errFn("error")
	case Warning:
		return warnFn("warning")
	case Note:
		return noteFn("note")
	default:
		return helpFn("help")
	}
}

// Consume renders msg in the toolchain's console format:
//
//  1. location, code, colored severity and message
//  2. the source line, indented
//  3. a caret under the offending column
//  4. an optional hint line
//  5. zero or more note lines
//  6. the documentation URL
func (c *ConsoleConsumer) Consume(msg Message) {
	fmt.Fprintf(c.out, "%s [%s]: %s: %s\n",
		boldFn(msg.Location.String()), msg.Code, severityText(msg.Severity), msg.Message)

	if msg.SourceLine != "" {
		fmt.Fprintf(c.out, "     %s\n", msg.SourceLine)
		col := msg.Location.Column - 1
		if col < 0 {
			col = 0
		}
		fmt.Fprintf(c.out, "     %s%s\n", strings.Repeat(" ", col), caretFn("^"))
	}

	if msg.Hint != "" {
		fmt.Fprintf(c.out, "%s: %s\n", helpFn("help"), msg.Hint)
	}
	for _, note := range msg.Notes {
		fmt.Fprintf(c.out, "%s: %s\n", noteFn("note"), note)
	}

	fmt.Fprintf(c.out, "%s %s\n\n", docFn("learn more:"), msg.DocURL)
}

// AccumulatingConsumer records every message it receives, in order.
// Tests use this in place of a ConsoleConsumer to assert on the
// diagnostics a pipeline produced without parsing console output.
type AccumulatingConsumer struct {
	Messages []Message
}

func NewAccumulatingConsumer() *AccumulatingConsumer {
	return &AccumulatingConsumer{}
}

func (c *AccumulatingConsumer) Consume(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// HasCode reports whether any accumulated message carries the given
// diagnostic code.
func (c *AccumulatingConsumer) HasCode(code string) bool {
	for _, m := range c.Messages {
		if m.Code == code {
			return true
		}
	}
	return false
}
