package diagnostics

import (
	"fmt"
	"strings"

	"github.com/btouchard/zivc/internal/compiler/source"
)

// Diagnostic is the raw event an Emitter hands to a Consumer: a kind,
// a location, and the formatted message text.
type Diagnostic struct {
	Kind     Kind
	Location source.Location
	Message  string
}

// Message is the enriched, render-ready form of a Diagnostic: the
// registry metadata plus the source line it points at.
type Message struct {
	Code       string
	Severity   Severity
	Location   source.Location
	Message    string
	SourceLine string
	Hint       string
	Notes      []string
	DocURL     string
}

const docBaseURL = "https://ziv-language.github.io/book/diagnostics/"

func formatTemplate(template string, args []any) string {
	msg := template
	for i, a := range args {
		placeholder := fmt.Sprintf("{%d}", i)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprint(a))
	}
	return msg
}

func buildMessage(d Diagnostic, line string) Message {
	meta := registry[d.Kind]
	return Message{
		Code:       meta.code,
		Severity:   meta.severity,
		Location:   d.Location,
		Message:    d.Message,
		SourceLine: line,
		Hint:       meta.hint,
		Notes:      meta.notes,
		DocURL:     docBaseURL + meta.docPath,
	}
}
