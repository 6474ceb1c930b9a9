package diagnostics

import (
	"github.com/btouchard/zivc/internal/compiler/source"
)

// Emitter is bound to a single source buffer, a consumer, and the
// phase context the counters are recorded against.
type Emitter struct {
	buffer   *source.Buffer
	consumer Consumer
	phase    *PhaseContext
}

func NewEmitter(buf *source.Buffer, consumer Consumer, phase *PhaseContext) *Emitter {
	return &Emitter{buffer: buf, consumer: consumer, phase: phase}
}

// Emit looks up kind's registry metadata, formats the message
// template against args, fetches the source line the location points
// at, and hands the resulting Message to the consumer. It records the
// diagnostic's severity against the bound phase context.
func (e *Emitter) Emit(kind Kind, loc source.Location, args ...any) {
	meta := registry[kind]
	msg := formatTemplate(meta.template, args)

	var line string
	if e.buffer != nil {
		line = e.buffer.Line(loc.Line)
	}

	d := Diagnostic{Kind: kind, Location: loc, Message: msg}
	rendered := buildMessage(d, line)

	e.phase.record(meta.severity)
	e.consumer.Consume(rendered)
}

func (e *Emitter) Phase() *PhaseContext { return e.phase }
