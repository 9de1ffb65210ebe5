package parser

import "fmt"

// Errors accumulates human-readable validation messages. A single
// accumulator is shared across a validation chain so the caller can report
// every problem found in one pass.
type Errors struct {
	msgs []string
}

// Addf appends a formatted message
func (e *Errors) Addf(format string, args ...interface{}) {
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

// Messages returns all accumulated messages in order of discovery
func (e *Errors) Messages() []string {
	return e.msgs
}

// HasErrors reports whether anything was accumulated
func (e *Errors) HasErrors() bool {
	return len(e.msgs) > 0
}
