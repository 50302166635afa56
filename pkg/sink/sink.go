// Package sink defines the write-only API collectors use to emit samples
// into the request currently being served.
package sink

import "github.com/fis/nano-exporter/pkg/bbuf"

// Label is one (key, value) pair attached to a metric sample.
//
// Sink does not escape label values. Collectors MUST only emit labels
// whose values contain none of '"', '\' or '\n' — this is a collector
// precondition, not something the sink enforces.
type Label struct {
	Key   string
	Value string
}

// Sink is handed to a collector for the duration of one Collect call.
type Sink interface {
	// Emit appends one exposition-format line: name{k="v",...} value\n.
	// Braces are omitted when labels is empty. Outside the metric-writing
	// phase of the request this is a silent no-op.
	Emit(name string, labels []Label, value float64)

	// EmitRaw appends uninterpreted bytes verbatim. The caller is
	// responsible for well-formedness (newline-terminated lines).
	// Outside the metric-writing phase this is a silent no-op.
	EmitRaw(b []byte)
}

// WriteGate reports whether a sink should currently accept writes. The
// request slot implements this so the sink can defensively no-op calls
// made outside the metric-writing phase.
type WriteGate interface {
	Writable() bool
}

// bufSink is the concrete Sink bound to a single request's buffer for the
// duration of the WRITE_METRICS phase.
type bufSink struct {
	buf   *bbuf.Buffer
	state WriteGate
}

// New returns a Sink that appends into buf, but only while state reports
// writable (the request is in its metric-writing phase); otherwise every
// call is a silent no-op, per the sink contract.
func New(buf *bbuf.Buffer, state WriteGate) Sink {
	return &bufSink{buf: buf, state: state}
}

func (s *bufSink) Emit(name string, labels []Label, value float64) {
	if s.state != nil && !s.state.Writable() {
		return
	}

	s.buf.AppendString(name)
	if len(labels) > 0 {
		s.buf.AppendByte('{')
		for i, l := range labels {
			if i > 0 {
				s.buf.AppendByte(',')
			}
			s.buf.AppendString(l.Key)
			s.buf.AppendString(`="`)
			s.buf.AppendString(l.Value)
			s.buf.AppendByte('"')
		}
		s.buf.AppendByte('}')
	}
	s.buf.AppendByte(' ')
	s.buf.AppendFormat("%.16g", value)
	s.buf.AppendByte('\n')
}

func (s *bufSink) EmitRaw(b []byte) {
	if s.state != nil && !s.state.Writable() {
		return
	}
	s.buf.AppendBytes(b)
}

// AlwaysWritable is a WriteGate that is always writable; useful for unit
// tests of collectors that do not need request-state gating.
type AlwaysWritable struct{}

func (AlwaysWritable) Writable() bool { return true }

// NewAlways returns a Sink bound to buf that is always in write mode.
func NewAlways(buf *bbuf.Buffer) Sink {
	return New(buf, AlwaysWritable{})
}
