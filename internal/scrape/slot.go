//go:build linux

package scrape

import (
	"time"

	"github.com/fis/nano-exporter/internal/httpproto"
	"github.com/fis/nano-exporter/pkg/bbuf"
)

// State is a request slot's position in its state machine.
type State int

const (
	StateInactive State = iota
	StateRead
	StateWriteHeaders
	StateWriteMetrics
	StateWriteError
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "INACTIVE"
	case StateRead:
		return "READ"
	case StateWriteHeaders:
		return "WRITE_HEADERS"
	case StateWriteMetrics:
		return "WRITE_METRICS"
	case StateWriteError:
		return "WRITE_ERROR"
	default:
		return "UNKNOWN"
	}
}

// slot is one request record. Slot 0's buffer is retained across
// connections; every other slot's buffer is allocated on first use and
// released on close.
type slot struct {
	state State
	fd    int

	parser *httpproto.Parser
	buf    *bbuf.Buffer

	// outgoing is the slice currently being drained to the socket; outOff
	// is how much of it has already been written.
	outgoing []byte
	outOff   int

	collectorIdx int
	deadline     time.Time

	// retainBuf is true only for slot 0: its buffer survives close.
	retainBuf bool
}

// Writable satisfies sink.WriteGate: collectors may only emit while the
// slot is actively streaming the metrics body.
func (s *slot) Writable() bool {
	return s.state == StateWriteMetrics
}

func (s *slot) reset(fd int, deadline time.Time, bufMax int) {
	s.fd = fd
	s.state = StateRead
	s.parser = httpproto.New()
	s.outgoing = nil
	s.outOff = 0
	s.collectorIdx = 0
	s.deadline = deadline

	if s.buf == nil {
		s.buf = bbuf.New(initialBufCap, bufMax)
	}
	s.buf.Reset()
}

func (s *slot) close() {
	if s.fd >= 0 {
		closeFd(s.fd)
	}
	s.fd = -1
	s.state = StateInactive
	s.parser = nil
	s.outgoing = nil
	s.outOff = 0
	if !s.retainBuf {
		s.buf = nil
	}
}

// remaining returns the unwritten tail of the current outgoing slice.
func (s *slot) remaining() []byte {
	return s.outgoing[s.outOff:]
}

// advanceOut records n more bytes written and reports whether the slice
// is now fully drained.
func (s *slot) advanceOut(n int) bool {
	s.outOff += n
	return s.outOff >= len(s.outgoing)
}
