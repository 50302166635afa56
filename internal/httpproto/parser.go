// Package httpproto implements the hand-rolled, byte-at-a-time HTTP/1.1
// request-line parser the scrape server drives from its nonblocking read
// path. It accepts exactly "GET /metrics HTTP/1.1\r\n" followed by any
// number of header lines, terminated by a blank line. Nothing else is
// HTTP-compliant here on purpose: there is no body, no other method, no
// other path, and no version negotiation.
package httpproto

// Field size limits: the next byte past the limit rejects the request
// rather than truncating the field.
const (
	MaxMethodLen  = 16
	MaxPathLen    = 128
	MaxVersionLen = 16
)

const (
	wantMethod  = "GET"
	wantPath    = "/metrics"
	wantVersion = "HTTP/1.1"
)

// State names the parser's current sub-state.
type State int

const (
	StateStart State = iota
	StatePath
	StateVersion
	StateHdr1
	StateHdr2
	StateAccepted
	StateRejected
)

// Status is the outcome of feeding one byte to the parser.
type Status int

const (
	// Continue means the parser needs more bytes.
	Continue Status = iota
	// Accept means the request line and headers are complete and valid.
	Accept
	// Reject means the request is malformed; the caller should write the
	// 400 response and close.
	Reject
)

// Parser is a single-request HTTP request-line+headers recognizer. It
// holds no socket state; the caller feeds it bytes as they arrive from a
// nonblocking read and acts on the returned Status.
type Parser struct {
	state State
	field []byte
}

// New returns a Parser ready to read the start of a request.
func New() *Parser {
	return &Parser{state: StateStart, field: make([]byte, 0, MaxPathLen)}
}

// State reports the parser's current sub-state, useful for diagnostics.
func (p *Parser) State() State {
	return p.state
}

// Feed advances the parser by one byte and returns the resulting status.
// Once Accept or Reject is returned, further calls keep returning the
// same terminal status without side effects.
func (p *Parser) Feed(c byte) Status {
	if p.state == StateAccepted {
		return Accept
	}
	if p.state == StateRejected {
		return Reject
	}

	// Carriage returns are dropped throughout, uniformly.
	if c == '\r' {
		return Continue
	}

	switch p.state {
	case StateStart:
		return p.feedStart(c)
	case StatePath:
		return p.feedPath(c)
	case StateVersion:
		return p.feedVersion(c)
	case StateHdr1:
		return p.feedHdr1(c)
	case StateHdr2:
		return p.feedHdr2(c)
	default:
		return p.reject()
	}
}

// FeedBytes feeds an entire chunk, stopping early if the parser reaches a
// terminal status. It returns that status and the number of bytes
// actually consumed from b.
func (p *Parser) FeedBytes(b []byte) (Status, int) {
	for i, c := range b {
		if st := p.Feed(c); st != Continue {
			return st, i + 1
		}
	}
	return Continue, len(b)
}

func (p *Parser) accept() Status {
	p.state = StateAccepted
	return Accept
}

func (p *Parser) reject() Status {
	p.state = StateRejected
	return Reject
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// isPrintableNonSpace excludes control chars, DEL, and space: the C
// locale's isgraph().
func isPrintableNonSpace(c byte) bool {
	return c > 0x20 && c < 0x7f
}

// isPrintable excludes control chars and DEL but allows space.
func isPrintable(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

func (p *Parser) feedStart(c byte) Status {
	if c == ' ' {
		ok := string(p.field) == wantMethod
		p.field = p.field[:0]
		if !ok {
			return p.reject()
		}
		p.state = StatePath
		return Continue
	}
	if !isAlnum(c) {
		return p.reject()
	}
	if len(p.field) >= MaxMethodLen {
		return p.reject()
	}
	p.field = append(p.field, c)
	return Continue
}

func (p *Parser) feedPath(c byte) Status {
	if c == ' ' {
		ok := string(p.field) == wantPath
		p.field = p.field[:0]
		if !ok {
			return p.reject()
		}
		p.state = StateVersion
		return Continue
	}
	if c == '\n' || !isPrintable(c) {
		return p.reject()
	}
	if len(p.field) >= MaxPathLen {
		return p.reject()
	}
	p.field = append(p.field, c)
	return Continue
}

func (p *Parser) feedVersion(c byte) Status {
	if c == '\n' {
		ok := string(p.field) == wantVersion
		p.field = p.field[:0]
		if !ok {
			return p.reject()
		}
		p.state = StateHdr1
		return Continue
	}
	if !isPrintableNonSpace(c) {
		return p.reject()
	}
	if len(p.field) >= MaxVersionLen {
		return p.reject()
	}
	p.field = append(p.field, c)
	return Continue
}

func (p *Parser) feedHdr1(c byte) Status {
	if c == '\n' {
		return p.accept()
	}
	p.state = StateHdr2
	return Continue
}

func (p *Parser) feedHdr2(c byte) Status {
	if c == '\n' {
		p.state = StateHdr1
	}
	return Continue
}
