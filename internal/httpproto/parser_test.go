package httpproto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fis/nano-exporter/internal/httpproto"
)

func feed(t *testing.T, req string) httpproto.Status {
	t.Helper()
	p := httpproto.New()
	var last httpproto.Status
	for i := 0; i < len(req); i++ {
		last = p.Feed(req[i])
		if last != httpproto.Continue {
			return last
		}
	}
	return last
}

func TestAcceptsMinimalRequest(t *testing.T) {
	req := "GET /metrics HTTP/1.1\r\n\r\n"
	assert.Equal(t, httpproto.Accept, feed(t, req))
}

func TestAcceptsRequestWithHeaders(t *testing.T) {
	req := "GET /metrics HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Accept: */*\r\n" +
		"\r\n"
	assert.Equal(t, httpproto.Accept, feed(t, req))
}

func TestAcceptsHeaderLineWithoutTrailingCR(t *testing.T) {
	req := "GET /metrics HTTP/1.1\n" +
		"Host: localhost\n" +
		"\n"
	assert.Equal(t, httpproto.Accept, feed(t, req))
}

func TestRejectsWrongMethod(t *testing.T) {
	req := "POST /metrics HTTP/1.1\r\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestRejectsWrongPath(t *testing.T) {
	req := "GET /nope HTTP/1.1\r\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestRejectsWrongVersion(t *testing.T) {
	req := "GET /metrics HTTP/1.0\r\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestRejectsOversizedMethod(t *testing.T) {
	req := strings.Repeat("A", httpproto.MaxMethodLen+1) + " /metrics HTTP/1.1\r\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestRejectsOversizedPath(t *testing.T) {
	req := "GET /" + strings.Repeat("a", httpproto.MaxPathLen) + " HTTP/1.1\r\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestRejectsOversizedVersion(t *testing.T) {
	req := "GET /metrics " + strings.Repeat("H", httpproto.MaxVersionLen+1) + "\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestRejectsNewlineInPath(t *testing.T) {
	req := "GET /met\nrics HTTP/1.1\r\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestRejectsNonAlnumInMethod(t *testing.T) {
	req := "GE!T /metrics HTTP/1.1\r\n\r\n"
	assert.Equal(t, httpproto.Reject, feed(t, req))
}

func TestFeedBytesStopsAtTerminalStatus(t *testing.T) {
	p := httpproto.New()
	req := []byte("GET /metrics HTTP/1.1\r\n\r\nTRAILING GARBAGE")
	st, n := p.FeedBytes(req)
	assert.Equal(t, httpproto.Accept, st)
	assert.Less(t, n, len(req))
}

func TestTerminalStatusIsSticky(t *testing.T) {
	p := httpproto.New()
	st, _ := p.FeedBytes([]byte("GET /metrics HTTP/1.1\r\n\r\n"))
	assert.Equal(t, httpproto.Accept, st)
	assert.Equal(t, httpproto.Accept, p.Feed('X'))
}

func TestMultipleHeaderLinesCycleHdr1Hdr2(t *testing.T) {
	req := "GET /metrics HTTP/1.1\r\n" +
		"A: 1\r\n" +
		"B: 2\r\n" +
		"C: 3\r\n" +
		"\r\n"
	assert.Equal(t, httpproto.Accept, feed(t, req))
}

func TestCarriageReturnMidFieldIgnored(t *testing.T) {
	p := httpproto.New()
	for _, c := range []byte("GET") {
		assert.Equal(t, httpproto.Continue, p.Feed(c))
	}
	assert.Equal(t, httpproto.Continue, p.Feed('\r'))
	assert.Equal(t, httpproto.Continue, p.Feed(' '))
}
