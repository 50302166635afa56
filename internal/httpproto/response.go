package httpproto

import "github.com/fis/nano-exporter/pkg/bbuf"

// ServerHeader is the fixed Server: header value advertised on every
// response, success or failure.
const ServerHeader = "nano-exporter"

// goodHeaders is the complete, fixed 200 OK prelude. There is no
// Content-Length: the body is streamed across one or more WRITE_METRICS
// chunks whose total size is not known in advance, so framing is by
// connection close, as spec'd.
const goodHeaders = "HTTP/1.1 200 OK\r\n" +
	"Server: " + ServerHeader + "\r\n" +
	"Content-Type: text/plain; charset=UTF-8\r\n" +
	"Connection: close\r\n" +
	"\r\n"

// WriteHeaders appends the fixed 200 OK prelude that precedes the
// metrics body.
func WriteHeaders(buf *bbuf.Buffer) {
	buf.AppendString(goodHeaders)
}

// badRequest is the complete, fixed 400 response: status line, headers,
// and a short explanatory body, all close-delimited like the 200 case.
const badRequest = "HTTP/1.1 400 Bad Request\r\n" +
	"Server: " + ServerHeader + "\r\n" +
	"Content-Type: text/plain; charset=UTF-8\r\n" +
	"Connection: close\r\n" +
	"\r\n" +
	"bad request\n"

// WriteBadRequest appends the complete fixed 400 response.
func WriteBadRequest(buf *bbuf.Buffer) {
	buf.AppendString(badRequest)
}
