//go:build linux

// Package scrape implements the single-threaded, poll-driven scrape
// server: a fixed-capacity array of request slots advanced by a single
// event loop, dispatching the enabled collector set into a per-request
// sink. There are no worker goroutines; all state is owned and mutated
// by the loop goroutine alone.
package scrape

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/fis/nano-exporter/internal/httpproto"
	"github.com/fis/nano-exporter/internal/nlog"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

const (
	// maxSlots is the compile-time cap on concurrent in-flight requests.
	maxSlots = 16

	// initialBufCap is a slot buffer's starting capacity; it grows by
	// doubling up to bufMax as collectors write into it.
	initialBufCap = 4 << 10

	// bufMax is a slot buffer's hard ceiling.
	bufMax = 64 << 10

	// readChunk bounds one nonblocking read(2) call.
	readChunk = 4 << 10

	// requestTimeout is the absolute per-connection deadline from accept.
	requestTimeout = 30 * time.Second

	// minPollWait clamps the poll timeout away from zero; pollSlack adds
	// a small safety margin on top so the loop doesn't spin right before
	// a deadline.
	minPollWait = 10 * time.Millisecond
	pollSlack   = 10 * time.Millisecond

	// maxPollWait bounds the poll timeout when requests are active, so
	// the loop periodically revisits deadlines even under clock skew.
	maxPollWait = 5 * time.Second
)

// Config parameterizes a Server.
type Config struct {
	Port     int
	Registry *collector.Registry
	Log      *nlog.Logger
}

// Server owns the listening sockets and the fixed slot array. Zero value
// is not usable; construct with New.
type Server struct {
	cfg       Config
	listeners []int
	slots     [maxSlots]slot
}

// New binds the configured listeners and prepares an idle slot array.
// Slot 0 is marked to retain its buffer across connections, keeping
// steady-state memory flat instead of reallocating it for every scrape.
func New(cfg Config) (*Server, error) {
	fds, err := openListeners(cfg.Port)
	if err != nil {
		return nil, err
	}

	srv := &Server{cfg: cfg, listeners: fds}
	for i := range srv.slots {
		srv.slots[i].fd = -1
		srv.slots[i].state = StateInactive
	}
	srv.slots[0].retainBuf = true
	return srv, nil
}

// Port reports the TCP port the first listener is bound to, resolving
// an ephemeral port (Config.Port == 0) after bind. Useful for tests and
// for logging the effective listen address at startup.
func (srv *Server) Port() (int, error) {
	sa, err := unix.Getsockname(srv.listeners[0])
	if err != nil {
		return 0, err
	}
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return a.Port, nil
	case *unix.SockaddrInet6:
		return a.Port, nil
	default:
		return 0, unix.EINVAL
	}
}

// Close releases the listening sockets and any open connections. It does
// not return to Run; callers stop the loop by closing the stop channel
// passed to Run.
func (srv *Server) Close() {
	for _, fd := range srv.listeners {
		closeFd(fd)
	}
	for i := range srv.slots {
		if srv.slots[i].state != StateInactive {
			srv.slots[i].close()
		}
	}
}

// Run drives the event loop until stop is closed. It never returns an
// error in normal operation; poll(2) failures other than EINTR are
// logged and terminate the loop.
func (srv *Server) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		pfds, slotOf := srv.buildPollSet()
		timeout := srv.pollTimeout()

		n, err := unix.Poll(pfds, timeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if srv.cfg.Log != nil {
				srv.cfg.Log.Entry(nlog.ErrorLevel, "poll failed").ErrorAdd(err).Log()
			}
			return
		}
		if n == 0 {
			srv.reapExpired(time.Now())
			continue
		}

		now := time.Now()
		srv.handleListeners(pfds, now)
		srv.handleRequests(pfds, slotOf, now)
	}
}

// buildPollSet assembles the poll descriptor array: listeners first (a
// stable prefix), then one entry per active slot. slotOf maps a poll
// index back to its slot index for request-side entries.
func (srv *Server) buildPollSet() ([]unix.PollFd, []int) {
	pfds := make([]unix.PollFd, 0, len(srv.listeners)+maxSlots)
	slotOf := make([]int, 0, len(srv.listeners)+maxSlots)

	for _, fd := range srv.listeners {
		pfds = append(pfds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
		slotOf = append(slotOf, -1)
	}

	for i := range srv.slots {
		s := &srv.slots[i]
		if s.state == StateInactive {
			continue
		}
		var ev int16 = unix.POLLIN
		if s.state != StateRead {
			ev = unix.POLLOUT
		}
		pfds = append(pfds, unix.PollFd{Fd: int32(s.fd), Events: ev})
		slotOf = append(slotOf, i)
	}

	return pfds, slotOf
}

// pollTimeout computes poll(2)'s millisecond timeout from the nearest
// active deadline.
func (srv *Server) pollTimeout() int {
	now := time.Now()
	var nearest time.Duration = -1

	for i := range srv.slots {
		s := &srv.slots[i]
		if s.state == StateInactive {
			continue
		}
		d := s.deadline.Sub(now)
		if nearest < 0 || d < nearest {
			nearest = d
		}
	}

	if nearest < 0 {
		return -1
	}

	wait := nearest + pollSlack
	if wait < minPollWait {
		wait = minPollWait
	}
	if wait > maxPollWait {
		wait = maxPollWait
	}
	return int(wait / time.Millisecond)
}

func (srv *Server) reapExpired(now time.Time) {
	for i := range srv.slots {
		s := &srv.slots[i]
		if s.state != StateInactive && now.After(s.deadline) {
			s.close()
		}
	}
}

func (srv *Server) handleListeners(pfds []unix.PollFd, now time.Time) {
	for i, fd := range srv.listeners {
		if pfds[i].Revents&unix.POLLIN == 0 {
			continue
		}
		srv.acceptOne(fd, now)
	}
}

// acceptOne accepts a single pending connection on lfd: one accept per
// ready listener per wakeup, not a drain-to-EAGAIN loop. If no slot is
// free the connection is accepted
// and immediately closed; otherwise the slot transitions straight to
// READ and gets a synthetic first read attempt in this same iteration.
func (srv *Server) acceptOne(lfd int, now time.Time) {
	fd, _, err := unix.Accept4(lfd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return
	}

	si := srv.freeSlot()
	if si < 0 {
		closeFd(fd)
		return
	}

	s := &srv.slots[si]
	s.reset(fd, now.Add(requestTimeout), bufMax)
	srv.advanceRead(si)
}

func (srv *Server) freeSlot() int {
	for i := range srv.slots {
		if srv.slots[i].state == StateInactive {
			return i
		}
	}
	return -1
}

func (srv *Server) handleRequests(pfds []unix.PollFd, slotOf []int, now time.Time) {
	for pi, si := range slotOf {
		if si < 0 {
			continue
		}
		s := &srv.slots[si]
		if s.state == StateInactive {
			continue
		}
		if now.After(s.deadline) {
			s.close()
			continue
		}

		rev := pfds[pi].Revents
		if rev&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			s.close()
			continue
		}
		if rev&(unix.POLLIN|unix.POLLOUT) == 0 {
			continue
		}

		switch s.state {
		case StateRead:
			srv.advanceRead(si)
		case StateWriteHeaders, StateWriteMetrics, StateWriteError:
			srv.advanceWrite(si)
		}
	}
}

func (srv *Server) advanceRead(si int) {
	s := &srv.slots[si]

	var chunk [readChunk]byte
	n, err := unix.Read(s.fd, chunk[:])
	if err != nil {
		if err == unix.EAGAIN {
			return
		}
		s.close()
		return
	}
	if n == 0 {
		s.close()
		return
	}

	status, _ := s.parser.FeedBytes(chunk[:n])
	switch status {
	case httpproto.Continue:
		return
	case httpproto.Accept:
		s.buf.Reset()
		httpproto.WriteHeaders(s.buf)
		s.outgoing = s.buf.Bytes()
		s.outOff = 0
		s.state = StateWriteHeaders
		srv.advanceWrite(si)
	case httpproto.Reject:
		s.buf.Reset()
		httpproto.WriteBadRequest(s.buf)
		s.outgoing = s.buf.Bytes()
		s.outOff = 0
		s.state = StateWriteError
		srv.advanceWrite(si)
	}
}

// advanceWrite drains as much of the slot's current outgoing slice as
// the socket accepts nonblockingly, then performs whichever state
// transition the drain unblocks.
func (srv *Server) advanceWrite(si int) {
	s := &srv.slots[si]

	for len(s.remaining()) > 0 {
		n, err := unix.Write(s.fd, s.remaining())
		if err != nil {
			if err == unix.EAGAIN {
				return
			}
			s.close()
			return
		}
		if n == 0 {
			s.close()
			return
		}
		s.advanceOut(n)
	}

	switch s.state {
	case StateWriteError:
		s.close()
	case StateWriteHeaders:
		s.state = StateWriteMetrics
		s.collectorIdx = 0
		srv.pumpCollectors(si)
	case StateWriteMetrics:
		srv.pumpCollectors(si)
	}
}

// pumpCollectors resets the slot buffer, runs collectors starting at the
// slot's saved index, and either publishes the next nonempty chunk as
// the outgoing slice or, once every collector has run, closes the
// connection.
func (srv *Server) pumpCollectors(si int) {
	s := &srv.slots[si]
	total := srv.cfg.Registry.Len()

	for s.collectorIdx < total {
		s.buf.Reset()
		entry := srv.cfg.Registry.At(s.collectorIdx)
		entry.Descriptor.Collect(sink.New(s.buf, s), entry.Ctx)
		s.collectorIdx++

		if s.buf.Len() > 0 {
			s.outgoing = s.buf.Bytes()
			s.outOff = 0
			srv.advanceWrite(si)
			return
		}
	}

	s.close()
}

func closeFd(fd int) {
	_ = unix.Close(fd)
}
