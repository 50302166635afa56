// Command nano-exporter serves a Prometheus text-exposition /metrics
// endpoint off a small, single-threaded poll loop, grounded on main.c.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fis/nano-exporter/internal/launcher"
	"github.com/fis/nano-exporter/internal/nlog"
)

func main() {
	log := nlog.New(nlog.InfoLevel, os.Stderr)

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	if err := launcher.Run(os.Args[1:], log, stop); err != nil {
		log.Entry(nlog.ErrorLevel, "startup failed").ErrorAdd(err).Log()
		os.Exit(1)
	}
}
