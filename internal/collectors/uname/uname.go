//go:build linux

// Package uname reports a single node_uname_info sample built from
// uname(2), grounded on uname.c.
package uname

import (
	"github.com/fis/nano-exporter/internal/sysquery"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

type ctx struct {
	labels []sink.Label
}

// Descriptor is the uname collector. It takes no init arguments.
var Descriptor = collector.Descriptor{
	Name:      "uname",
	DefaultOn: true,
	Init:      initFunc,
	Collect:   collect,
}

func initFunc(map[string]string) (any, error) {
	return initWith(sysquery.NewReal(0))
}

// initWith builds the collector's fixed label set from q, letting tests
// inject a fake in place of the real uname(2) syscall.
func initWith(q sysquery.Query) (any, error) {
	id, err := q.Uname()
	if err != nil {
		return nil, err
	}

	return &ctx{labels: []sink.Label{
		{Key: "machine", Value: id.Machine},
		{Key: "nodename", Value: id.Nodename},
		{Key: "release", Value: id.Release},
		{Key: "sysname", Value: id.Sysname},
		{Key: "version", Value: id.Version},
	}}, nil
}

func collect(s sink.Sink, ctxPtr any) {
	c, _ := ctxPtr.(*ctx)
	if c == nil {
		return
	}
	s.Emit("node_uname_info", c.labels, 1.0)
}
