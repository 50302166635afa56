// Package netdev reads /proc/net/dev into node_network_* counters,
// grounded on netdev.c.
package netdev

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fis/nano-exporter/internal/collectors/numscan"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
	"github.com/fis/nano-exporter/pkg/strset"
)

const (
	maxLineLen = 512

	// defaultExclude is applied unconditionally after argument parsing,
	// even when the caller passed its own exclude=. The original source
	// declares an exclude_set flag it never assigns true, so an explicit
	// exclude= is always clobbered by this default; that behavior is
	// kept here rather than fixed.
	defaultExclude = "lo"
)

// path is a var so whitebox tests can point the collector at a fixture.
var path = "/proc/net/dev"

type ctx struct {
	columns []string
	include *strset.List
	exclude *strset.List
}

// Descriptor is the netdev collector. It accepts include= and exclude=
// init arguments; its metric names are derived from the second
// /proc/net/dev header line, read at Init time.
var Descriptor = collector.Descriptor{
	Name:      "netdev",
	HasArgs:   true,
	DefaultOn: true,
	Init:      initFunc,
	Collect:   collect,
}

func initFunc(argv map[string]string) (any, error) {
	columns, err := parseHeader()
	if err != nil {
		return nil, err
	}

	c := &ctx{columns: columns}

	for k, v := range argv {
		switch k {
		case "include":
			c.include = strset.Split(v, ",")
		case "exclude":
			c.exclude = strset.Split(v, ",")
		default:
			return nil, fmt.Errorf("unknown argument for netdev collector: %s", k)
		}
	}

	c.exclude = strset.Split(defaultExclude, ",")

	return c, nil
}

// parseHeader reads /proc/net/dev's two header lines and builds the
// ordered metric name for each receive, then transmit, column.
func parseHeader() ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, maxLineLen), maxLineLen)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: missing first header line", path)
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: missing second header line", path)
	}

	parts := strings.Split(scanner.Text(), "|")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%s: expected 3 pipe-delimited header parts, got %d", path, len(parts))
	}

	prefixes := []string{"node_network_receive_", "node_network_transmit_"}

	var columns []string
	for i, part := range parts[1:] {
		for _, field := range strings.Fields(part) {
			columns = append(columns, prefixes[i]+field+"_total")
		}
	}

	return columns, nil
}

func collect(s sink.Sink, ctxPtr any) {
	c, _ := ctxPtr.(*ctx)
	if c == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, maxLineLen), maxLineLen)

	if !scanner.Scan() || !scanner.Scan() {
		return
	}

	for scanner.Scan() {
		collectLine(s, c, scanner.Text())
	}
}

func collectLine(s sink.Sink, c *ctx, line string) {
	trimmed := strings.TrimLeft(line, " ")
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return
	}
	dev := trimmed[:colon]

	if c.include != nil {
		if !c.include.Matches(dev) {
			return
		}
	} else if c.exclude != nil {
		if c.exclude.Matches(dev) {
			return
		}
	}

	labels := []sink.Label{{Key: "device", Value: dev}}
	values := strings.Fields(trimmed[colon+1:])

	for i, name := range c.columns {
		if i >= len(values) {
			break
		}
		v, rest, ok := numscan.Leading(values[i])
		if !ok || rest != "" {
			continue
		}
		s.Emit(name, labels, v)
	}
}
