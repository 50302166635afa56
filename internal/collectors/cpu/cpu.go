//go:build linux

// Package cpu reads the per-core jiffy counters of /proc/stat into
// node_cpu_seconds_total, grounded on cpu.c.
package cpu

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/fis/nano-exporter/internal/collectors/numscan"
	"github.com/fis/nano-exporter/internal/sysquery"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

const maxLineLen = 4096

// path is a var so whitebox tests can point the collector at a fixture.
var path = "/proc/stat"

var modes = []string{"user", "nice", "system", "idle", "iowait", "irq", "softirq", "steal"}

type ctx struct {
	clockTick int64
}

// Descriptor is the cpu collector. It takes no init arguments.
var Descriptor = collector.Descriptor{
	Name:      "cpu",
	DefaultOn: true,
	Init:      initFunc,
	Collect:   collect,
}

func initFunc(map[string]string) (any, error) {
	q := sysquery.NewReal(0)
	return &ctx{clockTick: q.ClockTicksPerSecond()}, nil
}

func collect(s sink.Sink, ctxPtr any) {
	c, _ := ctxPtr.(*ctx)
	if c == nil {
		c = &ctx{clockTick: 100}
	}

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, maxLineLen), maxLineLen)

	for scanner.Scan() {
		collectLine(s, c, scanner.Text())
	}
}

func collectLine(s sink.Sink, c *ctx, line string) {
	if !strings.HasPrefix(line, "cpu") {
		return
	}
	rest := line[3:]
	if rest == "" || rest[0] < '0' || rest[0] > '9' {
		return
	}

	space := strings.IndexByte(rest, ' ')
	if space < 0 {
		return
	}
	cpuID := rest[:space]
	if _, err := strconv.Atoi(cpuID); err != nil {
		return
	}

	fields := strings.Fields(rest[space+1:])
	for i, mode := range modes {
		if i >= len(fields) {
			break
		}

		v, trailer, ok := numscan.Leading(fields[i])
		if !ok || trailer != "" {
			break
		}
		v /= float64(c.clockTick)

		labels := []sink.Label{{Key: "cpu", Value: cpuID}, {Key: "mode", Value: mode}}
		s.Emit("node_cpu_seconds_total", labels, v)
	}
}
