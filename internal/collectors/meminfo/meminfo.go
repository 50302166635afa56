// Package meminfo reads /proc/meminfo into node_memory_* gauges,
// grounded on meminfo.c.
package meminfo

import (
	"bufio"
	"os"
	"strings"

	"github.com/fis/nano-exporter/internal/collectors/numscan"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

const maxLineLen = 4096

// path is a var, not a const, so whitebox tests in this package can
// point the collector at a fixture file.
var path = "/proc/meminfo"

// Descriptor is the meminfo collector. It takes no init arguments.
var Descriptor = collector.Descriptor{
	Name:      "meminfo",
	DefaultOn: true,
	Collect:   collect,
}

func collect(s sink.Sink, _ any) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, maxLineLen), maxLineLen)

	for scanner.Scan() {
		if name, value, ok := parseLine(scanner.Text()); ok {
			s.Emit(name, nil, value)
		}
	}
}

// parseLine converts one /proc/meminfo line, e.g. "MemTotal: 1024 kB",
// into a metric name and value, e.g. ("node_memory_MemTotal_bytes",
// 1048576). Non-alphanumeric bytes in the key become underscores;
// trailing underscores before the colon are trimmed. A "kB" suffix
// after the number multiplies the value by 1024 and appends "_bytes"
// to the metric name.
func parseLine(line string) (string, float64, bool) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", 0, false
	}

	key := sanitizeKey(line[:colon])
	key = strings.TrimRight(key, "_")
	if key == "" {
		return "", 0, false
	}

	rest := strings.TrimLeft(line[colon+1:], " ")
	value, rest, ok := numscan.Leading(rest)
	if !ok {
		return "", 0, false
	}

	name := "node_memory_" + key
	if unit := strings.TrimLeft(rest, " "); strings.HasPrefix(unit, "kB") {
		name += "_bytes"
		value *= 1024
	}

	return name, value, true
}

func sanitizeKey(s string) string {
	b := []byte(s)
	for i, c := range b {
		if !isAlnum(c) {
			b[i] = '_'
		}
	}
	return string(b)
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
