// Package stat reads the global counter lines of /proc/stat, grounded
// on stat.c.
package stat

import (
	"bufio"
	"os"
	"strings"

	"github.com/fis/nano-exporter/internal/collectors/numscan"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

const maxLineLen = 4096

// path is a var so whitebox tests can point the collector at a fixture.
var path = "/proc/stat"

type metric struct {
	name string
	key  string
}

var metrics = []metric{
	{"node_boot_time_seconds", "btime "},
	{"node_context_switches_total", "ctxt "},
	{"node_forks_total", "processes "},
	{"node_intr_total", "intr "},
	{"node_procs_blocked", "procs_blocked "},
	{"node_procs_running", "procs_running "},
}

// Descriptor is the stat collector. It takes no init arguments.
var Descriptor = collector.Descriptor{
	Name:      "stat",
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
		collectLine(s, scanner.Text())
	}
}

func collectLine(s sink.Sink, line string) {
	for _, m := range metrics {
		if !strings.HasPrefix(line, m.key) {
			continue
		}

		v, rest, ok := numscan.Leading(line[len(m.key):])
		if !ok || (rest != "" && rest[0] != ' ') {
			continue
		}

		s.Emit(m.name, nil, v)
		return
	}
}
