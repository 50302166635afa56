// Package diskstats reads /proc/diskstats into node_disk_* counters,
// grounded on diskstats.c.
package diskstats

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

	// sectorSize is the assumed constant disk sector size /proc/diskstats
	// reports its byte-valued columns in.
	sectorSize = 512.0
)

// path is a var, not a const, so whitebox tests in this package can
// point the collector at a fixture file.
var path = "/proc/diskstats"

// column describes one of the known, positionally fixed /proc/diskstats
// fields past the device name, in order.
type column struct {
	metric string
	factor float64
}

var columns = []column{
	{"node_disk_reads_completed_total", 1.0},
	{"node_disk_reads_merged_total", 1.0},
	{"node_disk_read_bytes_total", sectorSize},
	{"node_disk_read_time_seconds_total", 0.001},
	{"node_disk_writes_completed_total", 1.0},
	{"node_disk_writes_merged_total", 1.0},
	{"node_disk_written_bytes_total", sectorSize},
	{"node_disk_write_time_seconds_total", 0.001},
	{"node_disk_io_now", 1.0},
	{"node_disk_io_time_seconds_total", 0.001},
	{"node_disk_io_time_weighted_seconds_total", 0.001},
	{"node_disk_discards_completed_total", 1.0},
	{"node_disk_discards_merged_total", 1.0},
	{"node_disk_discarded_sectors_total", 1.0},
	{"node_disk_discard_time_seconds_total", 0.001},
}

// ctx holds the diskstats collector's parsed init arguments.
type ctx struct {
	include      *strset.List
	exclude      *strset.List
	filterUnused bool
}

// Descriptor is the diskstats collector. It accepts include=, exclude=
// and keep-unused init arguments.
var Descriptor = collector.Descriptor{
	Name:      "diskstats",
	HasArgs:   true,
	DefaultOn: true,
	Init:      initFunc,
	Collect:   collect,
}

func initFunc(argv map[string]string) (any, error) {
	c := &ctx{filterUnused: true}

	for k, v := range argv {
		switch k {
		case "include":
			c.include = strset.Split(v, ",")
		case "exclude":
			c.exclude = strset.Split(v, ",")
		case "keep-unused":
			c.filterUnused = false
		default:
			return nil, fmt.Errorf("unknown argument for diskstats collector: %s", k)
		}
	}

	return c, nil
}

func collect(s sink.Sink, ctxPtr any) {
	c, _ := ctxPtr.(*ctx)
	if c == nil {
		c = &ctx{filterUnused: true}
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
	fields := strings.Fields(line)
	// fields[0], fields[1] are device node numbers; fields[2] is the name.
	if len(fields) < 3 {
		return
	}
	dev := fields[2]
	if dev == "" {
		return
	}

	if c.include != nil {
		if !c.include.Matches(dev) {
			return
		}
	} else if c.exclude != nil {
		if c.exclude.Matches(dev) {
			return
		}
	}

	values := fields[3:]
	if c.filterUnused && allZeroOrBlank(values) {
		return
	}

	labels := []sink.Label{{Key: "device", Value: dev}}

	for i, col := range columns {
		if i >= len(values) {
			break
		}
		v := values[i]
		if v == "" {
			break
		}
		d, rest, ok := numscan.Leading(v)
		if !ok || rest != "" {
			continue
		}
		s.Emit(col.metric, labels, d*col.factor)
	}
}

func allZeroOrBlank(values []string) bool {
	for _, v := range values {
		if v != "" && v != "0" {
			return false
		}
	}
	return true
}
