//go:build linux

// Package filesystem reads /proc/mounts and reports node_filesystem_*
// gauges per mount via statvfs(2), grounded on filesystem.c.
package filesystem

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fis/nano-exporter/internal/sysquery"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
	"github.com/fis/nano-exporter/pkg/strset"
)

const maxLineLen = 512

// path is a var so whitebox tests can point the collector at a fixture.
var path = "/proc/mounts"

type ctx struct {
	includeDevice *strset.List
	excludeDevice *strset.List
	includeMount  *strset.List
	excludeMount  *strset.List
	includeType   *strset.List
	excludeType   *strset.List
	query         sysquery.Query
}

// Descriptor is the filesystem collector. It accepts include-device=,
// exclude-device=, include-mount=, exclude-mount=, include-type= and
// exclude-type= init arguments.
var Descriptor = collector.Descriptor{
	Name:      "filesystem",
	HasArgs:   true,
	DefaultOn: true,
	Init:      initFunc,
	Collect:   collect,
}

func initFunc(argv map[string]string) (any, error) {
	c := &ctx{query: sysquery.NewReal(0)}

	for k, v := range argv {
		switch k {
		case "include-device":
			c.includeDevice = strset.Split(v, ",")
		case "exclude-device":
			c.excludeDevice = strset.Split(v, ",")
		case "include-mount":
			c.includeMount = strset.Split(v, ",")
		case "exclude-mount":
			c.excludeMount = strset.Split(v, ",")
		case "include-type":
			c.includeType = strset.Split(v, ",")
		case "exclude-type":
			c.excludeType = strset.Split(v, ",")
		default:
			return nil, fmt.Errorf("unknown argument for filesystem collector: %s", k)
		}
	}

	return c, nil
}

func collect(s sink.Sink, ctxPtr any) {
	c, _ := ctxPtr.(*ctx)
	if c == nil {
		c = &ctx{query: sysquery.NewReal(0)}
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
	if len(fields) < 3 {
		return
	}
	dev, mount, fstype := fields[0], fields[1], fields[2]

	if c.includeDevice != nil {
		if !c.includeDevice.Matches(dev) {
			return
		}
	} else {
		if !strings.HasPrefix(dev, "/") {
			return
		}
		if c.excludeDevice != nil && c.excludeDevice.Matches(dev) {
			return
		}
	}

	if c.includeMount != nil {
		if !c.includeMount.Matches(mount) {
			return
		}
	} else if c.excludeMount != nil {
		if c.excludeMount.Matches(mount) {
			return
		}
	}

	if c.includeType != nil {
		if !c.includeType.Matches(fstype) {
			return
		}
	} else if c.excludeType != nil {
		if c.excludeType.Matches(fstype) {
			return
		}
	}

	fs, err := c.query.Statfs(mount)
	if err != nil {
		return
	}

	labels := []sink.Label{
		{Key: "device", Value: dev},
		{Key: "fstype", Value: fstype},
		{Key: "mountpoint", Value: mount},
	}

	bs := float64(fs.BlockSize)
	s.Emit("node_filesystem_avail_bytes", labels, float64(fs.BlocksAvail)*bs)
	s.Emit("node_filesystem_files", labels, float64(fs.Inodes))
	s.Emit("node_filesystem_files_free", labels, float64(fs.InodesFree))
	s.Emit("node_filesystem_free_bytes", labels, float64(fs.BlocksFree)*bs)
	s.Emit("node_filesystem_readonly", labels, boolToFloat(fs.ReadOnly))
	s.Emit("node_filesystem_size_bytes", labels, float64(fs.Blocks)*bs)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
