// Package launcher wires command-line flags, the collector table and the
// scrape server together into a runnable process, grounded on main.c's
// initialize()/daemonize() pair.
package launcher

import (
	"github.com/fis/nano-exporter/internal/collectors/cpu"
	"github.com/fis/nano-exporter/internal/collectors/cpufreq"
	"github.com/fis/nano-exporter/internal/collectors/diskstats"
	"github.com/fis/nano-exporter/internal/collectors/filesystem"
	"github.com/fis/nano-exporter/internal/collectors/hwmon"
	"github.com/fis/nano-exporter/internal/collectors/meminfo"
	"github.com/fis/nano-exporter/internal/collectors/netdev"
	"github.com/fis/nano-exporter/internal/collectors/stat"
	"github.com/fis/nano-exporter/internal/collectors/textfile"
	"github.com/fis/nano-exporter/internal/collectors/uname"
	"github.com/fis/nano-exporter/pkg/collector"
)

// allCollectors is the fixed table of known collectors, in the order
// main.c's XCOLLECTORS macro lists them (cpufreq is this port's one
// addition, split out of cpu.c's combined jiffies+cpufreq collector).
var allCollectors = []collector.Descriptor{
	cpu.Descriptor,
	cpufreq.Descriptor,
	diskstats.Descriptor,
	filesystem.Descriptor,
	hwmon.Descriptor,
	meminfo.Descriptor,
	netdev.Descriptor,
	stat.Descriptor,
	textfile.Descriptor,
	uname.Descriptor,
}
