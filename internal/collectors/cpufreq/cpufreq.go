// Package cpufreq reads the current scaling frequency of each CPU core
// from sysfs into node_cpu_frequency_hertz, grounded on cpu.c's cpufreq
// loop.
package cpufreq

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fis/nano-exporter/internal/collectors/numscan"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

// maxCPUs bounds the scan; the loop still stops early the first time a
// cpu<N>/cpufreq directory doesn't exist.
const maxCPUs = 10000000

// sysCPUDir is a var so whitebox tests can point the collector at a
// fixture tree.
var sysCPUDir = "/sys/devices/system/cpu"

// Descriptor is the cpufreq collector. It takes no init arguments.
var Descriptor = collector.Descriptor{
	Name:      "cpufreq",
	DefaultOn: true,
	Collect:   collect,
}

func collect(s sink.Sink, _ any) {
	for cpu := 0; cpu < maxCPUs; cpu++ {
		path := fmt.Sprintf("%s/cpu%d/cpufreq/scaling_cur_freq", sysCPUDir, cpu)

		b, err := os.ReadFile(path)
		if err != nil {
			return
		}

		v, rest, ok := numscan.Leading(strings.TrimSpace(string(b)))
		if !ok || rest != "" {
			continue
		}

		labels := []sink.Label{{Key: "cpu", Value: strconv.Itoa(cpu)}}
		s.Emit("node_cpu_frequency_hertz", labels, v*1000)
	}
}
