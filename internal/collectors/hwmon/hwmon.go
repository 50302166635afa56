// Package hwmon reads /sys/class/hwmon sensor trees into node_hwmon_*
// gauges, grounded on hwmon.c.
package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fis/nano-exporter/internal/collectors/numscan"
	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

// root is a var so whitebox tests can point the collector at a fixture
// tree.
var root = "/sys/class/hwmon"

type metricType struct {
	suffix string
	metric string
	conv   func(string) (float64, bool)
}

type metricData struct {
	prefix string
	types  []metricType
}

var metrics = []metricData{
	{
		prefix: "in",
		types: []metricType{
			{"_input", "node_hwmon_in_volts", convMillis},
			{"_min", "node_hwmon_in_min_volts", convMillis},
			{"_max", "node_hwmon_in_max_volts", convMillis},
			{"_alarm", "node_hwmon_in_alarm", convFlag},
		},
	},
	{
		prefix: "fan",
		types: []metricType{
			{"_input", "node_hwmon_fan_rpm", convID},
			{"_min", "node_hwmon_fan_min_rpm", convID},
			{"_alarm", "node_hwmon_fan_alarm", convFlag},
		},
	},
	{
		prefix: "temp",
		types: []metricType{
			{"_input", "node_hwmon_temp_celsius", convMillis},
		},
	},
}

func convMillis(text string) (float64, bool) {
	v, rest, ok := numscan.Leading(strings.TrimRight(text, "\n"))
	if !ok || rest != "" {
		return 0, false
	}
	return v / 1000, true
}

func convID(text string) (float64, bool) {
	v, rest, ok := numscan.Leading(strings.TrimRight(text, "\n"))
	if !ok || rest != "" {
		return 0, false
	}
	return v, true
}

func convFlag(text string) (float64, bool) {
	t := strings.TrimRight(text, "\n")
	if t == "0" || t == "1" {
		return float64(t[0] - '0'), true
	}
	return 0, false
}

// Descriptor is the hwmon collector. It takes no init arguments.
var Descriptor = collector.Descriptor{
	Name:      "hwmon",
	DefaultOn: true,
	Collect:   collect,
}

func collect(s sink.Sink, _ any) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}

	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "hwmon") {
			continue
		}
		chipPath := filepath.Join(root, e.Name())
		chip := chipName(chipPath)

		sensors, err := os.ReadDir(chipPath)
		if err != nil {
			continue
		}

		for _, sensor := range sensors {
			collectSensor(s, chipPath, chip, sensor.Name())
		}
	}
}

func collectSensor(s sink.Sink, chipPath, chip, name string) {
	for _, m := range metrics {
		if !strings.HasPrefix(name, m.prefix) {
			continue
		}
		underscore := strings.IndexByte(name, '_')
		if underscore < 0 {
			continue
		}
		sensorLabel := name[:underscore]
		suffix := name[underscore:]

		for _, t := range m.types {
			if suffix != t.suffix {
				continue
			}

			b, err := os.ReadFile(filepath.Join(chipPath, name))
			if err != nil {
				continue
			}

			v, ok := t.conv(string(b))
			if !ok {
				continue
			}

			labels := []sink.Label{{Key: "chip", Value: chip}, {Key: "sensor", Value: sensorLabel}}
			s.Emit(t.metric, labels, v)
		}
	}
}

// chipName resolves a /sys/class/hwmon/hwmonN entry's human-readable
// chip name: the devices/X/Y path segment it symlinks to (unless that is
// "virtual/hwmon"), else the contents of its sibling "name" file prefixed
// "hwmon/", else "unknown".
func chipName(path string) string {
	if target, err := os.Readlink(path); err == nil {
		const devicesPrefix = "../../devices/"
		if strings.HasPrefix(target, devicesPrefix) {
			rest := target[len(devicesPrefix):]
			parts := strings.SplitN(rest, "/", 3)
			if len(parts) >= 2 {
				name := parts[0] + "/" + parts[1]
				if name != "virtual/hwmon" {
					return name
				}
			}
		}
	}

	if b, err := os.ReadFile(filepath.Join(path, "name")); err == nil {
		name := strings.TrimRight(string(b), "\n")
		if name != "" {
			return fmt.Sprintf("hwmon/%s", name)
		}
	}

	return "unknown"
}
