package hwmon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fis/nano-exporter/pkg/sink"
)

type recordSink struct {
	samples []sample
}

type sample struct {
	name   string
	labels []sink.Label
	value  float64
}

func (r *recordSink) Emit(name string, labels []sink.Label, value float64) {
	r.samples = append(r.samples, sample{name, labels, value})
}

func (r *recordSink) EmitRaw(b []byte) {}

func (r *recordSink) byName(name string) []sample {
	var out []sample
	for _, s := range r.samples {
		if s.name == name {
			out = append(out, s)
		}
	}
	return out
}

func withFixtureDir(t *testing.T) (string, func()) {
	t.Helper()
	dir := t.TempDir()
	old := root
	root = dir
	return dir, func() { root = old }
}

func TestCollectUsesNameFileWhenNotASymlink(t *testing.T) {
	dir, cleanup := withFixtureDir(t)
	defer cleanup()

	chip := filepath.Join(dir, "hwmon0")
	require.NoError(t, os.MkdirAll(chip, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(chip, "name"), []byte("coretemp\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(chip, "temp1_input"), []byte("42000\n"), 0o644))

	var rs recordSink
	collect(&rs, nil)

	temps := rs.byName("node_hwmon_temp_celsius")
	require.Len(t, temps, 1)
	assert.Equal(t, 42.0, temps[0].value)
	assert.Equal(t, []sink.Label{{Key: "chip", Value: "hwmon/coretemp"}, {Key: "sensor", Value: "temp1"}}, temps[0].labels)
}

func TestCollectFlagSensor(t *testing.T) {
	dir, cleanup := withFixtureDir(t)
	defer cleanup()

	chip := filepath.Join(dir, "hwmon0")
	require.NoError(t, os.MkdirAll(chip, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(chip, "in0_alarm"), []byte("1\n"), 0o644))

	var rs recordSink
	collect(&rs, nil)

	alarms := rs.byName("node_hwmon_in_alarm")
	require.Len(t, alarms, 1)
	assert.Equal(t, 1.0, alarms[0].value)
}

func TestCollectUnknownChipNameWhenNoNameFile(t *testing.T) {
	dir, cleanup := withFixtureDir(t)
	defer cleanup()

	chip := filepath.Join(dir, "hwmon0")
	require.NoError(t, os.MkdirAll(chip, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(chip, "fan1_input"), []byte("1200\n"), 0o644))

	var rs recordSink
	collect(&rs, nil)

	fans := rs.byName("node_hwmon_fan_rpm")
	require.Len(t, fans, 1)
	assert.Equal(t, "unknown", fans[0].labels[0].Value)
}

func TestCollectIgnoresUnrecognizedFiles(t *testing.T) {
	dir, cleanup := withFixtureDir(t)
	defer cleanup()

	chip := filepath.Join(dir, "hwmon0")
	require.NoError(t, os.MkdirAll(chip, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(chip, "uevent"), []byte("x=1\n"), 0o644))

	var rs recordSink
	collect(&rs, nil)

	assert.Empty(t, rs.samples)
}

func TestCollectMissingRootEmitsNothing(t *testing.T) {
	old := root
	root = filepath.Join(t.TempDir(), "does-not-exist")
	defer func() { root = old }()

	var rs recordSink
	collect(&rs, nil)

	assert.Empty(t, rs.samples)
}
