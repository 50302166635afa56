//go:build linux

package cpu

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

func withFixture(t *testing.T, content string) func() {
	t.Helper()
	dir := t.TempDir()
	fixture := filepath.Join(dir, "stat")
	require.NoError(t, os.WriteFile(fixture, []byte(content), 0o644))
	old := path
	path = fixture
	return func() { path = old }
}

func TestCollectDividesByClockTick(t *testing.T) {
	defer withFixture(t, "cpu  100 0 200 300 0 0 0 0\ncpu0 100 0 200 300 0 0 0 0\n")()

	var rs recordSink
	collect(&rs, &ctx{clockTick: 100})

	require.NotEmpty(t, rs.samples)
	assert.Equal(t, "node_cpu_seconds_total", rs.samples[0].name)
	assert.Equal(t, []sink.Label{{Key: "cpu", Value: "0"}, {Key: "mode", Value: "user"}}, rs.samples[0].labels)
	assert.Equal(t, 1.0, rs.samples[0].value)
}

func TestCollectSkipsAggregateCpuLine(t *testing.T) {
	defer withFixture(t, "cpu  100 0 200 300 0 0 0 0\ncpu0 100 0 200 300 0 0 0 0\n")()

	var rs recordSink
	collect(&rs, &ctx{clockTick: 100})

	for _, s := range rs.samples {
		for _, l := range s.labels {
			if l.Key == "cpu" {
				assert.NotEqual(t, "", l.Value)
			}
		}
	}
}

func TestCollectEmitsAllEightModes(t *testing.T) {
	defer withFixture(t, "cpu0 1 2 3 4 5 6 7 8\n")()

	var rs recordSink
	collect(&rs, &ctx{clockTick: 1})

	assert.Len(t, rs.samples, 8)
}

func TestCollectMultipleCores(t *testing.T) {
	defer withFixture(t, "cpu0 1 2 3 4 5 6 7 8\ncpu1 1 2 3 4 5 6 7 8\n")()

	var rs recordSink
	collect(&rs, &ctx{clockTick: 1})

	assert.Len(t, rs.samples, 16)
}
