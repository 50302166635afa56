package cpufreq

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

func withFixture(t *testing.T, freqs map[int]string) func() {
	t.Helper()
	dir := t.TempDir()
	for cpu, freq := range freqs {
		cpuDir := filepath.Join(dir, "cpu"+itoa(cpu), "cpufreq")
		require.NoError(t, os.MkdirAll(cpuDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(cpuDir, "scaling_cur_freq"), []byte(freq), 0o644))
	}
	old := sysCPUDir
	sysCPUDir = dir
	return func() { sysCPUDir = old }
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	s := ""
	for i > 0 {
		s = string(rune('0'+i%10)) + s
		i /= 10
	}
	return s
}

func TestCollectConvertsKilohertzToHertz(t *testing.T) {
	defer withFixture(t, map[int]string{0: "1800000\n"})()

	var rs recordSink
	collect(&rs, nil)

	require.Len(t, rs.samples, 1)
	assert.Equal(t, "node_cpu_frequency_hertz", rs.samples[0].name)
	assert.Equal(t, []sink.Label{{Key: "cpu", Value: "0"}}, rs.samples[0].labels)
	assert.Equal(t, 1800000000.0, rs.samples[0].value)
}

func TestCollectStopsAtFirstMissingCpu(t *testing.T) {
	defer withFixture(t, map[int]string{0: "1000\n", 2: "3000\n"})()

	var rs recordSink
	collect(&rs, nil)

	require.Len(t, rs.samples, 1)
	assert.Equal(t, "0", rs.samples[0].labels[0].Value)
}

func TestCollectNoCpusEmitsNothing(t *testing.T) {
	defer withFixture(t, map[int]string{})()

	var rs recordSink
	collect(&rs, nil)

	assert.Empty(t, rs.samples)
}
