package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := ParseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.False(t, cfg.Foreground)
	assert.Equal(t, "", cfg.PidFile)
}

func TestParseArgsPortFlag(t *testing.T) {
	cfg, err := ParseArgs([]string{"--port=9200"})
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
}

func TestParseArgsCollectorOnOffTogglesDefault(t *testing.T) {
	cfg, err := ParseArgs([]string{"--meminfo-on"})
	require.NoError(t, err)
	assert.True(t, cfg.enabled["meminfo"])
	assert.False(t, cfg.enabledDefault)
}

func TestParseArgsCollectorArgument(t *testing.T) {
	cfg, err := ParseArgs([]string{"--diskstats-exclude=loop*"})
	require.NoError(t, err)
	assert.Equal(t, "loop*", cfg.collectorArgs["diskstats"]["exclude"])
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	_, err := ParseArgs([]string{"--nonsense"})
	assert.Error(t, err)
}

func TestParseArgsConfigFileSuppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nano-exporter.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("port: 9300\nforeground: true\n"), 0o644))

	cfg, err := ParseArgs([]string{"--config=" + cfgPath})
	require.NoError(t, err)
	assert.Equal(t, 9300, cfg.Port)
	assert.True(t, cfg.Foreground)
}

func TestParseArgsExplicitFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nano-exporter.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("port: 9300\n"), 0o644))

	cfg, err := ParseArgs([]string{"--config=" + cfgPath, "--port=9400"})
	require.NoError(t, err)
	assert.Equal(t, 9400, cfg.Port)
}

func TestParseArgsConfigFileMissingReturnsError(t *testing.T) {
	_, err := ParseArgs([]string{"--config=/nonexistent/nano-exporter.yaml"})
	assert.Error(t, err)
}
