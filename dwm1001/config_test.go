package dwm1001

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "device.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
port: /dev/ttyACM0
baud_rate: 115200
shell_timeout: 5s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", cfg.Port)
	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, 5*time.Second, cfg.ShellTimeout)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "port: /dev/ttyACM0\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaudRate, cfg.BaudRate)
	assert.Equal(t, DefaultShellTimeout, cfg.ShellTimeout)
	assert.NotZero(t, cfg.ResetDelay)
	assert.NotNil(t, cfg.Logger)
}

func TestLoadConfigMissingPort(t *testing.T) {
	path := writeConfigFile(t, "baud_rate: 9600\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "port is required")
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfigFile(t, "port: [unterminated\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
