package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
host: "127.0.0.1"
port: 9090
serverMode: performance
wsPort: 9091
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Host)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, Performance, cfg.ServerMode)
	require.Equal(t, 9091, cfg.WSPort)
	require.Equal(t, DefaultConfig().ShutdownTimeout, cfg.ShutdownTimeout)
}
