package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesActiveProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yamlContent := `
coinbasepro:
  sandbox: true
  live:
    apiKey: live-key
    passPhrase: live-pass
    secretKey: bGl2ZS1zZWNyZXQ=
  sandboxConfig:
    apiKey: sandbox-key
    passPhrase: sandbox-pass
    secretKey: c2FuZGJveC1zZWNyZXQ=
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	active := cfg.CoinbasePro.Active()
	require.Equal(t, "sandbox-key", active.APIKey)
	require.Equal(t, "sandbox-pass", active.Passphrase)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}
