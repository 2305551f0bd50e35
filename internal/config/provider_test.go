package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "storectl.toml", `
[networks.local]
url = "http://127.0.0.1:8545"
`)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("network", "n", "", "")
	cmd.Flags().Int("account", 0, "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().String("max-fee-per-gas", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--network", "local", "--account", "2", "--max-fee-per-gas", "99"}))

	v := SetupViper(dir, cmd)
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, ".storectl"), cfg.DataDir)
	assert.Equal(t, "storectl.toml", cfg.ConfigFile)
	assert.Equal(t, "local", cfg.NetworkName)
	assert.Equal(t, 2, cfg.Account)
	assert.Equal(t, "99", cfg.Fees.MaxFeePerGas)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Project)
	assert.Contains(t, cfg.Project.Networks, "local")
}

func TestProvider_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "storectl.toml", "")
	t.Setenv("STORECTL_NETWORK", "ropsten")
	t.Setenv("STORECTL_TIMEOUT", "30s")

	cfg, err := Provider(SetupViper(dir, nil))
	require.NoError(t, err)
	assert.Equal(t, "ropsten", cfg.NetworkName)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestProvider_NegativeAccount(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORECTL_ACCOUNT", "-1")

	_, err := Provider(SetupViper(dir, nil))
	require.Error(t, err)
}
