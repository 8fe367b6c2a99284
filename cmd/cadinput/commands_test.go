package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		configPath = ""
		logLevel = ""
		rootCmd.SetArgs(nil)
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func brokenConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cadinput.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [debug\n"), 0o644))
	return path
}

func TestConstrainReadsConfig(t *testing.T) {
	err := execute(t, "constrain", "--x", "3", "--y", "4", "--config", brokenConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestAlignReadsConfig(t *testing.T) {
	err := execute(t, "align", "--segment", "0,0,10,0", "--config", brokenConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestConstrainWithLogLevel(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	err := execute(t, "constrain", "--x", "3", "--y", "4", "--lock-angle", "0",
		"--config", missing, "--log-level", "debug")
	assert.NoError(t, err)
}
