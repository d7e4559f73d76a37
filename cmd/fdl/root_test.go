package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "FDL Bot")
}

func TestMigrateSQLite(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "fdl.db")
	cfg := filepath.Join(t.TempDir(), "missing.toml")

	_, err := run(t, "--config", cfg, "migrate", "up", "--database-url", url)
	require.NoError(t, err)
	_, err = run(t, "--config", cfg, "migrate", "version", "--database-url", url)
	require.NoError(t, err)
	_, err = run(t, "--config", cfg, "migrate", "sideways", "--database-url", url)
	assert.Error(t, err)
}

func TestArchiveDeleteRejectsBadID(t *testing.T) {
	_, err := run(t, "archive", "delete", "abc")
	assert.ErrorContains(t, err, "invalid media id")
}
