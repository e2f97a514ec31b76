package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyrel-edt/cyrel/database"
)

// writeConfig writes a config file for the given database and returns its path
func writeConfig(t *testing.T, host string, port int, user, password, dbName string) string {
	t.Helper()
	dir := t.TempDir()

	passwordFile := filepath.Join(dir, "db-password")
	require.NoError(t, os.WriteFile(passwordFile, []byte(password+"\n"), 0o600))

	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`database:
  host: %s
  port: %d
  user: %s
  passwordFile: %s
  database: %s
  sslMode: disable
`, host, port, user, passwordFile, dbName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the command tree with args and stdin, returning its output
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cyrel "), out)

	out, err = execute(t, "", "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
}

func TestCommandsRequireConfig(t *testing.T) {
	t.Setenv("CYREL_CONFIG", "")

	for _, args := range [][]string{
		{"serve"},
		{"sync", "courses"},
		{"sync", "students"},
		{"migrate", "up", "--yes"},
		{"migrate", "version"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration file is required")
		})
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("CYREL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := execute(t, "", "migrate", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestMigrate_Cancelled(t *testing.T) {
	t.Parallel()

	// Nothing listens there, so any connection attempt would fail the test
	path := writeConfig(t, "127.0.0.1", 1, "cyrel", "secret", "cyrel")

	out, err := execute(t, "no\n", "migrate", "up", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Continue? (yes/no)")

	_, err = execute(t, "\n", "migrate", "down", "--config", path, "-n", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration cancelled by user")
}

func TestMigrate_UpDown(t *testing.T) {
	t.Parallel()

	pool, cleanup := database.SetupTestDBContainer(t, context.Background())
	t.Cleanup(cleanup)

	connCfg := pool.Config().ConnConfig
	path := writeConfig(t, connCfg.Host, int(connCfg.Port), connCfg.User, connCfg.Password, connCfg.Database)

	out, err := execute(t, "", "migrate", "version", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Current migration version: none")

	out, err = execute(t, "", "migrate", "up", "--config", path, "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "none")
	assert.NotContains(t, out, "dirty")

	version, dirty, err := database.GetVersion(pool.Config().ConnString())
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Positive(t, version)

	// Applying again is a no-op
	_, err = execute(t, "", "migrate", "up", "--config", path, "--yes")
	require.NoError(t, err)

	out, err = execute(t, "yes\n", "migrate", "down", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Current migration version: none")
}
