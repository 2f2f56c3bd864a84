package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-timer/internal/config"
)

func executeRoot(t *testing.T, root *RootCommand, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root.SetOutput(out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return plain(out.String()), err
}

func TestRootCommand_JSONStorageEndToEnd(t *testing.T) {
	dir := t.TempDir()
	flags := []string{"--storage", "json", "--data-dir", dir}

	out, err := executeRoot(t, NewRootCommand(config.NewLoaderWithPath("")), append(flags, "add", "Client", "A")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Added project Client A")

	_, err = os.Stat(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)

	out, err = executeRoot(t, NewRootCommand(config.NewLoaderWithPath("")), append(flags, "limit", "set", "Client A", "90")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Limit for Client A: 1h 30m")

	out, err = executeRoot(t, NewRootCommand(config.NewLoaderWithPath("")), append(flags, "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Client A")
	assert.Contains(t, out, "idle")
}

func TestRootCommand_SQLiteStorage(t *testing.T) {
	dir := t.TempDir()
	flags := []string{"--storage", "sqlite", "--data-dir", dir, "--filename", "test.db"}

	_, err := executeRoot(t, NewRootCommand(config.NewLoaderWithPath("")), append(flags, "add", "Alpha")...)
	require.NoError(t, err)

	out, err := executeRoot(t, NewRootCommand(config.NewLoaderWithPath("")), append(flags, "report", "week", "--format", "csv")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Project ID,Project,Period,Seconds,Hours")
	assert.Contains(t, out, ",Alpha,week,0,0.0")

	_, err = os.Stat(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
}

func TestRootCommand_StrictFlag(t *testing.T) {
	dir := t.TempDir()

	_, err := executeRoot(t, NewRootCommand(config.NewLoaderWithPath("")),
		"--storage", "json", "--data-dir", dir, "--strict", "start", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start project")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, err := executeRoot(t, NewRootCommand(config.NewLoaderWithPath("")),
		"--storage", "postgres", "--data-dir", t.TempDir(), "list")
	require.Error(t, err)
}

func TestRootCommand_WithAPI(t *testing.T) {
	env := setupTestApp(t, false)
	env.run(t, "add", "Alpha")
	env.run(t, "limit", "set", "Alpha", "180")

	root := NewRootCommandWithAPI(env.api, env.cfg)
	out, err := executeRoot(t, root, "limit", "adjust", "Alpha", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Limit for Alpha: 2h 0m")

	// The injected API stays open
	_, err = env.api.Resolve(context.Background(), "Alpha")
	require.NoError(t, err)
}

func TestRootCommand_ArgumentValidation(t *testing.T) {
	env := setupTestApp(t, false)

	tests := [][]string{
		{"start"},
		{"set-time", "Alpha", "1"},
		{"list", "extra"},
		{"report", "day", "week"},
	}
	for _, args := range tests {
		_, err := executeRoot(t, NewRootCommandWithAPI(env.api, env.cfg), args...)
		assert.Error(t, err, args)
	}
}

func TestOverridesFromFlags(t *testing.T) {
	root := NewRootCommand(config.NewLoaderWithPath(""))
	flags := root.cmd.PersistentFlags()
	require.NoError(t, flags.Parse([]string{"--storage", "json", "--strict", "--tick-interval", "250ms", "--week-start", "monday"}))

	overrides, err := overridesFromFlags(flags)
	require.NoError(t, err)

	require.NotNil(t, overrides.Backend)
	assert.Equal(t, "json", *overrides.Backend)
	require.NotNil(t, overrides.Strict)
	assert.True(t, *overrides.Strict)
	require.NotNil(t, overrides.TickInterval)
	assert.Equal(t, 250*time.Millisecond, *overrides.TickInterval)
	require.NotNil(t, overrides.WeekStart)
	assert.Equal(t, "monday", *overrides.WeekStart)

	assert.Nil(t, overrides.DataDir)
	assert.Nil(t, overrides.Debug)
	assert.Nil(t, overrides.Notify)
}

func TestRootCommand_ConfigCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	flags := []string{"--storage", "json", "--data-dir", dir, "--week-start", "monday"}

	out, err := executeRoot(t, NewRootCommand(config.NewLoaderWithPath(cfgPath)), append(flags, "config", "show")...)
	require.NoError(t, err)
	assert.Contains(t, out, "backend: json")
	assert.Contains(t, out, "week_start: monday")

	out, err = executeRoot(t, NewRootCommand(config.NewLoaderWithPath(cfgPath)), append(flags, "config", "init")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote configuration to "+cfgPath)

	_, err = executeRoot(t, NewRootCommand(config.NewLoaderWithPath(cfgPath)), append(flags, "config", "init")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeRoot(t, NewRootCommand(config.NewLoaderWithPath(cfgPath)), append(flags, "config", "init", "--force")...)
	require.NoError(t, err)

	// The written file is picked up without flags
	cfg, err := config.NewLoaderWithPath(cfgPath).Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, time.Monday, cfg.WeekStart())
}
