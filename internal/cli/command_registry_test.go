package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommand struct {
	args []string
}

func (c *recordingCommand) Execute(ctx context.Context, args []string) error {
	c.args = args
	return nil
}

func TestCommandRegistry(t *testing.T) {
	env := setupTestApp(t, false)
	registry := NewCommandRegistry(env.app)

	for _, name := range []string{"add", "list", "start", "pause", "stop", "delete", "set-time", "limit", "report", "watch"} {
		_, ok := registry.Get(name)
		assert.True(t, ok, name)
	}
	_, ok := registry.Get("resume")
	assert.False(t, ok)

	cmd := &recordingCommand{}
	registry.Register("echo", cmd)
	require.NoError(t, registry.Execute(context.Background(), "echo", []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, cmd.args)
	assert.Contains(t, registry.GetUsage(), "echo")
}
