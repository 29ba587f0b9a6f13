package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/ai"
)

type namedTool struct {
	name string
}

func (t *namedTool) Name() string        { return t.name }
func (t *namedTool) Description() string { return "test tool" }
func (t *namedTool) Schema() Schema      { return Schema{} }
func (t *namedTool) Run(ctx context.Context, args map[string]interface{}, client ai.Generator) (string, error) {
	return "", nil
}

func TestRegistry_OrderPreserved(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&namedTool{name: "alpha"})
	registry.Register(&namedTool{name: "beta"})
	registry.Register(&namedTool{name: "gamma"})

	listed := registry.List()
	require.Len(t, listed, 3)
	assert.Equal(t, "alpha", listed[0].Name())
	assert.Equal(t, "beta", listed[1].Name())
	assert.Equal(t, "gamma", listed[2].Name())
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	registry := NewRegistry()
	first := &namedTool{name: "alpha"}
	registry.Register(first)
	registry.Register(&namedTool{name: "beta"})

	replacement := &namedTool{name: "alpha"}
	registry.Register(replacement)

	listed := registry.List()
	require.Len(t, listed, 2)
	assert.Equal(t, "alpha", listed[0].Name())
	assert.Same(t, replacement, listed[0].(*namedTool))
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&namedTool{name: "alpha"})

	tool, ok := registry.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", tool.Name())

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestNewDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()
	require.Equal(t, 3, registry.Len())

	listed := registry.List()
	assert.Equal(t, "generate_text", listed[0].Name())
	assert.Equal(t, "translate_text", listed[1].Name())
	assert.Equal(t, "analyze_culture", listed[2].Name())
}
