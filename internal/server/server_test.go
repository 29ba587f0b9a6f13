package server

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/config"
	"hermes/internal/ratelimit"
	"hermes/internal/tools"
	"hermes/pkg/logger"
)

func newTestServer(t *testing.T, stub *stubGenerator) *Server {
	t.Helper()
	limiter := ratelimit.NewSlidingWindow(10, time.Minute)
	pipeline := NewPipeline(limiter, tools.NewDefaultRegistry(), stub, logger.Get())

	srv, err := New(config.AppConfig{Name: "hermes", Version: "test"}, pipeline, logger.Get())
	require.NoError(t, err)
	return srv
}

func callRequest(name string, args interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func TestServer_HandleCall_Success(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "Hi there"})

	handler := srv.handleCall("generate_text")
	result, err := handler(context.Background(), callRequest("generate_text", map[string]interface{}{
		"prompt": "Hello",
		"model":  "v3",
	}))
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, "Hi there", textOf(t, result))
}

func TestServer_HandleCall_FailureIsToolError(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "unused"})

	handler := srv.handleCall("generate_text")
	result, err := handler(context.Background(), callRequest("generate_text", map[string]interface{}{
		"max_tokens": float64(10),
	}))

	// A bad request produces a structured tool error, never a transport error
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "prompt")
}
