package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"hermes/internal/adapters/config"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// Server exposes the pipeline's tools over the MCP stdio transport.
type Server struct {
	mcp      *mcpserver.MCPServer
	pipeline *Pipeline
	log      *logger.Logger
}

// New builds the MCP server and registers every pipeline tool with its
// statically rendered JSON schema.
func New(cfg config.AppConfig, pipeline *Pipeline, log *logger.Logger) (*Server, error) {
	s := &Server{
		mcp: mcpserver.NewMCPServer(
			cfg.Name,
			cfg.Version,
			mcpserver.WithToolCapabilities(false),
		),
		pipeline: pipeline,
		log:      log.With("component", "mcp_server"),
	}

	for _, tool := range pipeline.Tools() {
		schema, err := json.Marshal(tool.Schema().JSONSchema())
		if err != nil {
			return nil, errors.Wrapf(err, "render schema for tool %s", tool.Name())
		}

		name := tool.Name()
		s.mcp.AddTool(
			mcp.NewToolWithRawSchema(name, tool.Description(), schema),
			s.handleCall(name),
		)
	}

	return s, nil
}

// handleCall adapts one tool to the MCP handler contract. Failures surface
// as tool-result errors so a single bad request never tears down the
// session.
func (s *Server) handleCall(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := s.pipeline.CallTool(ctx, name, request.GetRawArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// Serve runs the stdio transport until the client disconnects or the
// process is signalled.
func (s *Server) Serve() error {
	s.log.Info("MCP server listening on stdio")
	return mcpserver.ServeStdio(s.mcp)
}
