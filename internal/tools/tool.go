package tools

import (
	"context"

	"hermes/internal/adapters/ai"
)

// Tool represents a callable capability exposed to MCP clients.
// The set is closed: text generation, translation, and cultural analysis.
type Tool interface {
	// Name returns the unique tool identifier.
	Name() string
	// Description returns a short human-readable summary.
	Description() string
	// Schema returns the declarative input contract.
	Schema() Schema
	// Run executes the tool. It receives only sanitized, schema-validated
	// arguments and must call the generator at most once.
	Run(ctx context.Context, args map[string]interface{}, client ai.Generator) (string, error)
}

// Typed accessors for validated argument maps. Validation has already
// normalized types, so a failed assertion yields the zero value.

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]interface{}, key string) int {
	switch n := args[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func floatArg(args map[string]interface{}, key string) float64 {
	switch n := args[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func boolArg(args map[string]interface{}, key string) bool {
	b, _ := args[key].(bool)
	return b
}
