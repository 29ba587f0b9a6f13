package tools

import (
	"context"

	"hermes/internal/adapters/ai"
	"hermes/pkg/errors"
)

// GenerateText is the general-purpose text generation tool. The caller
// controls the model variant, token budget, temperature, and thinking mode.
type GenerateText struct{}

// NewGenerateText constructs the text generation tool descriptor.
func NewGenerateText() *GenerateText {
	return &GenerateText{}
}

func (t *GenerateText) Name() string {
	return "generate_text"
}

func (t *GenerateText) Description() string {
	return "Generate free-form text from a prompt using a GLM model, with optional system prompt and thinking mode"
}

func (t *GenerateText) Schema() Schema {
	return Schema{
		Fields: map[string]Field{
			"prompt": {
				Type:        TypeString,
				Description: "The user prompt to generate text from",
				Required:    true,
			},
			"system_prompt": {
				Type:        TypeString,
				Description: "Optional system prompt steering the model's behavior",
			},
			"model": {
				Type:        TypeString,
				Description: "Model variant: v3 (general-purpose) or z1 (reasoning-capable)",
				Enum:        []string{ai.VariantChat, ai.VariantReasoning},
				Default:     ai.VariantChat,
			},
			"max_tokens": {
				Type:        TypeInteger,
				Description: "Maximum number of tokens to generate",
				Minimum:     float64Ptr(1),
				Maximum:     float64Ptr(4096),
				Default:     1024,
			},
			"temperature": {
				Type:        TypeNumber,
				Description: "Sampling temperature",
				Minimum:     float64Ptr(0),
				Maximum:     float64Ptr(2),
				Default:     0.7,
			},
			"enable_thinking": {
				Type:        TypeBoolean,
				Description: "Enable thinking mode (reasoning-capable variant only)",
				Default:     false,
			},
		},
	}
}

func (t *GenerateText) Run(ctx context.Context, args map[string]interface{}, client ai.Generator) (string, error) {
	model := ai.ResolveModel(stringArg(args, "model"))

	messages := make([]ai.Message, 0, 2)
	if system := stringArg(args, "system_prompt"); system != "" {
		messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: system})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: stringArg(args, "prompt")})

	req := ai.ChatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   intArg(args, "max_tokens"),
		Temperature: floatArg(args, "temperature"),
	}
	if boolArg(args, "enable_thinking") && ai.SupportsThinking(model) {
		req.ExtraBody = ai.ThinkingExtraBody()
	}

	text, err := client.GenerateText(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "text generation failed")
	}
	return text, nil
}
