package tools

import (
	"context"
	"fmt"

	"hermes/internal/adapters/ai"
	"hermes/pkg/errors"
)

// Supported translation languages. Closed set; the schema enum and the
// display names must stay in sync.
var languageNames = map[string]string{
	"en": "English",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"ru": "Russian",
	"pt": "Portuguese",
	"it": "Italian",
	"ar": "Arabic",
}

var languageCodes = []string{"en", "zh", "ja", "ko", "fr", "de", "es", "ru", "pt", "it", "ar"}

const translateTemperature = 0.3

// TranslateText translates text between the supported languages with a
// deterministic low temperature.
type TranslateText struct{}

// NewTranslateText constructs the translation tool descriptor.
func NewTranslateText() *TranslateText {
	return &TranslateText{}
}

func (t *TranslateText) Name() string {
	return "translate_text"
}

func (t *TranslateText) Description() string {
	return "Translate text between supported languages using a GLM model"
}

func (t *TranslateText) Schema() Schema {
	return Schema{
		Fields: map[string]Field{
			"text": {
				Type:        TypeString,
				Description: "The text to translate",
				Required:    true,
			},
			"source_language": {
				Type:        TypeString,
				Description: "Language code of the input text",
				Enum:        languageCodes,
				Required:    true,
			},
			"target_language": {
				Type:        TypeString,
				Description: "Language code to translate into",
				Enum:        languageCodes,
				Required:    true,
			},
			"model": {
				Type:        TypeString,
				Description: "Model variant: v3 (general-purpose) or z1 (reasoning-capable)",
				Enum:        []string{ai.VariantChat, ai.VariantReasoning},
				Default:     ai.VariantChat,
			},
		},
	}
}

func (t *TranslateText) Run(ctx context.Context, args map[string]interface{}, client ai.Generator) (string, error) {
	text := stringArg(args, "text")
	source := stringArg(args, "source_language")
	target := stringArg(args, "target_language")

	// Same-language requests never reach the upstream API
	if source == target {
		return fmt.Sprintf("The text is already in %s: %s", languageNames[source], text), nil
	}

	model := ai.ResolveModel(stringArg(args, "model"))

	// Budget scales with input size; translations rarely more than double
	maxTokens := 2 * len(text)
	if maxTokens < 256 {
		maxTokens = 256
	}

	req := ai.ChatRequest{
		Model: model,
		Messages: []ai.Message{
			{
				Role: ai.RoleSystem,
				Content: fmt.Sprintf(
					"You are a professional translator. Translate the user's text from %s to %s. Output only the translation, without explanations or commentary.",
					languageNames[source], languageNames[target],
				),
			},
			{Role: ai.RoleUser, Content: text},
		},
		MaxTokens:   maxTokens,
		Temperature: translateTemperature,
	}
	// Thinking mode is always on for the reasoning variant; there is no
	// caller-facing toggle here
	if ai.SupportsThinking(model) {
		req.ExtraBody = ai.ThinkingExtraBody()
	}

	translated, err := client.GenerateText(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "translation failed")
	}
	return translated, nil
}
