package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/ai"
	"hermes/pkg/errors"
)

// stubGenerator records upstream requests and returns a canned response.
type stubGenerator struct {
	response string
	err      error
	calls    []ai.ChatRequest
}

func (s *stubGenerator) GenerateText(ctx context.Context, req ai.ChatRequest) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// validate runs a tool's own schema before its handler, mirroring what the
// pipeline does in production.
func validate(t *testing.T, tool Tool, args map[string]interface{}) map[string]interface{} {
	t.Helper()
	validated, err := tool.Schema().Validate(args)
	require.NoError(t, err)
	return validated
}

func TestGenerateText_Defaults(t *testing.T) {
	tool := NewGenerateText()
	stub := &stubGenerator{response: "Hi there"}

	args := validate(t, tool, map[string]interface{}{"prompt": "Hello"})
	text, err := tool.Run(context.Background(), args, stub)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", text)

	require.Len(t, stub.calls, 1)
	req := stub.calls[0]
	assert.Equal(t, ai.ModelChat, req.Model)
	assert.Equal(t, 1024, req.MaxTokens)
	assert.Equal(t, 0.7, req.Temperature)
	assert.Nil(t, req.ExtraBody)

	require.Len(t, req.Messages, 1)
	assert.Equal(t, ai.RoleUser, req.Messages[0].Role)
	assert.Equal(t, "Hello", req.Messages[0].Content)
}

func TestGenerateText_SystemPrompt(t *testing.T) {
	tool := NewGenerateText()
	stub := &stubGenerator{response: "ok"}

	args := validate(t, tool, map[string]interface{}{
		"prompt":        "Hello",
		"system_prompt": "Respond in haiku.",
	})
	_, err := tool.Run(context.Background(), args, stub)
	require.NoError(t, err)

	req := stub.calls[0]
	require.Len(t, req.Messages, 2)
	assert.Equal(t, ai.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, "Respond in haiku.", req.Messages[0].Content)
	assert.Equal(t, ai.RoleUser, req.Messages[1].Role)
}

func TestGenerateText_ThinkingMode(t *testing.T) {
	tool := NewGenerateText()

	t.Run("reasoning variant with toggle", func(t *testing.T) {
		stub := &stubGenerator{response: "ok"}
		args := validate(t, tool, map[string]interface{}{
			"prompt":          "Hello",
			"model":           ai.VariantReasoning,
			"enable_thinking": true,
		})
		_, err := tool.Run(context.Background(), args, stub)
		require.NoError(t, err)

		req := stub.calls[0]
		assert.Equal(t, ai.ModelReasoning, req.Model)
		require.NotNil(t, req.ExtraBody)
		assert.Contains(t, req.ExtraBody, "thinking")
	})

	t.Run("general variant ignores toggle", func(t *testing.T) {
		stub := &stubGenerator{response: "ok"}
		args := validate(t, tool, map[string]interface{}{
			"prompt":          "Hello",
			"model":           ai.VariantChat,
			"enable_thinking": true,
		})
		_, err := tool.Run(context.Background(), args, stub)
		require.NoError(t, err)
		assert.Nil(t, stub.calls[0].ExtraBody)
	})

	t.Run("reasoning variant without toggle", func(t *testing.T) {
		stub := &stubGenerator{response: "ok"}
		args := validate(t, tool, map[string]interface{}{
			"prompt": "Hello",
			"model":  ai.VariantReasoning,
		})
		_, err := tool.Run(context.Background(), args, stub)
		require.NoError(t, err)
		assert.Nil(t, stub.calls[0].ExtraBody)
	})
}

func TestGenerateText_UpstreamFailure(t *testing.T) {
	tool := NewGenerateText()
	stub := &stubGenerator{err: errors.Wrap(errors.ErrUpstreamServer, "GLM API error (500)")}

	args := validate(t, tool, map[string]interface{}{"prompt": "Hello"})
	_, err := tool.Run(context.Background(), args, stub)
	require.Error(t, err)

	// Classification survives the tool-level wrap
	assert.True(t, errors.Is(err, errors.ErrUpstreamServer))
	assert.Contains(t, err.Error(), "text generation failed")
}

func TestTranslateText_SameLanguageShortCircuit(t *testing.T) {
	tool := NewTranslateText()
	stub := &stubGenerator{response: "should not be used"}

	args := validate(t, tool, map[string]interface{}{
		"text":            "Bonjour le monde",
		"source_language": "fr",
		"target_language": "fr",
	})
	text, err := tool.Run(context.Background(), args, stub)
	require.NoError(t, err)

	// Original text returned verbatim, upstream never called
	assert.Contains(t, text, "Bonjour le monde")
	assert.Contains(t, text, "French")
	assert.Empty(t, stub.calls)
}

func TestTranslateText_TokenBudget(t *testing.T) {
	tool := NewTranslateText()

	t.Run("short input uses floor", func(t *testing.T) {
		stub := &stubGenerator{response: "Hallo"}
		args := validate(t, tool, map[string]interface{}{
			"text":            "Hello",
			"source_language": "en",
			"target_language": "de",
		})
		_, err := tool.Run(context.Background(), args, stub)
		require.NoError(t, err)
		assert.Equal(t, 256, stub.calls[0].MaxTokens)
	})

	t.Run("long input doubles", func(t *testing.T) {
		stub := &stubGenerator{response: "..."}
		long := strings.Repeat("a", 300)
		args := validate(t, tool, map[string]interface{}{
			"text":            long,
			"source_language": "en",
			"target_language": "de",
		})
		_, err := tool.Run(context.Background(), args, stub)
		require.NoError(t, err)
		assert.Equal(t, 600, stub.calls[0].MaxTokens)
	})
}

func TestTranslateText_RequestShape(t *testing.T) {
	tool := NewTranslateText()
	stub := &stubGenerator{response: "你好"}

	args := validate(t, tool, map[string]interface{}{
		"text":            "Hello",
		"source_language": "en",
		"target_language": "zh",
	})
	text, err := tool.Run(context.Background(), args, stub)
	require.NoError(t, err)
	assert.Equal(t, "你好", text)

	req := stub.calls[0]
	assert.Equal(t, ai.ModelChat, req.Model)
	assert.Equal(t, translateTemperature, req.Temperature)
	assert.Nil(t, req.ExtraBody)

	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[0].Content, "English")
	assert.Contains(t, req.Messages[0].Content, "Chinese")
	assert.Equal(t, "Hello", req.Messages[1].Content)
}

func TestTranslateText_ThinkingForcedForReasoning(t *testing.T) {
	tool := NewTranslateText()
	stub := &stubGenerator{response: "こんにちは"}

	args := validate(t, tool, map[string]interface{}{
		"text":            "Hello",
		"source_language": "en",
		"target_language": "ja",
		"model":           ai.VariantReasoning,
	})
	_, err := tool.Run(context.Background(), args, stub)
	require.NoError(t, err)

	req := stub.calls[0]
	assert.Equal(t, ai.ModelReasoning, req.Model)
	require.NotNil(t, req.ExtraBody)
	assert.Contains(t, req.ExtraBody, "thinking")
}

func TestTranslateText_InvalidLanguageRejected(t *testing.T) {
	tool := NewTranslateText()

	_, err := tool.Schema().Validate(map[string]interface{}{
		"text":            "Hello",
		"source_language": "klingon",
		"target_language": "en",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "source_language")
}

func TestAnalyzeCulture_DetailLevelBudgets(t *testing.T) {
	tool := NewAnalyzeCulture()

	cases := []struct {
		level  string
		tokens int
	}{
		{"brief", 256},
		{"detailed", 512},
		{"comprehensive", 1024},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			stub := &stubGenerator{response: "analysis"}
			args := validate(t, tool, map[string]interface{}{
				"content":       "Bowing when greeting",
				"analysis_type": "etiquette",
				"detail_level":  tc.level,
			})
			_, err := tool.Run(context.Background(), args, stub)
			require.NoError(t, err)
			assert.Equal(t, tc.tokens, stub.calls[0].MaxTokens)
		})
	}
}

func TestAnalyzeCulture_PromptShaping(t *testing.T) {
	tool := NewAnalyzeCulture()
	stub := &stubGenerator{response: "analysis"}

	args := validate(t, tool, map[string]interface{}{
		"content":        "Exchanging business cards",
		"analysis_type":  "business_customs",
		"target_country": "japan",
	})
	_, err := tool.Run(context.Background(), args, stub)
	require.NoError(t, err)

	req := stub.calls[0]
	assert.Equal(t, cultureTemperature, req.Temperature)
	// Default detail level
	assert.Equal(t, 512, req.MaxTokens)

	prompt := req.Messages[1].Content
	assert.Contains(t, prompt, "Japan")
	assert.Contains(t, prompt, "Exchanging business cards")
	assert.Contains(t, prompt, "business customs")
}

func TestAnalyzeCulture_NoCountryPhrasing(t *testing.T) {
	tool := NewAnalyzeCulture()
	stub := &stubGenerator{response: "analysis"}

	args := validate(t, tool, map[string]interface{}{
		"content":       "Small talk at work",
		"analysis_type": "social_norms",
	})
	_, err := tool.Run(context.Background(), args, stub)
	require.NoError(t, err)

	prompt := stub.calls[0].Messages[1].Content
	assert.Contains(t, prompt, "cross-cultural perspective")
}

func TestAnalyzeCulture_InvalidTypeRejected(t *testing.T) {
	tool := NewAnalyzeCulture()

	_, err := tool.Schema().Validate(map[string]interface{}{
		"content":       "anything",
		"analysis_type": "astrology",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis_type")
}
