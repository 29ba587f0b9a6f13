package tools

import (
	"context"
	"fmt"
	"strings"

	"hermes/internal/adapters/ai"
	"hermes/pkg/errors"
)

// Analysis categories and the instruction appended for each.
var analysisInstructions = map[string]string{
	"etiquette":           "Focus on etiquette: greetings, manners, politeness conventions, and expected behavior.",
	"business_customs":    "Focus on business customs: meetings, negotiations, hierarchy, and professional relationships.",
	"social_norms":        "Focus on social norms: interpersonal expectations, social roles, and everyday conventions.",
	"traditions":          "Focus on traditions: customs, celebrations, rituals, and their historical background.",
	"communication_style": "Focus on communication style: directness, nonverbal cues, context sensitivity, and tone.",
	"taboos":              "Focus on taboos: topics, gestures, and behaviors to avoid, and why they cause offense.",
	"values":              "Focus on values: core beliefs, priorities, and the principles underlying behavior.",
}

var analysisTypes = []string{
	"etiquette", "business_customs", "social_norms", "traditions",
	"communication_style", "taboos", "values",
}

// Countries with tailored phrasing support.
var countryNames = map[string]string{
	"china":   "China",
	"japan":   "Japan",
	"korea":   "Korea",
	"usa":     "the United States",
	"uk":      "the United Kingdom",
	"germany": "Germany",
	"france":  "France",
	"brazil":  "Brazil",
	"india":   "India",
	"russia":  "Russia",
}

var countryCodes = []string{
	"china", "japan", "korea", "usa", "uk",
	"germany", "france", "brazil", "india", "russia",
}

// Detail levels map to fixed token budgets and a closing instruction.
var detailBudgets = map[string]int{
	"brief":         256,
	"detailed":      512,
	"comprehensive": 1024,
}

var detailInstructions = map[string]string{
	"brief":         "Keep the analysis brief and to the point.",
	"detailed":      "Provide a detailed analysis with concrete examples.",
	"comprehensive": "Provide a comprehensive, in-depth analysis covering nuances and exceptions.",
}

const cultureTemperature = 0.4

// AnalyzeCulture produces cultural analysis of the given content along a
// chosen dimension, optionally scoped to a target country.
type AnalyzeCulture struct{}

// NewAnalyzeCulture constructs the cultural analysis tool descriptor.
func NewAnalyzeCulture() *AnalyzeCulture {
	return &AnalyzeCulture{}
}

func (t *AnalyzeCulture) Name() string {
	return "analyze_culture"
}

func (t *AnalyzeCulture) Description() string {
	return "Analyze the cultural dimensions of content, such as etiquette, business customs, or taboos"
}

func (t *AnalyzeCulture) Schema() Schema {
	return Schema{
		Fields: map[string]Field{
			"content": {
				Type:        TypeString,
				Description: "The content or situation to analyze",
				Required:    true,
			},
			"analysis_type": {
				Type:        TypeString,
				Description: "Which cultural dimension to analyze",
				Enum:        analysisTypes,
				Required:    true,
			},
			"target_country": {
				Type:        TypeString,
				Description: "Optional country to scope the analysis to",
				Enum:        countryCodes,
			},
			"detail_level": {
				Type:        TypeString,
				Description: "How thorough the analysis should be",
				Enum:        []string{"brief", "detailed", "comprehensive"},
				Default:     "detailed",
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

func (t *AnalyzeCulture) Run(ctx context.Context, args map[string]interface{}, client ai.Generator) (string, error) {
	content := stringArg(args, "content")
	analysisType := stringArg(args, "analysis_type")
	detailLevel := stringArg(args, "detail_level")
	model := ai.ResolveModel(stringArg(args, "model"))

	var prompt strings.Builder
	if country := stringArg(args, "target_country"); country != "" {
		fmt.Fprintf(&prompt, "Analyze the following content from the cultural perspective of %s.\n\n", countryNames[country])
	} else {
		prompt.WriteString("Analyze the following content from a cross-cultural perspective.\n\n")
	}
	fmt.Fprintf(&prompt, "Content: %s\n\n", content)
	prompt.WriteString(analysisInstructions[analysisType])
	prompt.WriteString(" ")
	prompt.WriteString(detailInstructions[detailLevel])

	req := ai.ChatRequest{
		Model: model,
		Messages: []ai.Message{
			{
				Role:    ai.RoleSystem,
				Content: "You are an expert in cross-cultural communication and cultural analysis.",
			},
			{Role: ai.RoleUser, Content: prompt.String()},
		},
		MaxTokens:   detailBudgets[detailLevel],
		Temperature: cultureTemperature,
	}
	if ai.SupportsThinking(model) {
		req.ExtraBody = ai.ThinkingExtraBody()
	}

	analysis, err := client.GenerateText(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "cultural analysis failed")
	}
	return analysis, nil
}
