package ai

// Upstream model identifiers. Opaque tokens defined by the GLM API.
const (
	// ModelChat is the 9B general-purpose variant.
	ModelChat = "glm-4-9b-chat"

	// ModelReasoning is the 8B reasoning-capable variant. The only model
	// for which thinking mode is meaningful.
	ModelReasoning = "glm-z1-8b-0414"
)

// Client-facing model selector values used in tool arguments.
const (
	VariantChat      = "v3"
	VariantReasoning = "z1"
)

// KnownModels returns the fixed set of supported model identifiers.
func KnownModels() []string {
	return []string{ModelChat, ModelReasoning}
}

// IsKnownModel reports whether id names a supported model.
func IsKnownModel(id string) bool {
	for _, m := range KnownModels() {
		if m == id {
			return true
		}
	}
	return false
}

// ResolveModel maps a client-facing variant to an upstream model identifier.
// Unrecognized variants fall back to the general-purpose model.
func ResolveModel(variant string) string {
	if variant == VariantReasoning {
		return ModelReasoning
	}
	return ModelChat
}

// SupportsThinking reports whether the model honors the thinking-mode
// extra-configuration block.
func SupportsThinking(model string) bool {
	return model == ModelReasoning
}

// ThinkingExtraBody returns the extra-configuration block that enables
// thinking mode on the reasoning variant.
func ThinkingExtraBody() map[string]interface{} {
	return map[string]interface{}{
		"thinking": map[string]interface{}{
			"type": "enabled",
		},
	}
}
