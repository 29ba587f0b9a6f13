package tools

// NewDefaultRegistry builds the registry with the full tool set in its
// fixed registration order. Listing order follows this order.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(NewGenerateText())
	registry.Register(NewTranslateText())
	registry.Register(NewAnalyzeCulture())
	return registry
}
