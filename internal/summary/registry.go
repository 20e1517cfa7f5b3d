package summary

import (
	"fmt"
	"os"
)

// ProviderFactory creates providers.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

var registry = map[string]ProviderFactory{
	"anthropic": func(cfg ProviderConfig) (Provider, error) {
		return NewAnthropicProvider(cfg)
	},
	"openai": func(cfg ProviderConfig) (Provider, error) {
		return NewOpenAIProvider(cfg)
	},
}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: anthropic, openai)", name)
	}
	return factory(cfg)
}

// RegisterProvider adds a custom provider factory.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// DetectProvider auto-detects the provider from available API keys.
// Priority: ANTHROPIC_API_KEY > OPENAI_API_KEY.
func DetectProvider() (provider string, apiKey string, err error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return "anthropic", key, nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return "openai", key, nil
	}
	return "", "", fmt.Errorf("no API key found; set ANTHROPIC_API_KEY or OPENAI_API_KEY")
}
