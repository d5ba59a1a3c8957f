package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/ai-almanac/internal/domain/almanac"
	"github.com/yanqian/ai-almanac/internal/infra/config"
	"github.com/yanqian/ai-almanac/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-almanac/internal/infra/llm/gemini"
)

var defaultModels = map[string]string{
	config.ProviderDeepSeek: "deepseek-chat",
	config.ProviderOpenAI:   "gpt-4o-mini",
	config.ProviderGemini:   gemini.DefaultModel,
}

// SettingsFrom maps the llm config section to per-call settings, filling in
// the provider's default model.
func SettingsFrom(cfg config.LLMConfig) Settings {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModels[cfg.Provider]
	}
	return Settings{
		Model:       model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}
}

// FromConfig builds the generator for the configured provider. A missing API
// key selects Offline so the service still answers with fallback readings.
func FromConfig(ctx context.Context, cfg config.LLMConfig, counter TokenCounter, logger *slog.Logger) (almanac.Generator, error) {
	logger = logger.With("component", "almanac.generator")
	settings := SettingsFrom(cfg)

	if cfg.Provider == config.ProviderOffline {
		logger.Info("text generation disabled, serving fallback readings")
		return Offline{}, nil
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("llm api key not set, serving fallback readings", "provider", cfg.Provider)
		return Offline{}, nil
	}

	switch cfg.Provider {
	case config.ProviderDeepSeek, config.ProviderOpenAI:
		baseURL := cfg.BaseURL
		if baseURL == "" && cfg.Provider == config.ProviderOpenAI {
			baseURL = "https://api.openai.com/v1"
		}
		client, err := chatgpt.NewClient(cfg.APIKey, baseURL, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		logger.Info("text generation provider ready", "provider", cfg.Provider, "model", settings.Model)
		return NewChatGPT(client, settings, counter), nil
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		logger.Info("text generation provider ready", "provider", cfg.Provider, "model", settings.Model)
		return NewGemini(client, settings, counter), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
