package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/ai-almanac/internal/domain/almanac"
	"github.com/yanqian/ai-almanac/internal/infra/almanac/generator"
	"github.com/yanqian/ai-almanac/internal/infra/config"
	"github.com/yanqian/ai-almanac/internal/infra/llm/tokenizer"
)

// tokenizerWarmTimeout bounds the startup wait for the BPE download.
const tokenizerWarmTimeout = 5 * time.Second

func provideAlmanacConfig(cfg *config.Config) almanac.Config {
	return almanac.Config{
		Timezone: cfg.Almanac.Timezone,
	}
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) *tokenizer.Counter {
	counter := tokenizer.New(cfg.LLM.TokenEncoding)
	if cfg.LLM.Provider == config.ProviderOffline {
		return counter
	}
	ctx, cancel := context.WithTimeout(context.Background(), tokenizerWarmTimeout)
	defer cancel()
	if err := counter.Warm(ctx); err != nil {
		logger.Warn("token encoding unavailable, estimating prompt tokens", "encoding", cfg.LLM.TokenEncoding, "error", err)
	}
	return counter
}

func provideGenerator(cfg *config.Config, counter *tokenizer.Counter, logger *slog.Logger) (almanac.Generator, error) {
	return generator.FromConfig(context.Background(), cfg.LLM, counter, logger)
}
