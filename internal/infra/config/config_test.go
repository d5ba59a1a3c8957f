package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	require.False(t, cfg.HTTP.Retry.Enabled)
	require.Equal(t, ProviderDeepSeek, cfg.LLM.Provider)
	require.Equal(t, 1024, cfg.LLM.MaxTokens)
	require.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	require.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	require.Equal(t, "cl100k_base", cfg.LLM.TokenEncoding)
	require.Equal(t, "Asia/Shanghai", cfg.Almanac.Timezone)
	require.Empty(t, cfg.LLM.APIKey)
}

func TestLoadFromFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "almanac.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9000"
  allowedOrigins: ["https://almanac.example"]
llm:
  provider: gemini
  model: gemini-2.5-pro
  maxTokens: 800
almanac:
  timezone: UTC
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_MAX_TOKENS", "512")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, []string{"https://almanac.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	require.Equal(t, 512, cfg.LLM.MaxTokens)
	require.Equal(t, "g-key", cfg.LLM.APIKey)
	require.Equal(t, "UTC", cfg.Almanac.Timezone)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "3001")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DEEPSEEK_API_KEY", "ds-key")
	t.Setenv("LLM_TIMEOUT", "12s")
	t.Setenv("HTTP_RETRY_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":3001", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "ds-key", cfg.LLM.APIKey)
	require.Equal(t, 12*time.Second, cfg.LLM.Timeout)
	require.True(t, cfg.HTTP.Retry.Enabled)

	t.Setenv("HTTP_ADDRESS", "127.0.0.1:8888")
	t.Setenv("LLM_API_KEY", "explicit")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8888", cfg.HTTP.Address)
	require.Equal(t, "explicit", cfg.LLM.APIKey)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_PROVIDER=offline\nALMANAC_TIMEZONE=UTC\n"), 0o600))
	// godotenv never overrides a variable that is present, even when empty.
	// isolate's t.Setenv restores both after the test.
	require.NoError(t, os.Unsetenv("LLM_PROVIDER"))
	require.NoError(t, os.Unsetenv("ALMANAC_TIMEZONE"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ProviderOffline, cfg.LLM.Provider)
	require.Equal(t, "UTC", cfg.Almanac.Timezone)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "defaults"},
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }, errMsg: "http.address"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "claude" }, errMsg: "llm.provider"},
		{name: "max tokens above cap", mutate: func(c *Config) { c.LLM.MaxTokens = 1025 }, errMsg: "llm.maxTokens"},
		{name: "max tokens at cap", mutate: func(c *Config) { c.LLM.MaxTokens = 1024 }},
		{name: "minimal max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = 500 }},
		{name: "zero max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = 0 }, errMsg: "llm.maxTokens"},
		{name: "negative temperature", mutate: func(c *Config) { c.LLM.Temperature = -1 }, errMsg: "llm.temperature"},
		{name: "zero timeout", mutate: func(c *Config) { c.LLM.Timeout = 0 }, errMsg: "llm.timeout"},
		{name: "blank timezone", mutate: func(c *Config) { c.Almanac.Timezone = " " }, errMsg: "almanac.timezone"},
		{name: "no origins", mutate: func(c *Config) { c.HTTP.AllowedOrigins = nil }, errMsg: "allowedOrigins"},
		{
			name: "retry without attempts",
			mutate: func(c *Config) {
				c.HTTP.Retry.Enabled = true
				c.HTTP.Retry.MaxAttempts = 0
			},
			errMsg: "http.retry.maxAttempts",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

// isolate runs the test in an empty directory with every variable Load reads
// cleared.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "PORT", "HTTP_ADDRESS", "CORS_ALLOWED_ORIGINS",
		"HTTP_RETRY_ENABLED", "HTTP_RETRY_MAX_ATTEMPTS", "HTTP_RETRY_BASE_BACKOFF",
		"LLM_PROVIDER", "LLM_API_KEY", "DEEPSEEK_API_KEY", "GEMINI_API_KEY",
		"LLM_BASE_URL", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_MAX_TOKENS",
		"LLM_TIMEOUT", "LLM_TOKEN_ENCODING", "ALMANAC_TIMEZONE",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}
