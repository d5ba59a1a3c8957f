package generator

import (
	"context"
	"strings"

	"github.com/yanqian/ai-almanac/internal/domain/almanac"
	"github.com/yanqian/ai-almanac/internal/infra/llm/gemini"
	"github.com/yanqian/ai-almanac/pkg/metrics"
)

type contentGenerator interface {
	Generate(ctx context.Context, req gemini.GenerateRequest) (gemini.GenerateResponse, error)
}

// Gemini adapts the Gemini client to almanac.Generator.
type Gemini struct {
	client   contentGenerator
	settings Settings
	counter  TokenCounter
}

// NewGemini constructs the adapter. counter may be nil.
func NewGemini(client *gemini.Client, settings Settings, counter TokenCounter) *Gemini {
	return &Gemini{client: client, settings: settings, counter: counter}
}

// Generate sends the prompt as a single user turn.
func (g *Gemini) Generate(ctx context.Context, prompt string) (almanac.Completion, error) {
	ctx, cancel := g.settings.withTimeout(ctx)
	defer cancel()

	resp, err := g.client.Generate(ctx, gemini.GenerateRequest{
		Model:           g.settings.Model,
		Prompt:          prompt,
		MaxOutputTokens: g.settings.MaxTokens,
		Temperature:     g.settings.Temperature,
	})
	if err != nil {
		return almanac.Completion{}, err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return almanac.Completion{}, ErrEmptyCompletion
	}

	usage := metrics.TokenUsage{
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CandidatesTokens,
		TotalTokens:      resp.TotalTokens,
	}
	if usage.IsZero() {
		usage = estimatedUsage(g.counter, prompt)
	}
	model := g.settings.Model
	if model == "" {
		model = gemini.DefaultModel
	}
	return almanac.Completion{Text: text, Model: model, Usage: usage}, nil
}

var _ almanac.Generator = (*Gemini)(nil)
