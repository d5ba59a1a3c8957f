package generator

import (
	"context"
	"strings"

	"github.com/yanqian/ai-almanac/internal/domain/almanac"
	"github.com/yanqian/ai-almanac/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-almanac/pkg/metrics"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatGPT adapts the OpenAI compatible client to almanac.Generator.
type ChatGPT struct {
	client   chatCompleter
	settings Settings
	counter  TokenCounter
}

// NewChatGPT constructs the adapter. counter may be nil.
func NewChatGPT(client *chatgpt.Client, settings Settings, counter TokenCounter) *ChatGPT {
	return &ChatGPT{client: client, settings: settings, counter: counter}
}

// Generate sends the prompt as a single user message.
func (g *ChatGPT) Generate(ctx context.Context, prompt string) (almanac.Completion, error) {
	ctx, cancel := g.settings.withTimeout(ctx)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       g.settings.Model,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		MaxTokens:   g.settings.MaxTokens,
		Temperature: g.settings.Temperature,
	})
	if err != nil {
		return almanac.Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return almanac.Completion{}, ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return almanac.Completion{}, ErrEmptyCompletion
	}

	model := resp.Model
	if model == "" {
		model = g.settings.Model
	}
	return almanac.Completion{
		Text:  text,
		Model: model,
		Usage: g.usage(resp.Usage, prompt),
	}, nil
}

func (g *ChatGPT) usage(reported *chatgpt.Usage, prompt string) metrics.TokenUsage {
	if reported != nil && reported.TotalTokens > 0 {
		return metrics.TokenUsage{
			PromptTokens:     reported.PromptTokens,
			CompletionTokens: reported.CompletionTokens,
			TotalTokens:      reported.TotalTokens,
		}
	}
	return estimatedUsage(g.counter, prompt)
}

func estimatedUsage(counter TokenCounter, prompt string) metrics.TokenUsage {
	if counter == nil {
		return metrics.TokenUsage{}
	}
	n := counter.Count(prompt)
	return metrics.TokenUsage{PromptTokens: n, TotalTokens: n, Estimated: true}
}

var _ almanac.Generator = (*ChatGPT)(nil)
